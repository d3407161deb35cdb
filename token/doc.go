// Package token scans physical lines of confix text into classified
// line tokens consumed by the parse package.
package token
