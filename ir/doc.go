// Package ir defines the record tree that is the universal in-memory
// representation of a confix file.
package ir
