package token

import (
	"fmt"
	"strconv"
	"strings"
)

type LineKind int

const (
	LBlank LineKind = iota
	LComment
	LScalar
	LHeader
)

func (k LineKind) String() string {
	return map[LineKind]string{
		LBlank:   "LBlank",
		LComment: "LComment",
		LScalar:  "LScalar",
		LHeader:  "LHeader",
	}[k]
}

// Line is one classified physical line.
//
//   - LBlank, LComment: Raw holds the line verbatim.
//   - LScalar: name[Tag]=value or name=value.
//   - LHeader: name[Tag] or name[Tag:Count]; Count > 0 means the next
//     Count physical lines are the record's payload.
type Line struct {
	Kind  LineKind
	Name  string
	Tag   string
	Count int
	Value string
	Raw   string
	Num   int
}

type ScanErr struct {
	Err error
	Num int
}

func (e *ScanErr) Unwrap() error {
	return e.Err
}

func (e *ScanErr) Error() string {
	return fmt.Sprintf("%s at line %d", e.Err.Error(), e.Num)
}

func scanErrf(num int, format string, args ...any) error {
	return &ScanErr{Err: fmt.Errorf(format, args...), Num: num}
}

// ScanLine classifies one physical line. num is 1-based and only used
// for error reporting.
func ScanLine(s string, num int) (*Line, error) {
	if strings.TrimSpace(s) == "" {
		return &Line{Kind: LBlank, Raw: s, Num: num}, nil
	}
	if strings.HasPrefix(strings.TrimLeft(s, " \t"), "#") {
		return &Line{Kind: LComment, Raw: s, Num: num}, nil
	}
	open := strings.IndexByte(s, '[')
	eq := strings.IndexByte(s, '=')
	if eq >= 0 && (open < 0 || eq < open) {
		// name=value, implicit String
		name, err := CleanName(s[:eq], num)
		if err != nil {
			return nil, err
		}
		return &Line{Kind: LScalar, Name: name, Value: s[eq+1:], Raw: s, Num: num}, nil
	}
	if open < 0 {
		return nil, scanErrf(num, "%w: no '=' or type tag in %q", ErrMalformed, s)
	}
	name, err := CleanName(s[:open], num)
	if err != nil {
		return nil, err
	}
	// The tag may itself contain "[]" (array tags), so the header closes
	// at the first "]=" on the line, or at a trailing "]" when there is
	// no value part. Values may contain "]=" themselves; the first match
	// is always the header close.
	rest := s[open+1:]
	if i := strings.Index(rest, "]="); i >= 0 {
		tag, count, err := splitCount(rest[:i], num)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, scanErrf(num, "%w: line count with inline value in %q", ErrMalformed, s)
		}
		return &Line{Kind: LScalar, Name: name, Tag: tag, Value: rest[i+2:], Raw: s, Num: num}, nil
	}
	if !strings.HasSuffix(rest, "]") {
		return nil, scanErrf(num, "%w: unterminated type tag in %q", ErrMalformed, s)
	}
	tag, count, err := splitCount(rest[:len(rest)-1], num)
	if err != nil {
		return nil, err
	}
	return &Line{Kind: LHeader, Name: name, Tag: tag, Count: count, Raw: s, Num: num}, nil
}

// splitCount splits a "Tag:N" header tag into tag and line count. A
// header without ':' has count 0; a ':' followed by anything but a
// positive integer is malformed.
func splitCount(tag string, num int) (string, int, error) {
	i := strings.LastIndexByte(tag, ':')
	if i < 0 {
		return tag, 0, nil
	}
	n, err := strconv.Atoi(tag[i+1:])
	if err != nil || n <= 0 {
		return "", 0, scanErrf(num, "%w: %q", ErrBadCount, tag[i+1:])
	}
	return tag[:i], n, nil
}
