package token

import (
	"fmt"
	"strings"

	"github.com/confix-format/go-confix/ir"
)

// CleanName strips the optional leading '$' sigil and validates the
// remaining name against [A-Za-z0-9_][A-Za-z0-9_.-]*. Storage is
// case-preserving; comparison elsewhere is case-insensitive.
func CleanName(name string, num int) (string, error) {
	name = strings.TrimPrefix(name, "$")
	if err := ValidName(name); err != nil {
		return "", &ScanErr{Err: err, Num: num}
	}
	return name, nil
}

func ValidName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ir.ErrBadName)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
		case (c == '.' || c == '-') && i > 0:
		default:
			return fmt.Errorf("%w: %q", ir.ErrBadName, name)
		}
	}
	return nil
}
