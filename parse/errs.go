package parse

import (
	"errors"
	"fmt"

	"github.com/confix-format/go-confix/token"
)

var (
	ErrParse = errors.New("parse error")
)

func errTruncated(ln *token.Line) error {
	return fmt.Errorf("%w: %d payload lines declared, fewer remain", ErrParse, ln.Count)
}
