package gomap

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/confix-format/go-confix/ir"

	"github.com/google/uuid"
)

// DateTimeLayout is the fixed on-disk timestamp format, seven fractional
// digits, no zone.
const DateTimeLayout = "2006-01-02 15:04:05.0000000"

type conv struct {
	to   func(v any) (string, error)
	from func(s string) (any, error)
}

// The closed scalar table. Tag lookup is case-insensitive; each entry's
// canonical casing is what gets written to disk.
var convs = map[string]conv{
	ir.StringTag:   {toString, fromString},
	ir.IntTag:      {toInt, fromInt},
	ir.LongTag:     {toLong, fromLong},
	ir.BoolTag:     {toBool, fromBool},
	ir.DecimalTag:  {toDecimal, fromDecimal},
	ir.DoubleTag:   {toDouble, fromDouble},
	ir.SingleTag:   {toSingle, fromSingle},
	ir.ByteTag:     {toByte, fromByte},
	ir.CharTag:     {toChar, fromChar},
	ir.DateTimeTag: {toDateTime, fromDateTime},
	ir.GuidTag:     {toGuid, fromGuid},
	ir.XmlTag:      {toXml, fromXml},
}

func lookupConv(tag string) (string, conv, bool) {
	for canonical, c := range convs {
		if strings.EqualFold(canonical, tag) {
			return canonical, c, true
		}
	}
	return "", conv{}, false
}

// ToText renders a single scalar to its canonical text per the type tag
// from WithTag, inferring the tag from the runtime type when no hint is
// given. A nil value renders as the blank marker with a warning, never
// an error. Returns the text and the resolved canonical tag.
func ToText(v any, opts ...Option) (string, string, error) {
	o := getOpts(opts)
	return toText(v, o)
}

func toText(v any, o *mapOpts) (string, string, error) {
	tag := o.tag
	if tag == "" {
		tag = inferTag(v)
	}
	canonical, c, ok := lookupConv(tag)
	if !ok {
		return "", "", &TypeError{Tag: tag}
	}
	if v == nil {
		o.warn(&MarshalError{Message: fmt.Sprintf("nil value for tag %s rendered blank", canonical)})
		return "", canonical, nil
	}
	s, err := c.to(v)
	if err != nil {
		return "", "", &TypeError{Tag: canonical, Message: err.Error(), Err: err}
	}
	return s, canonical, nil
}

// FromText converts canonical text back to the Go value for its tag. An
// unresolvable tag is an error, not a string fallback.
func FromText(tag, text string, opts ...Option) (any, error) {
	if tag == "" {
		tag = ir.StringTag
	}
	canonical, c, ok := lookupConv(tag)
	if !ok {
		return nil, &TypeError{Tag: tag}
	}
	v, err := c.from(text)
	if err != nil {
		return nil, &TypeError{Tag: canonical, Message: fmt.Sprintf("parsing %q", text), Err: err}
	}
	return v, nil
}

func inferTag(v any) string {
	switch v.(type) {
	case nil, string:
		return ir.StringTag
	case bool:
		return ir.BoolTag
	case int, int8, int16, int32:
		return ir.IntTag
	case int64:
		return ir.LongTag
	case uint8:
		return ir.ByteTag
	case float64:
		return ir.DoubleTag
	case float32:
		return ir.SingleTag
	case *big.Rat:
		return ir.DecimalTag
	case time.Time:
		return ir.DateTimeTag
	case uuid.UUID:
		return ir.GuidTag
	default:
		return ir.StringTag
	}
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func fromString(s string) (any, error) {
	return s, nil
}

func toInt(v any) (string, error) {
	switch x := v.(type) {
	case int:
		if int64(x) > 1<<31-1 || int64(x) < -(1<<31) {
			return "", fmt.Errorf("%d out of 32-bit range", x)
		}
		return strconv.Itoa(x), nil
	case int8:
		return strconv.Itoa(int(x)), nil
	case int16:
		return strconv.Itoa(int(x)), nil
	case int32:
		return strconv.Itoa(int(x)), nil
	case string:
		if _, err := strconv.ParseInt(x, 10, 32); err != nil {
			return "", err
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as Int", v)
}

func fromInt(s string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func toLong(v any) (string, error) {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int:
		return strconv.Itoa(x), nil
	case string:
		if _, err := strconv.ParseInt(x, 10, 64); err != nil {
			return "", err
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as Long", v)
}

func fromLong(s string) (any, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func toBool(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return "True", nil
		}
		return "False", nil
	case string:
		b, _ := fromBool(x)
		return toBool(b)
	}
	return "", fmt.Errorf("cannot represent %T as Bool", v)
}

// Anything not equal to "false" (case-insensitively) is true.
func fromBool(s string) (any, error) {
	return !strings.EqualFold(strings.TrimSpace(s), "False"), nil
}

func toDouble(v any) (string, error) {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'G', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'G', -1, 64), nil
	case int:
		return strconv.FormatFloat(float64(x), 'G', -1, 64), nil
	case string:
		if _, err := strconv.ParseFloat(x, 64); err != nil {
			return "", err
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as Double", v)
}

func fromDouble(s string) (any, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func toSingle(v any) (string, error) {
	switch x := v.(type) {
	case float32:
		return strconv.FormatFloat(float64(x), 'G', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'G', -1, 32), nil
	case string:
		if _, err := strconv.ParseFloat(x, 32); err != nil {
			return "", err
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as Single", v)
}

func fromSingle(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return nil, err
	}
	return float32(f), nil
}

func toByte(v any) (string, error) {
	switch x := v.(type) {
	case uint8:
		return strconv.Itoa(int(x)), nil
	case int:
		if x < 0 || x > 255 {
			return "", fmt.Errorf("%d out of byte range", x)
		}
		return strconv.Itoa(x), nil
	case string:
		if _, err := strconv.ParseUint(x, 10, 8); err != nil {
			return "", err
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as Byte", v)
}

func fromByte(s string) (any, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return nil, err
	}
	return byte(n), nil
}

func toChar(v any) (string, error) {
	switch x := v.(type) {
	case rune:
		return string(x), nil
	case string:
		if utf8.RuneCountInString(x) != 1 {
			return "", fmt.Errorf("char must be exactly one rune, got %q", x)
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as Char", v)
}

func fromChar(s string) (any, error) {
	if utf8.RuneCountInString(s) != 1 {
		return nil, fmt.Errorf("char must be exactly one rune, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func toDateTime(v any) (string, error) {
	switch x := v.(type) {
	case time.Time:
		return x.Format(DateTimeLayout), nil
	case string:
		if _, err := time.ParseInLocation(DateTimeLayout, x, time.Local); err != nil {
			return "", err
		}
		return x, nil
	}
	return "", fmt.Errorf("cannot represent %T as DateTime", v)
}

func fromDateTime(s string) (any, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.Local)
}

func toGuid(v any) (string, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x.String(), nil
	case string:
		u, err := uuid.Parse(x)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("cannot represent %T as Guid", v)
}

func fromGuid(s string) (any, error) {
	return uuid.Parse(strings.TrimSpace(s))
}
