package gomap

import (
	"fmt"
	"math/big"
	"strings"
)

// The Decimal tag is exact base-10: values are *big.Rat whose reduced
// denominator is a product of 2s and 5s, rendered with exactly as many
// fractional digits as the denominator requires.

func toDecimal(v any) (string, error) {
	switch x := v.(type) {
	case *big.Rat:
		return decimalString(x)
	case string:
		r, ok := new(big.Rat).SetString(x)
		if !ok {
			return "", fmt.Errorf("cannot parse %q as Decimal", x)
		}
		return decimalString(r)
	case int:
		return new(big.Rat).SetInt64(int64(x)).RatString(), nil
	case int64:
		return new(big.Rat).SetInt64(x).RatString(), nil
	}
	return "", fmt.Errorf("cannot represent %T as Decimal", v)
}

func fromDecimal(s string) (any, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as Decimal", s)
	}
	if _, err := decimalString(r); err != nil {
		return nil, err
	}
	return r, nil
}

// decimalString renders r as a finite decimal, failing when the reduced
// denominator has prime factors other than 2 and 5 (no finite decimal
// expansion exists).
func decimalString(r *big.Rat) (string, error) {
	den := new(big.Int).Set(r.Denom())
	digits := 0
	two := big.NewInt(2)
	five := big.NewInt(5)
	rem := new(big.Int)
	for _, p := range []*big.Int{two, five} {
		n := 0
		for {
			q, m := new(big.Int).QuoRem(den, p, rem)
			if m.Sign() != 0 {
				break
			}
			den.Set(q)
			n++
		}
		if n > digits {
			digits = n
		}
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return "", fmt.Errorf("%s has no finite decimal expansion", r.RatString())
	}
	if digits == 0 {
		return r.RatString(), nil
	}
	return r.FloatString(digits), nil
}
