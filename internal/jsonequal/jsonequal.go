// Package jsonequal implements canonical JSON equality.
package jsonequal

import (
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Equal reports whether a and b encode the same JSON value.
//
// Objects compare by key/value sets, arrays by ordered elements, numbers
// by numeric value, so 1 equals 1.0 but not true or "1".
func Equal(a, b []byte) (bool, error) {
	ta := jx.DecodeBytes(a).Next()
	tb := jx.DecodeBytes(b).Next()
	if ta == jx.Invalid || tb == jx.Invalid {
		return false, errors.New("invalid json")
	}
	if ta != tb {
		return false, nil
	}

	switch ta {
	case jx.Null:
		return true, nil
	case jx.Bool:
		x, err := jx.DecodeBytes(a).Bool()
		if err != nil {
			return false, err
		}
		y, err := jx.DecodeBytes(b).Bool()
		if err != nil {
			return false, err
		}
		return x == y, nil
	case jx.Number:
		x, err := number(a)
		if err != nil {
			return false, err
		}
		y, err := number(b)
		if err != nil {
			return false, err
		}
		return x.Cmp(y) == 0, nil
	case jx.String:
		x, err := jx.DecodeBytes(a).Str()
		if err != nil {
			return false, err
		}
		y, err := jx.DecodeBytes(b).Str()
		if err != nil {
			return false, err
		}
		return x == y, nil
	case jx.Array:
		xs, err := elems(a)
		if err != nil {
			return false, err
		}
		ys, err := elems(b)
		if err != nil {
			return false, err
		}
		if len(xs) != len(ys) {
			return false, nil
		}
		for i := range xs {
			ok, err := Equal(xs[i], ys[i])
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case jx.Object:
		xs, err := fields(a)
		if err != nil {
			return false, err
		}
		ys, err := fields(b)
		if err != nil {
			return false, err
		}
		if len(xs) != len(ys) {
			return false, nil
		}
		for k, x := range xs {
			y, ok := ys[k]
			if !ok {
				return false, nil
			}
			ok, err := Equal(x, y)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	default:
		return false, errors.Errorf("unexpected type %q", ta)
	}
}

func number(data []byte) (*big.Rat, error) {
	num, err := jx.DecodeBytes(data).Num()
	if err != nil {
		return nil, err
	}
	val := new(big.Rat)
	if err := val.UnmarshalText(num); err != nil {
		return nil, errors.Wrap(err, "parse number")
	}
	return val, nil
}

func elems(data []byte) ([]jx.Raw, error) {
	d := jx.DecodeBytes(data)
	iter, err := d.ArrIter()
	if err != nil {
		return nil, err
	}
	var result []jx.Raw
	for iter.Next() {
		raw, err := d.Raw()
		if err != nil {
			return nil, err
		}
		result = append(result, raw)
	}
	return result, iter.Err()
}

func fields(data []byte) (map[string]jx.Raw, error) {
	d := jx.DecodeBytes(data)
	iter, err := d.ObjIter()
	if err != nil {
		return nil, err
	}
	result := map[string]jx.Raw{}
	for iter.Next() {
		key := string(iter.Key())
		raw, err := d.Raw()
		if err != nil {
			return nil, err
		}
		result[key] = raw
	}
	return result, iter.Err()
}
