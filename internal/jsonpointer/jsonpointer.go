// Package jsonpointer resolves RFC 6901 JSON Pointers inside raw JSON documents.
package jsonpointer

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

func splitFunc(s string, sep byte, cb func(s string) error) error {
	for {
		idx := strings.IndexByte(s, sep)
		if idx < 0 {
			break
		}
		if err := cb(s[:idx]); err != nil {
			return err
		}
		s = s[idx+1:]
	}
	return cb(s)
}

// Resolve returns the value ptr points at inside data.
//
// The pointer may be given with or without a leading "#". An empty
// pointer denotes the whole document.
func Resolve(ptr string, data []byte) ([]byte, error) {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" {
		raw, err := jx.DecodeBytes(data).Raw()
		if err != nil {
			return nil, err
		}
		return raw, nil
	}
	if ptr[0] != '/' {
		return nil, errors.Errorf("invalid pointer %q: pointer must start with '/'", ptr)
	}

	buf := data
	err := splitFunc(ptr[1:], '/', func(part string) error {
		part = unescape(part)

		d := jx.DecodeBytes(buf)
		switch tt := d.Next(); tt {
		case jx.Object:
			result, ok, err := findKey(d, part)
			if err != nil {
				return errors.Wrapf(err, "find key %q", part)
			}
			if !ok {
				return errors.Errorf("key %q not found", part)
			}
			buf = result
		case jx.Array:
			result, ok, err := findIdx(d, part)
			if err != nil {
				return errors.Wrapf(err, "find index %q", part)
			}
			if !ok {
				return errors.Errorf("index %q not found", part)
			}
			buf = result
		default:
			return errors.Errorf("unexpected type %q", tt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func findIdx(d *jx.Decoder, part string) (result []byte, ok bool, _ error) {
	index, err := strconv.ParseUint(part, 10, 64)
	if err != nil {
		return nil, false, errors.Wrap(err, "index")
	}

	counter := uint64(0)

	iter, err := d.ArrIter()
	if err != nil {
		return nil, false, err
	}
	for iter.Next() {
		if index == counter {
			raw, err := d.Raw()
			if err != nil {
				return nil, false, errors.Wrapf(err, "parse %d", counter)
			}
			result = raw
			ok = true
			break
		}
		if err := d.Skip(); err != nil {
			return nil, false, err
		}
		counter++
	}
	return result, ok, iter.Err()
}

func findKey(d *jx.Decoder, part string) (result []byte, ok bool, _ error) {
	iter, err := d.ObjIter()
	if err != nil {
		return nil, false, err
	}

	for iter.Next() {
		if string(iter.Key()) != part {
			if err := d.Skip(); err != nil {
				return nil, false, err
			}
			continue
		}

		raw, err := d.Raw()
		if err != nil {
			return nil, false, errors.Wrapf(err, "parse %q", part)
		}
		result = raw
		ok = true
		break
	}
	return result, ok, iter.Err()
}

var unescapeReplacer = strings.NewReplacer(
	"~1", "/",
	"~0", "~",
)

func unescape(part string) string {
	// Replacer always creates new string, check that unescape is really necessary.
	if !strings.Contains(part, "~1") && !strings.Contains(part, "~0") {
		return part
	}
	return unescapeReplacer.Replace(part)
}
