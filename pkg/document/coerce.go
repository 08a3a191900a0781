// Package document decodes loosely typed document payloads. Stored numbers
// come back as float64 from JSON, int64 from some drivers and json.Number or
// strings from others; every read at a store boundary goes through here.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMissing = errors.New("document: field missing")

// Int decodes an integral number. Fractions are truncated toward zero.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrMissing
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float32:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("document: non-finite number %v", n)
		}
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("document: %w", err)
		}
		return int(f), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("document: %w", err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("document: unexpected number type %T", v)
	}
}

// IntOr returns def when v is missing or malformed.
func IntOr(v any, def int) int {
	i, err := Int(v)
	if err != nil {
		return def
	}
	return i
}

func Decimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, ErrMissing
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, fmt.Errorf("document: non-finite number %v", n)
		}
		return decimal.NewFromFloat(n), nil
	case json.Number:
		return parseDecimal(string(n))
	case string:
		return parseDecimal(n)
	default:
		return decimal.Zero, fmt.Errorf("document: unexpected number type %T", v)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("document: %w", err)
	}
	return d, nil
}

// Number encodes a decimal as an exact JSON number literal.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

func BoolOr(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		p, err := strconv.ParseBool(b)
		if err != nil {
			return def
		}
		return p
	default:
		return def
	}
}

// Time accepts time.Time, RFC 3339 strings and Unix milliseconds.
func Time(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case *time.Time:
		return t, nil
	case string:
		if t == "" {
			return nil, nil
		}
		p, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil, fmt.Errorf("document: %w", err)
		}
		return &p, nil
	default:
		ms, err := Int(v)
		if err != nil {
			return nil, err
		}
		p := time.UnixMilli(int64(ms)).UTC()
		return &p, nil
	}
}

func Map(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
