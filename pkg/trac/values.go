// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac

import (
	"math/big"
	"strings"
	"time"

	"trac.io/trac/pkg/pb"
)

const (
	// DatetimeLayout is the canonical datetime form: UTC with a fixed six
	// digit microsecond field.
	DatetimeLayout = "2006-01-02T15:04:05.000000Z07:00"
	// DateLayout is the canonical date form.
	DateLayout = "2006-01-02"
)

// TruncateDatetime drops sub-microsecond precision. Truncation always
// rounds down, a datetime never moves forward in time.
func TruncateDatetime(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

// FormatDatetime renders t in the canonical form.
func FormatDatetime(t time.Time) string {
	return TruncateDatetime(t.UTC()).Format(DatetimeLayout)
}

// ParseDatetime parses an ISO 8601 datetime with a zone offset and
// truncates it to microseconds.
func ParseDatetime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, ErrInvalidInput.New("datetime %q: %v", s, err)
	}
	return TruncateDatetime(t), nil
}

// NormalizeDatetime rewrites s into the canonical form.
func NormalizeDatetime(s string) (string, error) {
	t, err := ParseDatetime(s)
	if err != nil {
		return "", err
	}
	return FormatDatetime(t), nil
}

// FormatDate renders t in the canonical date form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses the canonical date form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidInput.New("date %q: %v", s, err)
	}
	return t, nil
}

// ParseDecimal parses a decimal text form with arbitrary precision.
func ParseDecimal(s string) (*big.Rat, error) {
	if s == "" {
		return nil, ErrInvalidInput.New("empty decimal")
	}
	if strings.Contains(s, "/") {
		return nil, ErrInvalidInput.New("decimal %q", s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, ErrInvalidInput.New("decimal %q", s)
	}
	return r, nil
}

// DecimalEqual compares two decimal text forms by numeric value, so scale
// does not matter: 1.5 equals 1.50.
func DecimalEqual(a, b string) bool {
	ra, err := ParseDecimal(a)
	if err != nil {
		return false
	}
	rb, err := ParseDecimal(b)
	if err != nil {
		return false
	}
	return ra.Cmp(rb) == 0
}

// AsDatetime wraps t in its wire form.
func AsDatetime(t time.Time) *pb.DatetimeValue {
	return &pb.DatetimeValue{IsoDatetime: FormatDatetime(t)}
}

// Bool wraps a boolean value.
func Bool(b bool) *pb.Value {
	return &pb.Value{BooleanValue: &b}
}

// Int wraps an integer value.
func Int(i int64) *pb.Value {
	return &pb.Value{IntegerValue: &i}
}

// Float wraps a float value.
func Float(f float64) *pb.Value {
	return &pb.Value{FloatValue: &f}
}

// String wraps a string value.
func String(s string) *pb.Value {
	return &pb.Value{StringValue: &s}
}

// Decimal wraps a decimal text form. The text is kept verbatim so scale
// survives display; comparisons are numeric.
func Decimal(s string) *pb.Value {
	return &pb.Value{DecimalValue: &pb.DecimalValue{Decimal: s}}
}

// Date wraps a date value.
func Date(t time.Time) *pb.Value {
	return &pb.Value{DateValue: &pb.DateValue{IsoDate: FormatDate(t)}}
}

// Datetime wraps a datetime value in canonical form.
func Datetime(t time.Time) *pb.Value {
	return &pb.Value{DatetimeValue: AsDatetime(t)}
}

// Array wraps values into an array value.
func Array(items ...*pb.Value) *pb.Value {
	return &pb.Value{ArrayValue: &pb.ArrayValue{Items: items}}
}

// ValueEqual compares values with type-aware semantics: decimals by
// numeric value, datetimes by instant, containers element-wise.
func ValueEqual(a, b *pb.Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := BasicTypeOf(a), BasicTypeOf(b)
	if ta != tb {
		return false
	}
	switch ta {
	case pb.BasicType_BOOLEAN:
		return a.GetBooleanValue() == b.GetBooleanValue()
	case pb.BasicType_INTEGER:
		return a.GetIntegerValue() == b.GetIntegerValue()
	case pb.BasicType_FLOAT:
		return a.GetFloatValue() == b.GetFloatValue()
	case pb.BasicType_STRING:
		return a.GetStringValue() == b.GetStringValue()
	case pb.BasicType_DECIMAL:
		return DecimalEqual(a.GetDecimalValue().GetDecimal(), b.GetDecimalValue().GetDecimal())
	case pb.BasicType_DATE:
		da, errA := ParseDate(a.GetDateValue().GetIsoDate())
		db, errB := ParseDate(b.GetDateValue().GetIsoDate())
		return errA == nil && errB == nil && da.Equal(db)
	case pb.BasicType_DATETIME:
		da, errA := ParseDatetime(a.GetDatetimeValue().GetIsoDatetime())
		db, errB := ParseDatetime(b.GetDatetimeValue().GetIsoDatetime())
		return errA == nil && errB == nil && da.Equal(db)
	case pb.BasicType_ARRAY:
		itemsA, itemsB := a.GetArrayValue().GetItems(), b.GetArrayValue().GetItems()
		if len(itemsA) != len(itemsB) {
			return false
		}
		for i := range itemsA {
			if !ValueEqual(itemsA[i], itemsB[i]) {
				return false
			}
		}
		return true
	case pb.BasicType_MAP:
		entriesA, entriesB := a.GetMapValue().GetEntries(), b.GetMapValue().GetEntries()
		if len(entriesA) != len(entriesB) {
			return false
		}
		for key, va := range entriesA {
			vb, ok := entriesB[key]
			if !ok || !ValueEqual(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}
