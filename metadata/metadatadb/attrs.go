// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadatadb

import (
	"database/sql"
	"time"

	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

// singleValueIndex marks a row holding a single valued attribute, array
// elements use their position instead.
const singleValueIndex = -1

// attrRow is one tag_attrs row. Exactly one value column is set.
type attrRow struct {
	name     string
	attrType int32
	index    int32

	boolean  sql.NullBool
	integer  sql.NullInt64
	float    sql.NullFloat64
	str      sql.NullString
	decimal  sql.NullString
	date     sql.NullString
	datetime sql.NullInt64
}

// attrColumn returns the value column for a primitive type.
func attrColumn(basic pb.BasicType) (string, error) {
	switch basic {
	case pb.BasicType_BOOLEAN:
		return "attr_value_boolean", nil
	case pb.BasicType_INTEGER:
		return "attr_value_integer", nil
	case pb.BasicType_FLOAT:
		return "attr_value_float", nil
	case pb.BasicType_STRING:
		return "attr_value_string", nil
	case pb.BasicType_DECIMAL:
		return "attr_value_decimal", nil
	case pb.BasicType_DATE:
		return "attr_value_date", nil
	case pb.BasicType_DATETIME:
		return "attr_value_datetime", nil
	}
	return "", trac.ErrInvalidInput.New("attr type %v has no value column", basic)
}

// encodeAttr expands one attribute value into rows. Arrays become one
// row per element.
func encodeAttr(name string, value *pb.Value) ([]attrRow, error) {
	if err := trac.ValidateAttrValue(value); err != nil {
		return nil, err
	}
	basic := trac.BasicTypeOf(value)
	if basic != pb.BasicType_ARRAY {
		row, err := encodePrimitive(name, singleValueIndex, value)
		if err != nil {
			return nil, err
		}
		return []attrRow{row}, nil
	}

	items := value.GetArrayValue().GetItems()
	rows := make([]attrRow, 0, len(items))
	for i, item := range items {
		row, err := encodePrimitive(name, int32(i), item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func encodePrimitive(name string, index int32, value *pb.Value) (attrRow, error) {
	row := attrRow{name: name, index: index}
	basic := trac.BasicTypeOf(value)
	row.attrType = int32(basic)
	switch basic {
	case pb.BasicType_BOOLEAN:
		row.boolean = sql.NullBool{Bool: value.GetBooleanValue(), Valid: true}
	case pb.BasicType_INTEGER:
		row.integer = sql.NullInt64{Int64: value.GetIntegerValue(), Valid: true}
	case pb.BasicType_FLOAT:
		row.float = sql.NullFloat64{Float64: value.GetFloatValue(), Valid: true}
	case pb.BasicType_STRING:
		row.str = sql.NullString{String: value.GetStringValue(), Valid: true}
	case pb.BasicType_DECIMAL:
		row.decimal = sql.NullString{String: value.GetDecimalValue().GetDecimal(), Valid: true}
	case pb.BasicType_DATE:
		row.date = sql.NullString{String: value.GetDateValue().GetIsoDate(), Valid: true}
	case pb.BasicType_DATETIME:
		t, err := trac.ParseDatetime(value.GetDatetimeValue().GetIsoDatetime())
		if err != nil {
			return attrRow{}, err
		}
		row.datetime = sql.NullInt64{Int64: micros(t), Valid: true}
	default:
		return attrRow{}, trac.ErrInvalidInput.New("attr %q: %v is not storable", name, basic)
	}
	return row, nil
}

// decodeAttrs reassembles attribute values from rows ordered by name
// and index.
func decodeAttrs(rows []attrRow) (map[string]*pb.Value, error) {
	attrs := make(map[string]*pb.Value)
	for _, row := range rows {
		value, err := decodePrimitive(row)
		if err != nil {
			return nil, err
		}
		if row.index == singleValueIndex {
			attrs[row.name] = value
			continue
		}
		arr := attrs[row.name]
		if arr == nil {
			arr = &pb.Value{ArrayValue: &pb.ArrayValue{}}
			attrs[row.name] = arr
		}
		arr.ArrayValue.Items = append(arr.ArrayValue.Items, value)
	}
	return attrs, nil
}

func decodePrimitive(row attrRow) (*pb.Value, error) {
	switch pb.BasicType(row.attrType) {
	case pb.BasicType_BOOLEAN:
		return trac.Bool(row.boolean.Bool), nil
	case pb.BasicType_INTEGER:
		return trac.Int(row.integer.Int64), nil
	case pb.BasicType_FLOAT:
		return trac.Float(row.float.Float64), nil
	case pb.BasicType_STRING:
		return trac.String(row.str.String), nil
	case pb.BasicType_DECIMAL:
		return trac.Decimal(row.decimal.String), nil
	case pb.BasicType_DATE:
		return &pb.Value{DateValue: &pb.DateValue{IsoDate: row.date.String}}, nil
	case pb.BasicType_DATETIME:
		return trac.Datetime(fromMicros(row.datetime.Int64)), nil
	}
	return nil, Error.New("attr %q has unreadable type %d", row.name, row.attrType)
}

// micros converts a time into microseconds since the unix epoch.
func micros(t time.Time) int64 {
	return t.UnixNano() / int64(time.Microsecond)
}

// fromMicros converts microseconds since the unix epoch into a UTC time.
func fromMicros(m int64) time.Time {
	return time.Unix(m/1e6, (m%1e6)*1000).UTC()
}

// headerTime reads a wire datetime, falling back to now when unset.
func headerTime(dv *pb.DatetimeValue, now time.Time) (int64, error) {
	if dv == nil || dv.GetIsoDatetime() == "" {
		return micros(now), nil
	}
	t, err := trac.ParseDatetime(dv.GetIsoDatetime())
	if err != nil {
		return 0, err
	}
	return micros(t), nil
}
