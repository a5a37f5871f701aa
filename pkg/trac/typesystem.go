// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac

import (
	"trac.io/trac/pkg/pb"
)

// IsPrimitive reports whether bt is one of the seven scalar types.
func IsPrimitive(bt pb.BasicType) bool {
	switch bt {
	case pb.BasicType_BOOLEAN, pb.BasicType_INTEGER, pb.BasicType_FLOAT,
		pb.BasicType_STRING, pb.BasicType_DECIMAL, pb.BasicType_DATE,
		pb.BasicType_DATETIME:
		return true
	}
	return false
}

// BasicTypeOf returns the basic type implied by the variant that is set.
func BasicTypeOf(v *pb.Value) pb.BasicType {
	switch {
	case v == nil:
		return pb.BasicType_BASIC_TYPE_NOT_SET
	case v.BooleanValue != nil:
		return pb.BasicType_BOOLEAN
	case v.IntegerValue != nil:
		return pb.BasicType_INTEGER
	case v.FloatValue != nil:
		return pb.BasicType_FLOAT
	case v.StringValue != nil:
		return pb.BasicType_STRING
	case v.DecimalValue != nil:
		return pb.BasicType_DECIMAL
	case v.DateValue != nil:
		return pb.BasicType_DATE
	case v.DatetimeValue != nil:
		return pb.BasicType_DATETIME
	case v.ArrayValue != nil:
		return pb.BasicType_ARRAY
	case v.MapValue != nil:
		return pb.BasicType_MAP
	default:
		return pb.BasicType_BASIC_TYPE_NOT_SET
	}
}

// DescriptorOf returns the type descriptor for a value. An explicitly
// declared descriptor wins over inference. Inferred container descriptors
// omit the item type when the container is empty or mixed.
func DescriptorOf(v *pb.Value) *pb.TypeDescriptor {
	if v == nil {
		return &pb.TypeDescriptor{}
	}
	if v.Type != nil {
		return v.Type
	}
	bt := BasicTypeOf(v)
	d := &pb.TypeDescriptor{BasicType: bt}
	switch bt {
	case pb.BasicType_ARRAY:
		d.ArrayType = uniformDescriptor(v.ArrayValue.Items)
	case pb.BasicType_MAP:
		var entries []*pb.Value
		for _, entry := range v.MapValue.Entries {
			entries = append(entries, entry)
		}
		d.MapType = uniformDescriptor(entries)
	}
	return d
}

func uniformDescriptor(items []*pb.Value) *pb.TypeDescriptor {
	if len(items) == 0 {
		return nil
	}
	d := DescriptorOf(items[0])
	for _, item := range items[1:] {
		if !descriptorMatch(d, DescriptorOf(item)) {
			return nil
		}
	}
	return d
}

// descriptorMatch compares descriptors leniently: a missing side carries
// no information and matches anything.
func descriptorMatch(a, b *pb.TypeDescriptor) bool {
	if a == nil || b == nil {
		return true
	}
	if a.BasicType != b.BasicType {
		return false
	}
	return descriptorMatch(a.ArrayType, b.ArrayType) &&
		descriptorMatch(a.MapType, b.MapType)
}

// ValidateDescriptor checks that a declared descriptor is complete:
// container types carry their item type, primitives carry nothing else.
func ValidateDescriptor(d *pb.TypeDescriptor) error {
	if d == nil {
		return ErrInvalidType.New("type descriptor is null")
	}
	switch {
	case IsPrimitive(d.BasicType):
		if d.ArrayType != nil || d.MapType != nil {
			return ErrInvalidType.New("%v descriptor carries a container item type", d.BasicType)
		}
		return nil
	case d.BasicType == pb.BasicType_ARRAY:
		if d.ArrayType == nil {
			return ErrInvalidType.New("array descriptor without an item type")
		}
		return ValidateDescriptor(d.ArrayType)
	case d.BasicType == pb.BasicType_MAP:
		if d.MapType == nil {
			return ErrInvalidType.New("map descriptor without a value type")
		}
		return ValidateDescriptor(d.MapType)
	default:
		return ErrInvalidType.New("unknown basic type %d", int32(d.BasicType))
	}
}

// Validate checks a value: exactly one variant set, parseable decimal,
// date and datetime forms, homogeneous arrays, and agreement with the
// declared descriptor when one is present.
func Validate(v *pb.Value) error {
	if v == nil {
		return ErrInvalidInput.New("value is null")
	}
	switch n := countVariants(v); {
	case n == 0:
		return ErrInvalidType.New("no value variant is set")
	case n > 1:
		return ErrInvalidType.New("%d value variants are set", n)
	}
	bt := BasicTypeOf(v)
	if v.Type != nil {
		if err := ValidateDescriptor(v.Type); err != nil {
			return err
		}
		if v.Type.BasicType != bt {
			return ErrInvalidType.New("declared type %v does not match %v value", v.Type.BasicType, bt)
		}
	}
	switch bt {
	case pb.BasicType_DECIMAL:
		if _, err := ParseDecimal(v.DecimalValue.GetDecimal()); err != nil {
			return err
		}
	case pb.BasicType_DATE:
		if _, err := ParseDate(v.DateValue.GetIsoDate()); err != nil {
			return err
		}
	case pb.BasicType_DATETIME:
		if _, err := ParseDatetime(v.DatetimeValue.GetIsoDatetime()); err != nil {
			return err
		}
	case pb.BasicType_ARRAY:
		return validateArray(v.ArrayValue, v.Type.GetArrayType())
	case pb.BasicType_MAP:
		return validateMap(v.MapValue, v.Type.GetMapType())
	}
	return nil
}

func countVariants(v *pb.Value) (n int) {
	if v.BooleanValue != nil {
		n++
	}
	if v.IntegerValue != nil {
		n++
	}
	if v.FloatValue != nil {
		n++
	}
	if v.StringValue != nil {
		n++
	}
	if v.DecimalValue != nil {
		n++
	}
	if v.DateValue != nil {
		n++
	}
	if v.DatetimeValue != nil {
		n++
	}
	if v.ArrayValue != nil {
		n++
	}
	if v.MapValue != nil {
		n++
	}
	return n
}

func validateArray(arr *pb.ArrayValue, declared *pb.TypeDescriptor) error {
	elem := declared
	for i, item := range arr.Items {
		if err := Validate(item); err != nil {
			return ErrInvalidType.New("array item %d: %v", i, err)
		}
		d := DescriptorOf(item)
		if elem == nil {
			elem = d
			continue
		}
		if !descriptorMatch(elem, d) {
			return ErrInvalidType.New("array item %d has type %v, expected %v", i, d.BasicType, elem.BasicType)
		}
	}
	return nil
}

func validateMap(m *pb.MapValue, declared *pb.TypeDescriptor) error {
	for key, entry := range m.Entries {
		if key == "" {
			return ErrInvalidInput.New("map entry with empty key")
		}
		if err := Validate(entry); err != nil {
			return ErrInvalidType.New("map entry %q: %v", key, err)
		}
		if declared != nil && !descriptorMatch(declared, DescriptorOf(entry)) {
			return ErrInvalidType.New("map entry %q has type %v, expected %v",
				key, BasicTypeOf(entry), declared.BasicType)
		}
	}
	return nil
}

// ValidateAttrValue enforces the attribute value shape: a single primitive,
// or a homogeneous array of one primitive type. Empty array attributes need
// a declared primitive item type so the storage layer knows the column.
func ValidateAttrValue(v *pb.Value) error {
	if err := Validate(v); err != nil {
		return err
	}
	bt := BasicTypeOf(v)
	if IsPrimitive(bt) {
		return nil
	}
	if bt != pb.BasicType_ARRAY {
		return ErrInvalidType.New("attribute value must be a primitive or an array, got %v", bt)
	}
	items := v.ArrayValue.Items
	if len(items) == 0 {
		if itemType := v.Type.GetArrayType(); itemType == nil || !IsPrimitive(itemType.BasicType) {
			return ErrInvalidType.New("empty array attribute without a primitive item type")
		}
		return nil
	}
	if elem := BasicTypeOf(items[0]); !IsPrimitive(elem) {
		return ErrInvalidType.New("array attribute items must be primitive, got %v", elem)
	}
	return nil
}
