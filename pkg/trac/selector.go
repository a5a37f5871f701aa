// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac

import (
	"trac.io/trac/pkg/pb"
)

// ValidateSelector checks selector shape: a type, a parseable id, exactly
// one object criterion and exactly one tag criterion.
func ValidateSelector(sel *pb.TagSelector) error {
	if sel == nil {
		return ErrInvalidInput.New("selector is null")
	}
	if sel.ObjectType == pb.ObjectType_OBJECT_TYPE_NOT_SET {
		return ErrInvalidInput.New("selector without an object type")
	}
	if _, err := ObjectIDFromString(sel.ObjectId); err != nil {
		return err
	}

	objectCriteria := 0
	if sel.ObjectVersion != 0 {
		if sel.ObjectVersion < 0 {
			return ErrInvalidInput.New("object version %d", sel.ObjectVersion)
		}
		objectCriteria++
	}
	if sel.ObjectAsOf != nil {
		if _, err := ParseDatetime(sel.ObjectAsOf.GetIsoDatetime()); err != nil {
			return err
		}
		objectCriteria++
	}
	if sel.LatestObject {
		objectCriteria++
	}
	if objectCriteria != 1 {
		return ErrInvalidInput.New("selector needs exactly one object criterion, got %d", objectCriteria)
	}

	tagCriteria := 0
	if sel.TagVersion != 0 {
		if sel.TagVersion < 0 {
			return ErrInvalidInput.New("tag version %d", sel.TagVersion)
		}
		tagCriteria++
	}
	if sel.TagAsOf != nil {
		if _, err := ParseDatetime(sel.TagAsOf.GetIsoDatetime()); err != nil {
			return err
		}
		tagCriteria++
	}
	if sel.LatestTag {
		tagCriteria++
	}
	if tagCriteria != 1 {
		return ErrInvalidInput.New("selector needs exactly one tag criterion, got %d", tagCriteria)
	}
	return nil
}

// SelectorOf returns the exact selector addressing the tag behind a header.
func SelectorOf(header *pb.TagHeader) *pb.TagSelector {
	if header == nil {
		return nil
	}
	return &pb.TagSelector{
		ObjectType:    header.ObjectType,
		ObjectId:      header.ObjectId,
		ObjectVersion: header.ObjectVersion,
		TagVersion:    header.TagVersion,
	}
}

// LatestSelector returns a selector for the latest tag of the latest
// version of the object behind a header.
func LatestSelector(header *pb.TagHeader) *pb.TagSelector {
	if header == nil {
		return nil
	}
	return &pb.TagSelector{
		ObjectType:   header.ObjectType,
		ObjectId:     header.ObjectId,
		LatestObject: true,
		LatestTag:    true,
	}
}
