// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac

import (
	"trac.io/trac/pkg/pb"
)

// Controlled attributes, written by the platform on create and update.
const (
	AttrCreateTime     = "trac_create_time"
	AttrCreateUserID   = "trac_create_user_id"
	AttrCreateUserName = "trac_create_user_name"
	AttrUpdateTime     = "trac_update_time"
	AttrUpdateUserID   = "trac_update_user_id"
	AttrUpdateUserName = "trac_update_user_name"

	AttrSchemaFieldCount = "trac_schema_field_count"

	AttrFileName      = "trac_file_name"
	AttrFileExtension = "trac_file_extension"
	AttrFileSize      = "trac_file_size"

	AttrModelLanguage   = "trac_model_language"
	AttrModelRepository = "trac_model_repository"
	AttrModelEntryPoint = "trac_model_entry_point"
	AttrModelVersion    = "trac_model_version"

	AttrJobType   = "trac_job_type"
	AttrJobStatus = "trac_job_status"
)

// PublicWritable reports whether the public API accepts writes for ot.
// Everything else is written by platform services over the trusted API.
func PublicWritable(ot pb.ObjectType) bool {
	switch ot {
	case pb.ObjectType_DATA, pb.ObjectType_MODEL, pb.ObjectType_FLOW,
		pb.ObjectType_CUSTOM, pb.ObjectType_SCHEMA, pb.ObjectType_STORAGE:
		return true
	}
	return false
}

// DefinitionType returns the object type implied by the body that is set
// and how many bodies are set.
func DefinitionType(def *pb.ObjectDefinition) (ot pb.ObjectType, bodies int) {
	if def == nil {
		return pb.ObjectType_OBJECT_TYPE_NOT_SET, 0
	}
	set := []struct {
		ot      pb.ObjectType
		present bool
	}{
		{pb.ObjectType_DATA, def.Data != nil},
		{pb.ObjectType_MODEL, def.Model != nil},
		{pb.ObjectType_FLOW, def.Flow != nil},
		{pb.ObjectType_JOB, def.Job != nil},
		{pb.ObjectType_FILE, def.File != nil},
		{pb.ObjectType_CUSTOM, def.Custom != nil},
		{pb.ObjectType_STORAGE, def.Storage != nil},
		{pb.ObjectType_SCHEMA, def.Schema != nil},
		{pb.ObjectType_RESULT, def.Result != nil},
		{pb.ObjectType_CONFIG, def.Config != nil},
		{pb.ObjectType_RESOURCE, def.Resource != nil},
	}
	for _, body := range set {
		if body.present {
			ot = body.ot
			bodies++
		}
	}
	return ot, bodies
}

// ValidateDefinition checks that exactly one body is present and agrees
// with the declared object type.
func ValidateDefinition(def *pb.ObjectDefinition) error {
	if def == nil {
		return ErrInvalidInput.New("definition is null")
	}
	if def.ObjectType == pb.ObjectType_OBJECT_TYPE_NOT_SET {
		return ErrInvalidInput.New("definition without an object type")
	}
	bodyType, bodies := DefinitionType(def)
	switch {
	case bodies == 0:
		return ErrInvalidInput.New("%v definition without a body", def.ObjectType)
	case bodies > 1:
		return ErrInvalidInput.New("definition with %d bodies", bodies)
	case bodyType != def.ObjectType:
		return ErrInvalidInput.New("definition declares %v but carries a %v body", def.ObjectType, bodyType)
	}
	return nil
}
