// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package objects

import (
	"time"

	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

// stampCreate writes the audit attributes for a first version. Update
// attributes start out equal to the create attributes.
func stampCreate(attrs map[string]*pb.Value, user auth.User, now time.Time) {
	attrs[trac.AttrCreateTime] = trac.Datetime(now)
	attrs[trac.AttrCreateUserID] = trac.String(user.ID)
	attrs[trac.AttrCreateUserName] = trac.String(user.Name)
	stampUpdate(attrs, user, now)
}

// stampUpdate refreshes the update audit attributes, leaving the create
// ones alone.
func stampUpdate(attrs map[string]*pb.Value, user auth.User, now time.Time) {
	attrs[trac.AttrUpdateTime] = trac.Datetime(now)
	attrs[trac.AttrUpdateUserID] = trac.String(user.ID)
	attrs[trac.AttrUpdateUserName] = trac.String(user.Name)
}

// structuredAttrs derives the indexable attributes a definition implies.
// They are recomputed on every version so searches see current facts.
func structuredAttrs(def *pb.ObjectDefinition) map[string]*pb.Value {
	attrs := make(map[string]*pb.Value)
	switch {
	case def.GetData() != nil:
		attrs[trac.AttrSchemaFieldCount] = trac.Int(int64(len(def.Data.GetSchema().GetFields())))
	case def.GetSchema() != nil:
		attrs[trac.AttrSchemaFieldCount] = trac.Int(int64(len(def.Schema.GetFields())))
	case def.GetFile() != nil:
		attrs[trac.AttrFileName] = trac.String(def.File.Name)
		attrs[trac.AttrFileExtension] = trac.String(def.File.Extension)
		attrs[trac.AttrFileSize] = trac.Int(def.File.Size)
	case def.GetModel() != nil:
		attrs[trac.AttrModelLanguage] = trac.String(def.Model.Language)
		attrs[trac.AttrModelRepository] = trac.String(def.Model.Repository)
		attrs[trac.AttrModelEntryPoint] = trac.String(def.Model.EntryPoint)
		attrs[trac.AttrModelVersion] = trac.String(def.Model.Version)
	case def.GetJob() != nil:
		attrs[trac.AttrJobType] = trac.String(def.Job.JobType)
	case def.GetResult() != nil:
		attrs[trac.AttrJobStatus] = trac.String(def.Result.StatusCode.String())
	}
	return attrs
}

// applyTagUpdates applies client attribute changes onto attrs. Reserved
// names are refused, a null value removes the attribute.
func applyTagUpdates(attrs map[string]*pb.Value, updates []*pb.TagUpdate) error {
	for _, update := range updates {
		if !trac.IsValidIdentifier(update.AttrName) {
			return trac.ErrInvalidInput.New("invalid attr name %q", update.AttrName)
		}
		if trac.IsReservedAttrName(update.AttrName) {
			return trac.ErrInvalidInput.New("attr %q is controlled by the platform", update.AttrName)
		}
		if update.Value == nil {
			delete(attrs, update.AttrName)
			continue
		}
		if err := trac.ValidateAttrValue(update.Value); err != nil {
			return err
		}
		attrs[update.AttrName] = update.Value
	}
	return nil
}

// carryForward copies the client attributes and the create audit trail
// from a prior tag, dropping everything the platform restamps.
func carryForward(prior map[string]*pb.Value) map[string]*pb.Value {
	attrs := make(map[string]*pb.Value, len(prior))
	for name, value := range prior {
		if trac.IsReservedAttrName(name) {
			switch name {
			case trac.AttrCreateTime, trac.AttrCreateUserID, trac.AttrCreateUserName:
			default:
				continue
			}
		}
		attrs[name] = value
	}
	return attrs
}
