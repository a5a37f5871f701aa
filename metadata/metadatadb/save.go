// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadatadb

import (
	"context"
	"database/sql"
	"time"

	"github.com/gogo/protobuf/proto"

	"trac.io/trac/metadata"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

// objects implements metadata.Objects.
type objects struct {
	db *DB
}

// SavePreallocatedIDs reserves object ids with no definition yet.
func (o *objects) SavePreallocatedIDs(ctx context.Context, tenant string, headers []*pb.TagHeader) (err error) {
	defer mon.Task()(&ctx)(&err)
	return o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		return o.savePreallocatedIDs(ctx, tx, tenantID, headers)
	})
}

// SavePreallocatedObjects writes version 1 onto reserved ids.
func (o *objects) SavePreallocatedObjects(ctx context.Context, tenant string, tags []*pb.Tag) (err error) {
	defer mon.Task()(&ctx)(&err)
	return o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		return o.savePreallocatedObjects(ctx, tx, tenantID, tags)
	})
}

// SaveNewObjects writes fresh objects at version 1, tag 1.
func (o *objects) SaveNewObjects(ctx context.Context, tenant string, tags []*pb.Tag) (err error) {
	defer mon.Task()(&ctx)(&err)
	return o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		return o.saveNewObjects(ctx, tx, tenantID, tags)
	})
}

// SaveNewVersions appends version N+1 to existing objects.
func (o *objects) SaveNewVersions(ctx context.Context, tenant string, tags []*pb.Tag) (err error) {
	defer mon.Task()(&ctx)(&err)
	return o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		return o.saveNewVersions(ctx, tx, tenantID, tags)
	})
}

// SaveNewTags appends a tag to an existing object version.
func (o *objects) SaveNewTags(ctx context.Context, tenant string, tags []*pb.Tag) (err error) {
	defer mon.Task()(&ctx)(&err)
	return o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		return o.saveNewTags(ctx, tx, tenantID, tags)
	})
}

// SaveBatchUpdate applies a batch in one transaction. Groups run in the
// canonical order: preallocated ids, preallocated objects, new objects,
// new versions, new tags.
func (o *objects) SaveBatchUpdate(ctx context.Context, tenant string, batch metadata.BatchUpdate) (err error) {
	defer mon.Task()(&ctx)(&err)
	return o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		if err := o.savePreallocatedIDs(ctx, tx, tenantID, batch.PreallocatedIDs); err != nil {
			return err
		}
		if err := o.savePreallocatedObjects(ctx, tx, tenantID, batch.PreallocatedObjects); err != nil {
			return err
		}
		if err := o.saveNewObjects(ctx, tx, tenantID, batch.NewObjects); err != nil {
			return err
		}
		if err := o.saveNewVersions(ctx, tx, tenantID, batch.NewVersions); err != nil {
			return err
		}
		return o.saveNewTags(ctx, tx, tenantID, batch.NewTags)
	})
}

func (o *objects) savePreallocatedIDs(ctx context.Context, tx *sql.Tx, tenantID int64, headers []*pb.TagHeader) error {
	for _, header := range headers {
		if header.ObjectVersion != 0 || header.TagVersion != 0 {
			return trac.ErrInvalidInput.New("preallocated id %s carries version %d.%d",
				header.ObjectId, header.ObjectVersion, header.TagVersion)
		}
		id, err := trac.ObjectIDFromString(header.ObjectId)
		if err != nil {
			return err
		}
		if _, err := o.insertObjectID(ctx, tx, tenantID, header.ObjectType, id); err != nil {
			return err
		}
	}
	return nil
}

func (o *objects) savePreallocatedObjects(ctx context.Context, tx *sql.Tx, tenantID int64, tags []*pb.Tag) error {
	now := time.Now()
	for _, tag := range tags {
		header := tag.Header
		if header.ObjectVersion != 1 || header.TagVersion != 1 {
			return trac.ErrVersionConflict.New("preallocated object %s must be written at version 1.1, got %d.%d",
				header.ObjectId, header.ObjectVersion, header.TagVersion)
		}
		objectPK, err := o.lockObjectID(ctx, tx, tenantID, header)
		if err != nil {
			return err
		}

		var versions int64
		err = o.db.queryRow(ctx, tx,
			`SELECT COUNT(*) FROM object_definitions WHERE tenant_id = ? AND object_fk = ?`,
			tenantID, objectPK).Scan(&versions)
		if err != nil {
			return Error.Wrap(err)
		}
		if versions != 0 {
			return trac.ErrVersionConflict.New("object %s is already written", header.ObjectId)
		}
		if err := o.insertFirstVersion(ctx, tx, tenantID, objectPK, tag, now); err != nil {
			return err
		}
	}
	return nil
}

func (o *objects) saveNewObjects(ctx context.Context, tx *sql.Tx, tenantID int64, tags []*pb.Tag) error {
	now := time.Now()
	for _, tag := range tags {
		header := tag.Header
		if header.ObjectVersion != 1 || header.TagVersion != 1 {
			return trac.ErrInvalidInput.New("new object %s must start at version 1.1, got %d.%d",
				header.ObjectId, header.ObjectVersion, header.TagVersion)
		}
		id, err := trac.ObjectIDFromString(header.ObjectId)
		if err != nil {
			return err
		}
		objectPK, err := o.insertObjectID(ctx, tx, tenantID, header.ObjectType, id)
		if err != nil {
			return err
		}
		if err := o.insertFirstVersion(ctx, tx, tenantID, objectPK, tag, now); err != nil {
			return err
		}
	}
	return nil
}

func (o *objects) saveNewVersions(ctx context.Context, tx *sql.Tx, tenantID int64, tags []*pb.Tag) error {
	now := time.Now()
	for _, tag := range tags {
		header := tag.Header
		objectPK, err := o.lockObjectID(ctx, tx, tenantID, header)
		if err != nil {
			return err
		}

		var priorPK, priorVersion int64
		err = o.db.queryRow(ctx, tx,
			`SELECT definition_pk, object_version FROM object_definitions
			 WHERE tenant_id = ? AND object_fk = ? AND is_latest`+o.db.impl.forUpdate(),
			tenantID, objectPK).Scan(&priorPK, &priorVersion)
		if err == sql.ErrNoRows {
			return trac.ErrNotFound.New("object %s has no versions", header.ObjectId)
		}
		if err != nil {
			return Error.Wrap(err)
		}
		if priorVersion+1 != header.ObjectVersion {
			return trac.ErrVersionConflict.New("object %s is at version %d, cannot write version %d",
				header.ObjectId, priorVersion, header.ObjectVersion)
		}
		if header.TagVersion != 1 {
			return trac.ErrInvalidInput.New("new version %s.%d must start at tag 1",
				header.ObjectId, header.ObjectVersion)
		}

		objectTS, err := headerTime(header.ObjectTimestamp, now)
		if err != nil {
			return err
		}
		definitionPK, err := o.insertDefinition(ctx, tx, tenantID, objectPK, tag, objectTS)
		if err != nil {
			return err
		}
		if err := o.insertTagRow(ctx, tx, tenantID, definitionPK, tag, objectTS); err != nil {
			return err
		}

		_, err = o.db.exec(ctx, tx,
			`UPDATE object_definitions SET superseded = ?, is_latest = ?
			 WHERE definition_pk = ? AND tenant_id = ?`,
			objectTS, false, priorPK, tenantID)
		if err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

func (o *objects) saveNewTags(ctx context.Context, tx *sql.Tx, tenantID int64, tags []*pb.Tag) error {
	now := time.Now()
	for _, tag := range tags {
		header := tag.Header
		objectPK, err := o.lockObjectID(ctx, tx, tenantID, header)
		if err != nil {
			return err
		}

		var definitionPK int64
		err = o.db.queryRow(ctx, tx,
			`SELECT definition_pk FROM object_definitions
			 WHERE tenant_id = ? AND object_fk = ? AND object_version = ?`,
			tenantID, objectPK, header.ObjectVersion).Scan(&definitionPK)
		if err == sql.ErrNoRows {
			return trac.ErrNotFound.New("object %s has no version %d", header.ObjectId, header.ObjectVersion)
		}
		if err != nil {
			return Error.Wrap(err)
		}

		var priorTagPK, priorTagVersion int64
		err = o.db.queryRow(ctx, tx,
			`SELECT tag_pk, tag_version FROM tags
			 WHERE tenant_id = ? AND definition_fk = ? AND is_latest`+o.db.impl.forUpdate(),
			tenantID, definitionPK).Scan(&priorTagPK, &priorTagVersion)
		if err == sql.ErrNoRows {
			return trac.ErrNotFound.New("object %s.%d has no tags", header.ObjectId, header.ObjectVersion)
		}
		if err != nil {
			return Error.Wrap(err)
		}
		if priorTagVersion+1 != header.TagVersion {
			return trac.ErrTagVersionConflict.New("object %s.%d is at tag %d, cannot write tag %d",
				header.ObjectId, header.ObjectVersion, priorTagVersion, header.TagVersion)
		}

		tagTS, err := headerTime(header.TagTimestamp, now)
		if err != nil {
			return err
		}
		tagPK, err := o.db.impl.insertReturning(ctx, tx, o.db.impl.rebind(
			`INSERT INTO tags (tenant_id, definition_fk, tag_version, tag_timestamp, is_latest, object_type)
			 VALUES (?, ?, ?, ?, ?, ?)`), "tag_pk",
			tenantID, definitionPK, header.TagVersion, tagTS, true, int32(header.ObjectType))
		if err != nil {
			return Error.Wrap(err)
		}
		if err := o.insertAttrs(ctx, tx, tenantID, tagPK, tag.Attrs); err != nil {
			return err
		}

		_, err = o.db.exec(ctx, tx,
			`UPDATE tags SET superseded = ?, is_latest = ? WHERE tag_pk = ? AND tenant_id = ?`,
			tagTS, false, priorTagPK, tenantID)
		if err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

// insertObjectID creates the id row for a fresh object.
func (o *objects) insertObjectID(ctx context.Context, tx *sql.Tx, tenantID int64, objectType pb.ObjectType, id trac.ObjectID) (int64, error) {
	hi, lo := id.Bits()
	pk, err := o.db.impl.insertReturning(ctx, tx, o.db.impl.rebind(
		`INSERT INTO object_ids (tenant_id, object_type, object_id_hi, object_id_lo)
		 VALUES (?, ?, ?, ?)`), "object_pk",
		tenantID, int32(objectType), hi, lo)
	if isUniqueViolation(err) {
		return 0, trac.ErrAlreadyExists.New("object %s", id)
	}
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return pk, nil
}

// lockObjectID resolves and write-locks the id row, verifying the
// header's type against the stored one.
func (o *objects) lockObjectID(ctx context.Context, tx *sql.Tx, tenantID int64, header *pb.TagHeader) (int64, error) {
	id, err := trac.ObjectIDFromString(header.ObjectId)
	if err != nil {
		return 0, err
	}
	hi, lo := id.Bits()

	var objectPK int64
	var storedType int32
	err = o.db.queryRow(ctx, tx,
		`SELECT object_pk, object_type FROM object_ids
		 WHERE tenant_id = ? AND object_id_hi = ? AND object_id_lo = ?`+o.db.impl.forUpdate(),
		tenantID, hi, lo).Scan(&objectPK, &storedType)
	if err == sql.ErrNoRows {
		return 0, trac.ErrNotFound.New("object %s", header.ObjectId)
	}
	if err != nil {
		return 0, Error.Wrap(err)
	}
	if pb.ObjectType(storedType) != header.ObjectType {
		return 0, trac.ErrWrongObjectType.New("object %s is %v, not %v",
			header.ObjectId, pb.ObjectType(storedType), header.ObjectType)
	}
	return objectPK, nil
}

// insertFirstVersion writes version 1 tag 1 for an object id row.
func (o *objects) insertFirstVersion(ctx context.Context, tx *sql.Tx, tenantID, objectPK int64, tag *pb.Tag, now time.Time) error {
	objectTS, err := headerTime(tag.Header.ObjectTimestamp, now)
	if err != nil {
		return err
	}
	definitionPK, err := o.insertDefinition(ctx, tx, tenantID, objectPK, tag, objectTS)
	if err != nil {
		return err
	}
	return o.insertTagRow(ctx, tx, tenantID, definitionPK, tag, objectTS)
}

func (o *objects) insertDefinition(ctx context.Context, tx *sql.Tx, tenantID, objectPK int64, tag *pb.Tag, objectTS int64) (int64, error) {
	definition, err := proto.Marshal(tag.Definition)
	if err != nil {
		return 0, Error.Wrap(err)
	}
	definitionPK, err := o.db.impl.insertReturning(ctx, tx, o.db.impl.rebind(
		`INSERT INTO object_definitions
		 (tenant_id, object_fk, object_version, object_timestamp, is_latest, meta_format, meta_version, definition)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`), "definition_pk",
		tenantID, objectPK, tag.Header.ObjectVersion, objectTS, true, metaFormatProto, metaVersion, definition)
	if isUniqueViolation(err) {
		return 0, trac.ErrVersionConflict.New("object %s version %d exists",
			tag.Header.ObjectId, tag.Header.ObjectVersion)
	}
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return definitionPK, nil
}

func (o *objects) insertTagRow(ctx context.Context, tx *sql.Tx, tenantID, definitionPK int64, tag *pb.Tag, objectTS int64) error {
	tagTS, err := headerTime(tag.Header.TagTimestamp, fromMicros(objectTS))
	if err != nil {
		return err
	}
	tagPK, err := o.db.impl.insertReturning(ctx, tx, o.db.impl.rebind(
		`INSERT INTO tags (tenant_id, definition_fk, tag_version, tag_timestamp, is_latest, object_type)
		 VALUES (?, ?, ?, ?, ?, ?)`), "tag_pk",
		tenantID, definitionPK, tag.Header.TagVersion, tagTS, true, int32(tag.Header.ObjectType))
	if err != nil {
		return Error.Wrap(err)
	}
	return o.insertAttrs(ctx, tx, tenantID, tagPK, tag.Attrs)
}

func (o *objects) insertAttrs(ctx context.Context, tx *sql.Tx, tenantID, tagPK int64, attrs map[string]*pb.Value) error {
	for name, value := range attrs {
		rows, err := encodeAttr(name, value)
		if err != nil {
			return err
		}
		for _, row := range rows {
			_, err := o.db.exec(ctx, tx,
				`INSERT INTO tag_attrs
				 (tenant_id, tag_fk, attr_name, attr_type, attr_index,
				  attr_value_boolean, attr_value_integer, attr_value_float, attr_value_string,
				  attr_value_decimal, attr_value_date, attr_value_datetime)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				tenantID, tagPK, row.name, row.attrType, row.index,
				row.boolean, row.integer, row.float, row.str,
				row.decimal, row.date, row.datetime)
			if err != nil {
				return Error.Wrap(err)
			}
		}
	}
	return nil
}
