// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadatadb

import (
	"context"
	"database/sql"

	"github.com/gogo/protobuf/proto"

	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

// definitionRow is one object_definitions row.
type definitionRow struct {
	pk         int64
	version    int64
	timestamp  int64
	isLatest   bool
	metaFormat int32
	definition []byte
}

// tagRow is one tags row.
type tagRow struct {
	pk        int64
	version   int64
	timestamp int64
	isLatest  bool
}

// LoadObject resolves a selector to its fully hydrated tag.
func (o *objects) LoadObject(ctx context.Context, tenant string, selector *pb.TagSelector) (tag *pb.Tag, err error) {
	defer mon.Task()(&ctx)(&err)
	err = o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		tag, err = o.loadObject(ctx, tx, tenantID, selector)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// LoadObjects resolves selectors preserving input order, failing fast
// on the first miss.
func (o *objects) LoadObjects(ctx context.Context, tenant string, selectors []*pb.TagSelector) (tags []*pb.Tag, err error) {
	defer mon.Task()(&ctx)(&err)
	err = o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		tags = make([]*pb.Tag, 0, len(selectors))
		for _, selector := range selectors {
			tag, err := o.loadObject(ctx, tx, tenantID, selector)
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (o *objects) loadObject(ctx context.Context, tx *sql.Tx, tenantID int64, selector *pb.TagSelector) (*pb.Tag, error) {
	if err := trac.ValidateSelector(selector); err != nil {
		return nil, err
	}
	id, err := trac.ObjectIDFromString(selector.ObjectId)
	if err != nil {
		return nil, err
	}
	hi, lo := id.Bits()

	var objectPK int64
	var storedType int32
	err = o.db.queryRow(ctx, tx,
		`SELECT object_pk, object_type FROM object_ids
		 WHERE tenant_id = ? AND object_id_hi = ? AND object_id_lo = ?`,
		tenantID, hi, lo).Scan(&objectPK, &storedType)
	if err == sql.ErrNoRows {
		return nil, trac.ErrNotFound.New("object %s", selector.ObjectId)
	}
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if pb.ObjectType(storedType) != selector.ObjectType {
		return nil, trac.ErrWrongObjectType.New("object %s is %v, not %v",
			selector.ObjectId, pb.ObjectType(storedType), selector.ObjectType)
	}

	def, err := o.loadDefinition(ctx, tx, tenantID, objectPK, selector)
	if err != nil {
		return nil, err
	}
	tg, err := o.loadTag(ctx, tx, tenantID, def.pk, selector)
	if err != nil {
		return nil, err
	}
	attrs, err := o.loadAttrs(ctx, tx, tenantID, tg.pk)
	if err != nil {
		return nil, err
	}
	return buildTag(selector.ObjectType, selector.ObjectId, def, tg, attrs)
}

func (o *objects) loadDefinition(ctx context.Context, tx *sql.Tx, tenantID, objectPK int64, selector *pb.TagSelector) (definitionRow, error) {
	criterion := `is_latest`
	var args []interface{}
	switch {
	case selector.ObjectVersion > 0:
		criterion = `object_version = ?`
		args = append(args, selector.ObjectVersion)
	case selector.ObjectAsOf.GetIsoDatetime() != "":
		t, err := trac.ParseDatetime(selector.ObjectAsOf.GetIsoDatetime())
		if err != nil {
			return definitionRow{}, err
		}
		at := micros(t)
		criterion = `object_timestamp <= ? AND (superseded IS NULL OR superseded > ?)`
		args = append(args, at, at)
	}

	var def definitionRow
	args = append([]interface{}{tenantID, objectPK}, args...)
	err := o.db.queryRow(ctx, tx,
		`SELECT definition_pk, object_version, object_timestamp, is_latest, meta_format, definition
		 FROM object_definitions
		 WHERE tenant_id = ? AND object_fk = ? AND `+criterion,
		args...).Scan(&def.pk, &def.version, &def.timestamp, &def.isLatest, &def.metaFormat, &def.definition)
	if err == sql.ErrNoRows {
		return definitionRow{}, trac.ErrNotFound.New("object %s has no version matching the selector", selector.ObjectId)
	}
	if err != nil {
		return definitionRow{}, Error.Wrap(err)
	}
	return def, nil
}

func (o *objects) loadTag(ctx context.Context, tx *sql.Tx, tenantID, definitionPK int64, selector *pb.TagSelector) (tagRow, error) {
	criterion := `is_latest`
	var args []interface{}
	switch {
	case selector.TagVersion > 0:
		criterion = `tag_version = ?`
		args = append(args, selector.TagVersion)
	case selector.TagAsOf.GetIsoDatetime() != "":
		t, err := trac.ParseDatetime(selector.TagAsOf.GetIsoDatetime())
		if err != nil {
			return tagRow{}, err
		}
		at := micros(t)
		criterion = `tag_timestamp <= ? AND (superseded IS NULL OR superseded > ?)`
		args = append(args, at, at)
	}

	var tg tagRow
	args = append([]interface{}{tenantID, definitionPK}, args...)
	err := o.db.queryRow(ctx, tx,
		`SELECT tag_pk, tag_version, tag_timestamp, is_latest
		 FROM tags
		 WHERE tenant_id = ? AND definition_fk = ? AND `+criterion,
		args...).Scan(&tg.pk, &tg.version, &tg.timestamp, &tg.isLatest)
	if err == sql.ErrNoRows {
		return tagRow{}, trac.ErrNotFound.New("object %s has no tag matching the selector", selector.ObjectId)
	}
	if err != nil {
		return tagRow{}, Error.Wrap(err)
	}
	return tg, nil
}

// loadAttrs hydrates the attribute map of one tag. Array elements come
// back in index order so appends rebuild them faithfully.
func (o *objects) loadAttrs(ctx context.Context, tx *sql.Tx, tenantID, tagPK int64) (map[string]*pb.Value, error) {
	rows, err := o.db.query(ctx, tx,
		`SELECT attr_name, attr_type, attr_index,
		        attr_value_boolean, attr_value_integer, attr_value_float, attr_value_string,
		        attr_value_decimal, attr_value_date, attr_value_datetime
		 FROM tag_attrs
		 WHERE tenant_id = ? AND tag_fk = ?
		 ORDER BY attr_name, attr_index`,
		tenantID, tagPK)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = rows.Close() }()

	var attrRows []attrRow
	for rows.Next() {
		var row attrRow
		err := rows.Scan(&row.name, &row.attrType, &row.index,
			&row.boolean, &row.integer, &row.float, &row.str,
			&row.decimal, &row.date, &row.datetime)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		attrRows = append(attrRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, Error.Wrap(err)
	}
	return decodeAttrs(attrRows)
}

// buildTag assembles the wire tag from its stored rows.
func buildTag(objectType pb.ObjectType, objectID string, def definitionRow, tg tagRow, attrs map[string]*pb.Value) (*pb.Tag, error) {
	if def.metaFormat != metaFormatProto {
		return nil, Error.New("object %s version %d stored in unknown format %d", objectID, def.version, def.metaFormat)
	}
	definition := &pb.ObjectDefinition{}
	if err := proto.Unmarshal(def.definition, definition); err != nil {
		return nil, Error.Wrap(err)
	}
	return &pb.Tag{
		Header: &pb.TagHeader{
			ObjectType:      objectType,
			ObjectId:        objectID,
			ObjectVersion:   def.version,
			TagVersion:      tg.version,
			ObjectTimestamp: trac.Datetime(fromMicros(def.timestamp)).GetDatetimeValue(),
			TagTimestamp:    trac.Datetime(fromMicros(tg.timestamp)).GetDatetimeValue(),
			IsLatestObject:  def.isLatest,
			IsLatestTag:     tg.isLatest,
		},
		Definition: definition,
		Attrs:      attrs,
	}, nil
}
