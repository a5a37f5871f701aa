// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadatadb

import (
	"context"
	"database/sql"
	"strings"

	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

// Search runs an attribute query against the indexed tag attributes.
// The expression tree compiles into EXISTS subselects over tag_attrs so
// the database does all the filtering.
func (o *objects) Search(ctx context.Context, tenant string, params *pb.SearchParameters) (tags []*pb.Tag, err error) {
	defer mon.Task()(&ctx)(&err)
	if params.GetObjectType() == pb.ObjectType_OBJECT_TYPE_NOT_SET {
		return nil, trac.ErrInvalidInput.New("search requires an object type")
	}
	if params.GetSearch() == nil {
		return nil, trac.ErrInvalidInput.New("search requires an expression")
	}

	err = o.db.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tenantID, err := o.db.tenantID(ctx, tx, tenant)
		if err != nil {
			return err
		}
		if err := o.checkTermTypes(ctx, tx, tenantID, params.Search); err != nil {
			return err
		}
		tags, err = o.searchTags(ctx, tx, tenantID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (o *objects) searchTags(ctx context.Context, tx *sql.Tx, tenantID int64, params *pb.SearchParameters) ([]*pb.Tag, error) {
	c := &searchCompiler{impl: o.db.impl}
	c.args = append(c.args, tenantID, int32(params.ObjectType))

	var scope []string
	if params.SearchAsOf.GetIsoDatetime() != "" {
		t, err := trac.ParseDatetime(params.SearchAsOf.GetIsoDatetime())
		if err != nil {
			return nil, err
		}
		at := micros(t)
		scope = append(scope, `d.object_timestamp <= ?`, `t.tag_timestamp <= ?`)
		c.args = append(c.args, at, at)
		if !params.PriorVersions {
			scope = append(scope, `(d.superseded IS NULL OR d.superseded > ?)`)
			c.args = append(c.args, at)
		}
		if !params.PriorTags {
			scope = append(scope, `(t.superseded IS NULL OR t.superseded > ?)`)
			c.args = append(c.args, at)
		}
	} else {
		if !params.PriorVersions {
			scope = append(scope, `d.is_latest`)
		}
		if !params.PriorTags {
			scope = append(scope, `t.is_latest`)
		}
	}

	condition, err := c.compile(params.Search)
	if err != nil {
		return nil, err
	}
	scope = append(scope, condition)

	var query strings.Builder
	query.WriteString(
		`SELECT o.object_id_hi, o.object_id_lo,
		        d.object_version, d.object_timestamp, d.is_latest, d.meta_format, d.definition,
		        t.tag_pk, t.tag_version, t.tag_timestamp, t.is_latest
		 FROM tags t
		 JOIN object_definitions d ON d.tenant_id = t.tenant_id AND d.definition_pk = t.definition_fk
		 JOIN object_ids o ON o.tenant_id = d.tenant_id AND o.object_pk = d.object_fk
		 WHERE t.tenant_id = ? AND t.object_type = ?`)
	for _, clause := range scope {
		query.WriteString(" AND ")
		query.WriteString(clause)
	}
	query.WriteString(` ORDER BY t.tag_timestamp DESC, t.tag_pk DESC`)

	rows, err := o.db.query(ctx, tx, query.String(), c.args...)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = rows.Close() }()

	type hit struct {
		hi, lo int64
		def    definitionRow
		tg     tagRow
	}
	var hits []hit
	for rows.Next() {
		var h hit
		err := rows.Scan(&h.hi, &h.lo,
			&h.def.version, &h.def.timestamp, &h.def.isLatest, &h.def.metaFormat, &h.def.definition,
			&h.tg.pk, &h.tg.version, &h.tg.timestamp, &h.tg.isLatest)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, Error.Wrap(err)
	}

	tags := make([]*pb.Tag, 0, len(hits))
	for _, h := range hits {
		attrs, err := o.loadAttrs(ctx, tx, tenantID, h.tg.pk)
		if err != nil {
			return nil, err
		}
		id := trac.ObjectIDFromBits(h.hi, h.lo).String()
		tag, err := buildTag(params.ObjectType, id, h.def, h.tg, attrs)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// checkTermTypes rejects terms whose declared type disagrees with what
// the tenant has actually stored under that attribute name. A silent
// empty result would hide the mistake from the caller.
func (o *objects) checkTermTypes(ctx context.Context, tx *sql.Tx, tenantID int64, expr *pb.SearchExpression) error {
	terms := collectTerms(nil, expr)
	for _, term := range terms {
		if term.Operator == pb.SearchOperator_EXISTS {
			continue
		}
		rows, err := o.db.query(ctx, tx,
			`SELECT DISTINCT attr_type FROM tag_attrs WHERE tenant_id = ? AND attr_name = ?`,
			tenantID, term.AttrName)
		if err != nil {
			return Error.Wrap(err)
		}
		stored := make([]pb.BasicType, 0, 1)
		for rows.Next() {
			var attrType int32
			if err := rows.Scan(&attrType); err != nil {
				_ = rows.Close()
				return Error.Wrap(err)
			}
			stored = append(stored, pb.BasicType(attrType))
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return Error.Wrap(err)
		}
		for _, storedType := range stored {
			if storedType != term.AttrType {
				return trac.ErrInvalidInput.New("attr %q is stored as %v, search term says %v",
					term.AttrName, storedType, term.AttrType)
			}
		}
	}
	return nil
}

func collectTerms(terms []*pb.SearchTerm, expr *pb.SearchExpression) []*pb.SearchTerm {
	if expr == nil {
		return terms
	}
	if expr.Term != nil {
		return append(terms, expr.Term)
	}
	for _, sub := range expr.GetLogical().GetExpr() {
		terms = collectTerms(terms, sub)
	}
	return terms
}

// searchCompiler turns an expression tree into sql over the t alias.
type searchCompiler struct {
	impl dialect
	args []interface{}
}

func (c *searchCompiler) compile(expr *pb.SearchExpression) (string, error) {
	switch {
	case expr == nil:
		return "", trac.ErrInvalidInput.New("empty search expression")
	case expr.Term != nil && expr.Logical != nil:
		return "", trac.ErrInvalidInput.New("search expression sets both term and logical")
	case expr.Term != nil:
		return c.compileTerm(expr.Term)
	case expr.Logical != nil:
		return c.compileLogical(expr.Logical)
	}
	return "", trac.ErrInvalidInput.New("search expression sets neither term nor logical")
}

func (c *searchCompiler) compileLogical(logical *pb.LogicalExpression) (string, error) {
	switch logical.Operator {
	case pb.LogicalOperator_AND, pb.LogicalOperator_OR:
		if len(logical.Expr) == 0 {
			return "", trac.ErrInvalidInput.New("%v needs at least one sub expression", logical.Operator)
		}
		join := " AND "
		if logical.Operator == pb.LogicalOperator_OR {
			join = " OR "
		}
		parts := make([]string, 0, len(logical.Expr))
		for _, sub := range logical.Expr {
			part, err := c.compile(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "(" + strings.Join(parts, join) + ")", nil
	case pb.LogicalOperator_NOT:
		if len(logical.Expr) != 1 {
			return "", trac.ErrInvalidInput.New("NOT needs exactly one sub expression, got %d", len(logical.Expr))
		}
		part, err := c.compile(logical.Expr[0])
		if err != nil {
			return "", err
		}
		return "(NOT " + part + ")", nil
	}
	return "", trac.ErrInvalidInput.New("unknown logical operator %v", logical.Operator)
}

func (c *searchCompiler) compileTerm(term *pb.SearchTerm) (string, error) {
	if !trac.IsValidIdentifier(term.AttrName) {
		return "", trac.ErrInvalidInput.New("invalid attr name %q", term.AttrName)
	}

	switch term.Operator {
	case pb.SearchOperator_EXISTS:
		c.args = append(c.args, term.AttrName)
		return c.exists(`a.attr_name = ?`), nil

	case pb.SearchOperator_EQ, pb.SearchOperator_NE:
		column, err := attrColumn(term.AttrType)
		if err != nil {
			return "", err
		}
		arg, err := searchArg(term.AttrType, term.SearchValue)
		if err != nil {
			return "", err
		}
		// Decimal equality is by numeric value, 9.5 must match 9.50.
		lhs, rhs := "a."+column, "?"
		if term.AttrType == pb.BasicType_DECIMAL {
			lhs = c.impl.castDecimal(lhs)
			rhs = c.impl.castDecimal(rhs)
		}
		match := c.exists(`a.attr_name = ? AND a.attr_type = ? AND ` + lhs + ` = ` + rhs)
		if term.Operator == pb.SearchOperator_EQ {
			c.args = append(c.args, term.AttrName, int32(term.AttrType), arg)
			return match, nil
		}
		// NE matches tags that carry the attribute with another value.
		c.args = append(c.args, term.AttrName)
		c.args = append(c.args, term.AttrName, int32(term.AttrType), arg)
		return "(" + c.exists(`a.attr_name = ?`) + " AND NOT " + match + ")", nil

	case pb.SearchOperator_LT, pb.SearchOperator_LE, pb.SearchOperator_GT, pb.SearchOperator_GE:
		return c.compileOrdering(term)

	case pb.SearchOperator_IN:
		return c.compileIn(term)
	}
	return "", trac.ErrInvalidInput.New("unknown search operator %v", term.Operator)
}

func (c *searchCompiler) compileOrdering(term *pb.SearchTerm) (string, error) {
	switch term.AttrType {
	case pb.BasicType_BOOLEAN, pb.BasicType_ARRAY:
		return "", trac.ErrInvalidInput.New("%v does not order for attr %q", term.AttrType, term.AttrName)
	}
	column, err := attrColumn(term.AttrType)
	if err != nil {
		return "", err
	}
	arg, err := searchArg(term.AttrType, term.SearchValue)
	if err != nil {
		return "", err
	}

	op := map[pb.SearchOperator]string{
		pb.SearchOperator_LT: "<",
		pb.SearchOperator_LE: "<=",
		pb.SearchOperator_GT: ">",
		pb.SearchOperator_GE: ">=",
	}[term.Operator]

	// Decimals live in text columns, the comparison needs numbers.
	lhs, rhs := "a."+column, "?"
	if term.AttrType == pb.BasicType_DECIMAL {
		lhs = c.impl.castDecimal(lhs)
		rhs = c.impl.castDecimal(rhs)
	}
	c.args = append(c.args, term.AttrName, int32(term.AttrType), arg)
	return c.exists(`a.attr_name = ? AND a.attr_type = ? AND ` + lhs + ` ` + op + ` ` + rhs), nil
}

func (c *searchCompiler) compileIn(term *pb.SearchTerm) (string, error) {
	items := term.SearchValue.GetArrayValue().GetItems()
	if len(items) == 0 {
		return "", trac.ErrInvalidInput.New("IN needs a non-empty array for attr %q", term.AttrName)
	}
	column, err := attrColumn(term.AttrType)
	if err != nil {
		return "", err
	}

	lhs, rhs := "a."+column, "?"
	if term.AttrType == pb.BasicType_DECIMAL {
		lhs = c.impl.castDecimal(lhs)
		rhs = c.impl.castDecimal(rhs)
	}

	c.args = append(c.args, term.AttrName, int32(term.AttrType))
	placeholders := make([]string, 0, len(items))
	for _, item := range items {
		if trac.BasicTypeOf(item) != term.AttrType {
			return "", trac.ErrInvalidInput.New("IN for attr %q mixes %v into a %v list",
				term.AttrName, trac.BasicTypeOf(item), term.AttrType)
		}
		arg, err := searchArg(term.AttrType, item)
		if err != nil {
			return "", err
		}
		c.args = append(c.args, arg)
		placeholders = append(placeholders, rhs)
	}
	return c.exists(`a.attr_name = ? AND a.attr_type = ? AND ` + lhs +
		` IN (` + strings.Join(placeholders, ", ") + `)`), nil
}

func (c *searchCompiler) exists(condition string) string {
	return `EXISTS (SELECT 1 FROM tag_attrs a WHERE a.tenant_id = t.tenant_id AND a.tag_fk = t.tag_pk AND ` + condition + `)`
}

// searchArg converts a search value into the driver argument matching
// the attribute's value column.
func searchArg(attrType pb.BasicType, value *pb.Value) (interface{}, error) {
	if value == nil {
		return nil, trac.ErrInvalidInput.New("search term has no value")
	}
	if got := trac.BasicTypeOf(value); got != attrType {
		return nil, trac.ErrInvalidInput.New("search value is %v, term says %v", got, attrType)
	}
	switch attrType {
	case pb.BasicType_BOOLEAN:
		return value.GetBooleanValue(), nil
	case pb.BasicType_INTEGER:
		return value.GetIntegerValue(), nil
	case pb.BasicType_FLOAT:
		return value.GetFloatValue(), nil
	case pb.BasicType_STRING:
		return value.GetStringValue(), nil
	case pb.BasicType_DECIMAL:
		return value.GetDecimalValue().GetDecimal(), nil
	case pb.BasicType_DATE:
		return value.GetDateValue().GetIsoDate(), nil
	case pb.BasicType_DATETIME:
		t, err := trac.ParseDatetime(value.GetDatetimeValue().GetIsoDatetime())
		if err != nil {
			return nil, err
		}
		return micros(t), nil
	}
	return nil, trac.ErrInvalidInput.New("%v is not searchable", attrType)
}
