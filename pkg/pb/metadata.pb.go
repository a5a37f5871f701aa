// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package pb holds the wire types for the platform APIs. The Go bindings are
// maintained by hand and kept in lock-step with the .proto files; field
// numbers never change, new fields only append. Scalar union members use
// pointer fields so presence survives zero values.
package pb

import (
	proto "github.com/gogo/protobuf/proto"
	golang_proto "github.com/golang/protobuf/proto"
)

// BasicType enumerates the primitive and container types of the value system.
type BasicType int32

const (
	BasicType_BASIC_TYPE_NOT_SET BasicType = 0
	BasicType_BOOLEAN            BasicType = 1
	BasicType_INTEGER            BasicType = 2
	BasicType_FLOAT              BasicType = 3
	BasicType_STRING             BasicType = 4
	BasicType_DECIMAL            BasicType = 5
	BasicType_DATE               BasicType = 6
	BasicType_DATETIME           BasicType = 7
	BasicType_ARRAY              BasicType = 8
	BasicType_MAP                BasicType = 9
)

var BasicType_name = map[int32]string{
	0: "BASIC_TYPE_NOT_SET",
	1: "BOOLEAN",
	2: "INTEGER",
	3: "FLOAT",
	4: "STRING",
	5: "DECIMAL",
	6: "DATE",
	7: "DATETIME",
	8: "ARRAY",
	9: "MAP",
}

var BasicType_value = map[string]int32{
	"BASIC_TYPE_NOT_SET": 0,
	"BOOLEAN":            1,
	"INTEGER":            2,
	"FLOAT":              3,
	"STRING":             4,
	"DECIMAL":            5,
	"DATE":               6,
	"DATETIME":           7,
	"ARRAY":              8,
	"MAP":                9,
}

func (x BasicType) String() string {
	return proto.EnumName(BasicType_name, int32(x))
}

// ObjectType enumerates the object classes of the metadata store.
type ObjectType int32

const (
	ObjectType_OBJECT_TYPE_NOT_SET ObjectType = 0
	ObjectType_DATA                ObjectType = 1
	ObjectType_MODEL               ObjectType = 2
	ObjectType_FLOW                ObjectType = 3
	ObjectType_JOB                 ObjectType = 4
	ObjectType_FILE                ObjectType = 5
	ObjectType_CUSTOM              ObjectType = 6
	ObjectType_STORAGE             ObjectType = 7
	ObjectType_SCHEMA              ObjectType = 8
	ObjectType_RESULT              ObjectType = 9
	ObjectType_CONFIG              ObjectType = 10
	ObjectType_RESOURCE            ObjectType = 11
)

var ObjectType_name = map[int32]string{
	0:  "OBJECT_TYPE_NOT_SET",
	1:  "DATA",
	2:  "MODEL",
	3:  "FLOW",
	4:  "JOB",
	5:  "FILE",
	6:  "CUSTOM",
	7:  "STORAGE",
	8:  "SCHEMA",
	9:  "RESULT",
	10: "CONFIG",
	11: "RESOURCE",
}

var ObjectType_value = map[string]int32{
	"OBJECT_TYPE_NOT_SET": 0,
	"DATA":                1,
	"MODEL":               2,
	"FLOW":                3,
	"JOB":                 4,
	"FILE":                5,
	"CUSTOM":              6,
	"STORAGE":             7,
	"SCHEMA":              8,
	"RESULT":              9,
	"CONFIG":              10,
	"RESOURCE":            11,
}

func (x ObjectType) String() string {
	return proto.EnumName(ObjectType_name, int32(x))
}

type SearchOperator int32

const (
	SearchOperator_SEARCH_OPERATOR_NOT_SET SearchOperator = 0
	SearchOperator_EQ                      SearchOperator = 1
	SearchOperator_NE                      SearchOperator = 2
	SearchOperator_LT                      SearchOperator = 3
	SearchOperator_LE                      SearchOperator = 4
	SearchOperator_GT                      SearchOperator = 5
	SearchOperator_GE                      SearchOperator = 6
	SearchOperator_IN                      SearchOperator = 7
	SearchOperator_EXISTS                  SearchOperator = 8
)

var SearchOperator_name = map[int32]string{
	0: "SEARCH_OPERATOR_NOT_SET",
	1: "EQ",
	2: "NE",
	3: "LT",
	4: "LE",
	5: "GT",
	6: "GE",
	7: "IN",
	8: "EXISTS",
}

var SearchOperator_value = map[string]int32{
	"SEARCH_OPERATOR_NOT_SET": 0,
	"EQ":     1,
	"NE":     2,
	"LT":     3,
	"LE":     4,
	"GT":     5,
	"GE":     6,
	"IN":     7,
	"EXISTS": 8,
}

func (x SearchOperator) String() string {
	return proto.EnumName(SearchOperator_name, int32(x))
}

type LogicalOperator int32

const (
	LogicalOperator_LOGICAL_OPERATOR_NOT_SET LogicalOperator = 0
	LogicalOperator_AND                      LogicalOperator = 1
	LogicalOperator_OR                       LogicalOperator = 2
	LogicalOperator_NOT                      LogicalOperator = 3
)

var LogicalOperator_name = map[int32]string{
	0: "LOGICAL_OPERATOR_NOT_SET",
	1: "AND",
	2: "OR",
	3: "NOT",
}

var LogicalOperator_value = map[string]int32{
	"LOGICAL_OPERATOR_NOT_SET": 0,
	"AND": 1,
	"OR":  2,
	"NOT": 3,
}

func (x LogicalOperator) String() string {
	return proto.EnumName(LogicalOperator_name, int32(x))
}

// JobStatusCode is the orchestrator state machine.
type JobStatusCode int32

const (
	JobStatusCode_JOB_STATUS_NOT_SET JobStatusCode = 0
	JobStatusCode_CREATED            JobStatusCode = 1
	JobStatusCode_VALIDATED          JobStatusCode = 2
	JobStatusCode_QUEUED             JobStatusCode = 3
	JobStatusCode_SUBMITTED          JobStatusCode = 4
	JobStatusCode_RUNNING            JobStatusCode = 5
	JobStatusCode_FINISHING          JobStatusCode = 6
	JobStatusCode_COMPLETED          JobStatusCode = 7
	JobStatusCode_FAILED             JobStatusCode = 8
	JobStatusCode_CANCELLED          JobStatusCode = 9
)

var JobStatusCode_name = map[int32]string{
	0: "JOB_STATUS_NOT_SET",
	1: "CREATED",
	2: "VALIDATED",
	3: "QUEUED",
	4: "SUBMITTED",
	5: "RUNNING",
	6: "FINISHING",
	7: "COMPLETED",
	8: "FAILED",
	9: "CANCELLED",
}

var JobStatusCode_value = map[string]int32{
	"JOB_STATUS_NOT_SET": 0,
	"CREATED":            1,
	"VALIDATED":          2,
	"QUEUED":             3,
	"SUBMITTED":          4,
	"RUNNING":            5,
	"FINISHING":          6,
	"COMPLETED":          7,
	"FAILED":             8,
	"CANCELLED":          9,
}

func (x JobStatusCode) String() string {
	return proto.EnumName(JobStatusCode_name, int32(x))
}

// TypeDescriptor describes a value type. Container types carry descriptors
// for their contents: ArrayType for ARRAY items, MapType for MAP values.
type TypeDescriptor struct {
	BasicType BasicType       `protobuf:"varint,1,opt,name=basic_type,json=basicType,proto3,enum=trac.metadata.BasicType" json:"basic_type,omitempty"`
	ArrayType *TypeDescriptor `protobuf:"bytes,2,opt,name=array_type,json=arrayType" json:"array_type,omitempty"`
	MapType   *TypeDescriptor `protobuf:"bytes,3,opt,name=map_type,json=mapType" json:"map_type,omitempty"`
}

func (m *TypeDescriptor) Reset()         { *m = TypeDescriptor{} }
func (m *TypeDescriptor) String() string { return proto.CompactTextString(m) }
func (*TypeDescriptor) ProtoMessage()    {}

func (m *TypeDescriptor) GetBasicType() BasicType {
	if m != nil {
		return m.BasicType
	}
	return BasicType_BASIC_TYPE_NOT_SET
}

func (m *TypeDescriptor) GetArrayType() *TypeDescriptor {
	if m != nil {
		return m.ArrayType
	}
	return nil
}

func (m *TypeDescriptor) GetMapType() *TypeDescriptor {
	if m != nil {
		return m.MapType
	}
	return nil
}

type DecimalValue struct {
	Decimal string `protobuf:"bytes,1,opt,name=decimal,proto3" json:"decimal,omitempty"`
}

func (m *DecimalValue) Reset()         { *m = DecimalValue{} }
func (m *DecimalValue) String() string { return proto.CompactTextString(m) }
func (*DecimalValue) ProtoMessage()    {}

func (m *DecimalValue) GetDecimal() string {
	if m != nil {
		return m.Decimal
	}
	return ""
}

type DateValue struct {
	IsoDate string `protobuf:"bytes,1,opt,name=iso_date,json=isoDate,proto3" json:"iso_date,omitempty"`
}

func (m *DateValue) Reset()         { *m = DateValue{} }
func (m *DateValue) String() string { return proto.CompactTextString(m) }
func (*DateValue) ProtoMessage()    {}

func (m *DateValue) GetIsoDate() string {
	if m != nil {
		return m.IsoDate
	}
	return ""
}

// DatetimeValue holds an ISO 8601 datetime with microsecond precision.
// Writers truncate sub-microsecond digits, they never round.
type DatetimeValue struct {
	IsoDatetime string `protobuf:"bytes,1,opt,name=iso_datetime,json=isoDatetime,proto3" json:"iso_datetime,omitempty"`
}

func (m *DatetimeValue) Reset()         { *m = DatetimeValue{} }
func (m *DatetimeValue) String() string { return proto.CompactTextString(m) }
func (*DatetimeValue) ProtoMessage()    {}

func (m *DatetimeValue) GetIsoDatetime() string {
	if m != nil {
		return m.IsoDatetime
	}
	return ""
}

type ArrayValue struct {
	Items []*Value `protobuf:"bytes,1,rep,name=items" json:"items,omitempty"`
}

func (m *ArrayValue) Reset()         { *m = ArrayValue{} }
func (m *ArrayValue) String() string { return proto.CompactTextString(m) }
func (*ArrayValue) ProtoMessage()    {}

func (m *ArrayValue) GetItems() []*Value {
	if m != nil {
		return m.Items
	}
	return nil
}

type MapValue struct {
	Entries map[string]*Value `protobuf:"bytes,1,rep,name=entries" json:"entries,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
}

func (m *MapValue) Reset()         { *m = MapValue{} }
func (m *MapValue) String() string { return proto.CompactTextString(m) }
func (*MapValue) ProtoMessage()    {}

func (m *MapValue) GetEntries() map[string]*Value {
	if m != nil {
		return m.Entries
	}
	return nil
}

// Value is the canonical tagged value. Exactly one variant is set; the type
// descriptor, when present, must agree with the variant.
type Value struct {
	Type *TypeDescriptor `protobuf:"bytes,1,opt,name=type" json:"type,omitempty"`

	BooleanValue  *bool          `protobuf:"varint,2,opt,name=boolean_value,json=booleanValue" json:"boolean_value,omitempty"`
	IntegerValue  *int64         `protobuf:"varint,3,opt,name=integer_value,json=integerValue" json:"integer_value,omitempty"`
	FloatValue    *float64       `protobuf:"fixed64,4,opt,name=float_value,json=floatValue" json:"float_value,omitempty"`
	StringValue   *string        `protobuf:"bytes,5,opt,name=string_value,json=stringValue" json:"string_value,omitempty"`
	DecimalValue  *DecimalValue  `protobuf:"bytes,6,opt,name=decimal_value,json=decimalValue" json:"decimal_value,omitempty"`
	DateValue     *DateValue     `protobuf:"bytes,7,opt,name=date_value,json=dateValue" json:"date_value,omitempty"`
	DatetimeValue *DatetimeValue `protobuf:"bytes,8,opt,name=datetime_value,json=datetimeValue" json:"datetime_value,omitempty"`
	ArrayValue    *ArrayValue    `protobuf:"bytes,9,opt,name=array_value,json=arrayValue" json:"array_value,omitempty"`
	MapValue      *MapValue      `protobuf:"bytes,10,opt,name=map_value,json=mapValue" json:"map_value,omitempty"`
}

func (m *Value) Reset()         { *m = Value{} }
func (m *Value) String() string { return proto.CompactTextString(m) }
func (*Value) ProtoMessage()    {}

func (m *Value) GetType() *TypeDescriptor {
	if m != nil {
		return m.Type
	}
	return nil
}

func (m *Value) GetBooleanValue() bool {
	if m != nil && m.BooleanValue != nil {
		return *m.BooleanValue
	}
	return false
}

func (m *Value) GetIntegerValue() int64 {
	if m != nil && m.IntegerValue != nil {
		return *m.IntegerValue
	}
	return 0
}

func (m *Value) GetFloatValue() float64 {
	if m != nil && m.FloatValue != nil {
		return *m.FloatValue
	}
	return 0
}

func (m *Value) GetStringValue() string {
	if m != nil && m.StringValue != nil {
		return *m.StringValue
	}
	return ""
}

func (m *Value) GetDecimalValue() *DecimalValue {
	if m != nil {
		return m.DecimalValue
	}
	return nil
}

func (m *Value) GetDateValue() *DateValue {
	if m != nil {
		return m.DateValue
	}
	return nil
}

func (m *Value) GetDatetimeValue() *DatetimeValue {
	if m != nil {
		return m.DatetimeValue
	}
	return nil
}

func (m *Value) GetArrayValue() *ArrayValue {
	if m != nil {
		return m.ArrayValue
	}
	return nil
}

func (m *Value) GetMapValue() *MapValue {
	if m != nil {
		return m.MapValue
	}
	return nil
}

// TagHeader identifies one tag of one version of one object.
// Versions are dense and start at 1; version 0 marks a preallocated id.
type TagHeader struct {
	ObjectType      ObjectType     `protobuf:"varint,1,opt,name=object_type,json=objectType,proto3,enum=trac.metadata.ObjectType" json:"object_type,omitempty"`
	ObjectId        string         `protobuf:"bytes,2,opt,name=object_id,json=objectId,proto3" json:"object_id,omitempty"`
	ObjectVersion   int64          `protobuf:"varint,3,opt,name=object_version,json=objectVersion,proto3" json:"object_version,omitempty"`
	TagVersion      int64          `protobuf:"varint,4,opt,name=tag_version,json=tagVersion,proto3" json:"tag_version,omitempty"`
	ObjectTimestamp *DatetimeValue `protobuf:"bytes,5,opt,name=object_timestamp,json=objectTimestamp" json:"object_timestamp,omitempty"`
	TagTimestamp    *DatetimeValue `protobuf:"bytes,6,opt,name=tag_timestamp,json=tagTimestamp" json:"tag_timestamp,omitempty"`
	IsLatestObject  bool           `protobuf:"varint,7,opt,name=is_latest_object,json=isLatestObject,proto3" json:"is_latest_object,omitempty"`
	IsLatestTag     bool           `protobuf:"varint,8,opt,name=is_latest_tag,json=isLatestTag,proto3" json:"is_latest_tag,omitempty"`
}

func (m *TagHeader) Reset()         { *m = TagHeader{} }
func (m *TagHeader) String() string { return proto.CompactTextString(m) }
func (*TagHeader) ProtoMessage()    {}

func (m *TagHeader) GetObjectType() ObjectType {
	if m != nil {
		return m.ObjectType
	}
	return ObjectType_OBJECT_TYPE_NOT_SET
}

func (m *TagHeader) GetObjectId() string {
	if m != nil {
		return m.ObjectId
	}
	return ""
}

func (m *TagHeader) GetObjectVersion() int64 {
	if m != nil {
		return m.ObjectVersion
	}
	return 0
}

func (m *TagHeader) GetTagVersion() int64 {
	if m != nil {
		return m.TagVersion
	}
	return 0
}

func (m *TagHeader) GetObjectTimestamp() *DatetimeValue {
	if m != nil {
		return m.ObjectTimestamp
	}
	return nil
}

func (m *TagHeader) GetTagTimestamp() *DatetimeValue {
	if m != nil {
		return m.TagTimestamp
	}
	return nil
}

func (m *TagHeader) GetIsLatestObject() bool {
	if m != nil {
		return m.IsLatestObject
	}
	return false
}

func (m *TagHeader) GetIsLatestTag() bool {
	if m != nil {
		return m.IsLatestTag
	}
	return false
}

// TagSelector addresses exactly one tag. Exactly one object criterion
// (ObjectVersion | ObjectAsOf | LatestObject) and one tag criterion
// (TagVersion | TagAsOf | LatestTag) must be set.
type TagSelector struct {
	ObjectType ObjectType `protobuf:"varint,1,opt,name=object_type,json=objectType,proto3,enum=trac.metadata.ObjectType" json:"object_type,omitempty"`
	ObjectId   string     `protobuf:"bytes,2,opt,name=object_id,json=objectId,proto3" json:"object_id,omitempty"`

	ObjectVersion int64          `protobuf:"varint,3,opt,name=object_version,json=objectVersion,proto3" json:"object_version,omitempty"`
	ObjectAsOf    *DatetimeValue `protobuf:"bytes,4,opt,name=object_as_of,json=objectAsOf" json:"object_as_of,omitempty"`
	LatestObject  bool           `protobuf:"varint,5,opt,name=latest_object,json=latestObject,proto3" json:"latest_object,omitempty"`

	TagVersion int64          `protobuf:"varint,6,opt,name=tag_version,json=tagVersion,proto3" json:"tag_version,omitempty"`
	TagAsOf    *DatetimeValue `protobuf:"bytes,7,opt,name=tag_as_of,json=tagAsOf" json:"tag_as_of,omitempty"`
	LatestTag  bool           `protobuf:"varint,8,opt,name=latest_tag,json=latestTag,proto3" json:"latest_tag,omitempty"`
}

func (m *TagSelector) Reset()         { *m = TagSelector{} }
func (m *TagSelector) String() string { return proto.CompactTextString(m) }
func (*TagSelector) ProtoMessage()    {}

func (m *TagSelector) GetObjectType() ObjectType {
	if m != nil {
		return m.ObjectType
	}
	return ObjectType_OBJECT_TYPE_NOT_SET
}

func (m *TagSelector) GetObjectId() string {
	if m != nil {
		return m.ObjectId
	}
	return ""
}

func (m *TagSelector) GetObjectVersion() int64 {
	if m != nil {
		return m.ObjectVersion
	}
	return 0
}

func (m *TagSelector) GetObjectAsOf() *DatetimeValue {
	if m != nil {
		return m.ObjectAsOf
	}
	return nil
}

func (m *TagSelector) GetLatestObject() bool {
	if m != nil {
		return m.LatestObject
	}
	return false
}

func (m *TagSelector) GetTagVersion() int64 {
	if m != nil {
		return m.TagVersion
	}
	return 0
}

func (m *TagSelector) GetTagAsOf() *DatetimeValue {
	if m != nil {
		return m.TagAsOf
	}
	return nil
}

func (m *TagSelector) GetLatestTag() bool {
	if m != nil {
		return m.LatestTag
	}
	return false
}

type FieldSchema struct {
	FieldName   string    `protobuf:"bytes,1,opt,name=field_name,json=fieldName,proto3" json:"field_name,omitempty"`
	FieldType   BasicType `protobuf:"varint,2,opt,name=field_type,json=fieldType,proto3,enum=trac.metadata.BasicType" json:"field_type,omitempty"`
	Label       string    `protobuf:"bytes,3,opt,name=label,proto3" json:"label,omitempty"`
	BusinessKey bool      `protobuf:"varint,4,opt,name=business_key,json=businessKey,proto3" json:"business_key,omitempty"`
	Categorical bool      `protobuf:"varint,5,opt,name=categorical,proto3" json:"categorical,omitempty"`
}

func (m *FieldSchema) Reset()         { *m = FieldSchema{} }
func (m *FieldSchema) String() string { return proto.CompactTextString(m) }
func (*FieldSchema) ProtoMessage()    {}

func (m *FieldSchema) GetFieldName() string {
	if m != nil {
		return m.FieldName
	}
	return ""
}

func (m *FieldSchema) GetFieldType() BasicType {
	if m != nil {
		return m.FieldType
	}
	return BasicType_BASIC_TYPE_NOT_SET
}

func (m *FieldSchema) GetLabel() string {
	if m != nil {
		return m.Label
	}
	return ""
}

func (m *FieldSchema) GetBusinessKey() bool {
	if m != nil {
		return m.BusinessKey
	}
	return false
}

func (m *FieldSchema) GetCategorical() bool {
	if m != nil {
		return m.Categorical
	}
	return false
}

type SchemaDefinition struct {
	Fields []*FieldSchema `protobuf:"bytes,1,rep,name=fields" json:"fields,omitempty"`
}

func (m *SchemaDefinition) Reset()         { *m = SchemaDefinition{} }
func (m *SchemaDefinition) String() string { return proto.CompactTextString(m) }
func (*SchemaDefinition) ProtoMessage()    {}

func (m *SchemaDefinition) GetFields() []*FieldSchema {
	if m != nil {
		return m.Fields
	}
	return nil
}

type DataDefinition struct {
	Schema   *SchemaDefinition `protobuf:"bytes,1,opt,name=schema" json:"schema,omitempty"`
	RowCount int64             `protobuf:"varint,2,opt,name=row_count,json=rowCount,proto3" json:"row_count,omitempty"`
}

func (m *DataDefinition) Reset()         { *m = DataDefinition{} }
func (m *DataDefinition) String() string { return proto.CompactTextString(m) }
func (*DataDefinition) ProtoMessage()    {}

func (m *DataDefinition) GetSchema() *SchemaDefinition {
	if m != nil {
		return m.Schema
	}
	return nil
}

func (m *DataDefinition) GetRowCount() int64 {
	if m != nil {
		return m.RowCount
	}
	return 0
}

type ModelDefinition struct {
	Language   string                     `protobuf:"bytes,1,opt,name=language,proto3" json:"language,omitempty"`
	Repository string                     `protobuf:"bytes,2,opt,name=repository,proto3" json:"repository,omitempty"`
	Version    string                     `protobuf:"bytes,3,opt,name=version,proto3" json:"version,omitempty"`
	EntryPoint string                     `protobuf:"bytes,4,opt,name=entry_point,json=entryPoint,proto3" json:"entry_point,omitempty"`
	Path       string                     `protobuf:"bytes,5,opt,name=path,proto3" json:"path,omitempty"`
	Parameters map[string]*TypeDescriptor `protobuf:"bytes,6,rep,name=parameters" json:"parameters,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
}

func (m *ModelDefinition) Reset()         { *m = ModelDefinition{} }
func (m *ModelDefinition) String() string { return proto.CompactTextString(m) }
func (*ModelDefinition) ProtoMessage()    {}

func (m *ModelDefinition) GetLanguage() string {
	if m != nil {
		return m.Language
	}
	return ""
}

func (m *ModelDefinition) GetRepository() string {
	if m != nil {
		return m.Repository
	}
	return ""
}

func (m *ModelDefinition) GetVersion() string {
	if m != nil {
		return m.Version
	}
	return ""
}

func (m *ModelDefinition) GetEntryPoint() string {
	if m != nil {
		return m.EntryPoint
	}
	return ""
}

func (m *ModelDefinition) GetPath() string {
	if m != nil {
		return m.Path
	}
	return ""
}

func (m *ModelDefinition) GetParameters() map[string]*TypeDescriptor {
	if m != nil {
		return m.Parameters
	}
	return nil
}

type FlowNode struct {
	NodeType string   `protobuf:"bytes,1,opt,name=node_type,json=nodeType,proto3" json:"node_type,omitempty"`
	Inputs   []string `protobuf:"bytes,2,rep,name=inputs" json:"inputs,omitempty"`
	Outputs  []string `protobuf:"bytes,3,rep,name=outputs" json:"outputs,omitempty"`
}

func (m *FlowNode) Reset()         { *m = FlowNode{} }
func (m *FlowNode) String() string { return proto.CompactTextString(m) }
func (*FlowNode) ProtoMessage()    {}

func (m *FlowNode) GetNodeType() string {
	if m != nil {
		return m.NodeType
	}
	return ""
}

func (m *FlowNode) GetInputs() []string {
	if m != nil {
		return m.Inputs
	}
	return nil
}

func (m *FlowNode) GetOutputs() []string {
	if m != nil {
		return m.Outputs
	}
	return nil
}

type FlowEdge struct {
	Source string `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Target string `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
}

func (m *FlowEdge) Reset()         { *m = FlowEdge{} }
func (m *FlowEdge) String() string { return proto.CompactTextString(m) }
func (*FlowEdge) ProtoMessage()    {}

func (m *FlowEdge) GetSource() string {
	if m != nil {
		return m.Source
	}
	return ""
}

func (m *FlowEdge) GetTarget() string {
	if m != nil {
		return m.Target
	}
	return ""
}

type FlowDefinition struct {
	Nodes map[string]*FlowNode `protobuf:"bytes,1,rep,name=nodes" json:"nodes,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
	Edges []*FlowEdge          `protobuf:"bytes,2,rep,name=edges" json:"edges,omitempty"`
}

func (m *FlowDefinition) Reset()         { *m = FlowDefinition{} }
func (m *FlowDefinition) String() string { return proto.CompactTextString(m) }
func (*FlowDefinition) ProtoMessage()    {}

func (m *FlowDefinition) GetNodes() map[string]*FlowNode {
	if m != nil {
		return m.Nodes
	}
	return nil
}

func (m *FlowDefinition) GetEdges() []*FlowEdge {
	if m != nil {
		return m.Edges
	}
	return nil
}

type FileDefinition struct {
	Name      string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Extension string `protobuf:"bytes,2,opt,name=extension,proto3" json:"extension,omitempty"`
	MimeType  string `protobuf:"bytes,3,opt,name=mime_type,json=mimeType,proto3" json:"mime_type,omitempty"`
	Size      int64  `protobuf:"varint,4,opt,name=size,proto3" json:"size,omitempty"`
}

func (m *FileDefinition) Reset()         { *m = FileDefinition{} }
func (m *FileDefinition) String() string { return proto.CompactTextString(m) }
func (*FileDefinition) ProtoMessage()    {}

func (m *FileDefinition) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *FileDefinition) GetExtension() string {
	if m != nil {
		return m.Extension
	}
	return ""
}

func (m *FileDefinition) GetMimeType() string {
	if m != nil {
		return m.MimeType
	}
	return ""
}

func (m *FileDefinition) GetSize() int64 {
	if m != nil {
		return m.Size
	}
	return 0
}

type CustomDefinition struct {
	CustomSchemaType    string `protobuf:"bytes,1,opt,name=custom_schema_type,json=customSchemaType,proto3" json:"custom_schema_type,omitempty"`
	CustomSchemaVersion int32  `protobuf:"varint,2,opt,name=custom_schema_version,json=customSchemaVersion,proto3" json:"custom_schema_version,omitempty"`
	CustomData          []byte `protobuf:"bytes,3,opt,name=custom_data,json=customData,proto3" json:"custom_data,omitempty"`
}

func (m *CustomDefinition) Reset()         { *m = CustomDefinition{} }
func (m *CustomDefinition) String() string { return proto.CompactTextString(m) }
func (*CustomDefinition) ProtoMessage()    {}

func (m *CustomDefinition) GetCustomSchemaType() string {
	if m != nil {
		return m.CustomSchemaType
	}
	return ""
}

func (m *CustomDefinition) GetCustomSchemaVersion() int32 {
	if m != nil {
		return m.CustomSchemaVersion
	}
	return 0
}

func (m *CustomDefinition) GetCustomData() []byte {
	if m != nil {
		return m.CustomData
	}
	return nil
}

type StorageDefinition struct {
	Bucket        string `protobuf:"bytes,1,opt,name=bucket,proto3" json:"bucket,omitempty"`
	StorageKey    string `protobuf:"bytes,2,opt,name=storage_key,json=storageKey,proto3" json:"storage_key,omitempty"`
	StorageFormat string `protobuf:"bytes,3,opt,name=storage_format,json=storageFormat,proto3" json:"storage_format,omitempty"`
}

func (m *StorageDefinition) Reset()         { *m = StorageDefinition{} }
func (m *StorageDefinition) String() string { return proto.CompactTextString(m) }
func (*StorageDefinition) ProtoMessage()    {}

func (m *StorageDefinition) GetBucket() string {
	if m != nil {
		return m.Bucket
	}
	return ""
}

func (m *StorageDefinition) GetStorageKey() string {
	if m != nil {
		return m.StorageKey
	}
	return ""
}

func (m *StorageDefinition) GetStorageFormat() string {
	if m != nil {
		return m.StorageFormat
	}
	return ""
}

type JobDefinition struct {
	JobType    string                  `protobuf:"bytes,1,opt,name=job_type,json=jobType,proto3" json:"job_type,omitempty"`
	Target     *TagSelector            `protobuf:"bytes,2,opt,name=target" json:"target,omitempty"`
	Inputs     map[string]*TagSelector `protobuf:"bytes,3,rep,name=inputs" json:"inputs,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
	Parameters map[string]*Value       `protobuf:"bytes,4,rep,name=parameters" json:"parameters,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
	OutputKeys []string                `protobuf:"bytes,5,rep,name=output_keys,json=outputKeys" json:"output_keys,omitempty"`
}

func (m *JobDefinition) Reset()         { *m = JobDefinition{} }
func (m *JobDefinition) String() string { return proto.CompactTextString(m) }
func (*JobDefinition) ProtoMessage()    {}

func (m *JobDefinition) GetJobType() string {
	if m != nil {
		return m.JobType
	}
	return ""
}

func (m *JobDefinition) GetTarget() *TagSelector {
	if m != nil {
		return m.Target
	}
	return nil
}

func (m *JobDefinition) GetInputs() map[string]*TagSelector {
	if m != nil {
		return m.Inputs
	}
	return nil
}

func (m *JobDefinition) GetParameters() map[string]*Value {
	if m != nil {
		return m.Parameters
	}
	return nil
}

func (m *JobDefinition) GetOutputKeys() []string {
	if m != nil {
		return m.OutputKeys
	}
	return nil
}

type ResultDefinition struct {
	JobId         string                `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	StatusCode    JobStatusCode         `protobuf:"varint,2,opt,name=status_code,json=statusCode,proto3,enum=trac.metadata.JobStatusCode" json:"status_code,omitempty"`
	StatusMessage string                `protobuf:"bytes,3,opt,name=status_message,json=statusMessage,proto3" json:"status_message,omitempty"`
	Outputs       map[string]*TagHeader `protobuf:"bytes,4,rep,name=outputs" json:"outputs,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
}

func (m *ResultDefinition) Reset()         { *m = ResultDefinition{} }
func (m *ResultDefinition) String() string { return proto.CompactTextString(m) }
func (*ResultDefinition) ProtoMessage()    {}

func (m *ResultDefinition) GetJobId() string {
	if m != nil {
		return m.JobId
	}
	return ""
}

func (m *ResultDefinition) GetStatusCode() JobStatusCode {
	if m != nil {
		return m.StatusCode
	}
	return JobStatusCode_JOB_STATUS_NOT_SET
}

func (m *ResultDefinition) GetStatusMessage() string {
	if m != nil {
		return m.StatusMessage
	}
	return ""
}

func (m *ResultDefinition) GetOutputs() map[string]*TagHeader {
	if m != nil {
		return m.Outputs
	}
	return nil
}

type ConfigDefinition struct {
	ConfigClass string            `protobuf:"bytes,1,opt,name=config_class,json=configClass,proto3" json:"config_class,omitempty"`
	Properties  map[string]string `protobuf:"bytes,2,rep,name=properties" json:"properties,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *ConfigDefinition) Reset()         { *m = ConfigDefinition{} }
func (m *ConfigDefinition) String() string { return proto.CompactTextString(m) }
func (*ConfigDefinition) ProtoMessage()    {}

func (m *ConfigDefinition) GetConfigClass() string {
	if m != nil {
		return m.ConfigClass
	}
	return ""
}

func (m *ConfigDefinition) GetProperties() map[string]string {
	if m != nil {
		return m.Properties
	}
	return nil
}

type ResourceDefinition struct {
	ResourceType string            `protobuf:"bytes,1,opt,name=resource_type,json=resourceType,proto3" json:"resource_type,omitempty"`
	Protocol     string            `protobuf:"bytes,2,opt,name=protocol,proto3" json:"protocol,omitempty"`
	Properties   map[string]string `protobuf:"bytes,3,rep,name=properties" json:"properties,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *ResourceDefinition) Reset()         { *m = ResourceDefinition{} }
func (m *ResourceDefinition) String() string { return proto.CompactTextString(m) }
func (*ResourceDefinition) ProtoMessage()    {}

func (m *ResourceDefinition) GetResourceType() string {
	if m != nil {
		return m.ResourceType
	}
	return ""
}

func (m *ResourceDefinition) GetProtocol() string {
	if m != nil {
		return m.Protocol
	}
	return ""
}

func (m *ResourceDefinition) GetProperties() map[string]string {
	if m != nil {
		return m.Properties
	}
	return nil
}

// ObjectDefinition is a tagged union; exactly one body matches ObjectType.
// The store persists the serialized form and never inspects bodies.
type ObjectDefinition struct {
	ObjectType ObjectType `protobuf:"varint,1,opt,name=object_type,json=objectType,proto3,enum=trac.metadata.ObjectType" json:"object_type,omitempty"`

	Data     *DataDefinition     `protobuf:"bytes,2,opt,name=data" json:"data,omitempty"`
	Model    *ModelDefinition    `protobuf:"bytes,3,opt,name=model" json:"model,omitempty"`
	Flow     *FlowDefinition     `protobuf:"bytes,4,opt,name=flow" json:"flow,omitempty"`
	Job      *JobDefinition      `protobuf:"bytes,5,opt,name=job" json:"job,omitempty"`
	File     *FileDefinition     `protobuf:"bytes,6,opt,name=file" json:"file,omitempty"`
	Custom   *CustomDefinition   `protobuf:"bytes,7,opt,name=custom" json:"custom,omitempty"`
	Storage  *StorageDefinition  `protobuf:"bytes,8,opt,name=storage" json:"storage,omitempty"`
	Schema   *SchemaDefinition   `protobuf:"bytes,9,opt,name=schema" json:"schema,omitempty"`
	Result   *ResultDefinition   `protobuf:"bytes,10,opt,name=result" json:"result,omitempty"`
	Config   *ConfigDefinition   `protobuf:"bytes,11,opt,name=config" json:"config,omitempty"`
	Resource *ResourceDefinition `protobuf:"bytes,12,opt,name=resource" json:"resource,omitempty"`
}

func (m *ObjectDefinition) Reset()         { *m = ObjectDefinition{} }
func (m *ObjectDefinition) String() string { return proto.CompactTextString(m) }
func (*ObjectDefinition) ProtoMessage()    {}

func (m *ObjectDefinition) GetObjectType() ObjectType {
	if m != nil {
		return m.ObjectType
	}
	return ObjectType_OBJECT_TYPE_NOT_SET
}

func (m *ObjectDefinition) GetData() *DataDefinition {
	if m != nil {
		return m.Data
	}
	return nil
}

func (m *ObjectDefinition) GetModel() *ModelDefinition {
	if m != nil {
		return m.Model
	}
	return nil
}

func (m *ObjectDefinition) GetFlow() *FlowDefinition {
	if m != nil {
		return m.Flow
	}
	return nil
}

func (m *ObjectDefinition) GetJob() *JobDefinition {
	if m != nil {
		return m.Job
	}
	return nil
}

func (m *ObjectDefinition) GetFile() *FileDefinition {
	if m != nil {
		return m.File
	}
	return nil
}

func (m *ObjectDefinition) GetCustom() *CustomDefinition {
	if m != nil {
		return m.Custom
	}
	return nil
}

func (m *ObjectDefinition) GetStorage() *StorageDefinition {
	if m != nil {
		return m.Storage
	}
	return nil
}

func (m *ObjectDefinition) GetSchema() *SchemaDefinition {
	if m != nil {
		return m.Schema
	}
	return nil
}

func (m *ObjectDefinition) GetResult() *ResultDefinition {
	if m != nil {
		return m.Result
	}
	return nil
}

func (m *ObjectDefinition) GetConfig() *ConfigDefinition {
	if m != nil {
		return m.Config
	}
	return nil
}

func (m *ObjectDefinition) GetResource() *ResourceDefinition {
	if m != nil {
		return m.Resource
	}
	return nil
}

// Tag is the unit of read and write: identity, definition and attributes.
type Tag struct {
	Header     *TagHeader        `protobuf:"bytes,1,opt,name=header" json:"header,omitempty"`
	Definition *ObjectDefinition `protobuf:"bytes,2,opt,name=definition" json:"definition,omitempty"`
	Attrs      map[string]*Value `protobuf:"bytes,3,rep,name=attrs" json:"attrs,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
}

func (m *Tag) Reset()         { *m = Tag{} }
func (m *Tag) String() string { return proto.CompactTextString(m) }
func (*Tag) ProtoMessage()    {}

func (m *Tag) GetHeader() *TagHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *Tag) GetDefinition() *ObjectDefinition {
	if m != nil {
		return m.Definition
	}
	return nil
}

func (m *Tag) GetAttrs() map[string]*Value {
	if m != nil {
		return m.Attrs
	}
	return nil
}

// SearchTerm is a leaf predicate over one attribute.
type SearchTerm struct {
	AttrName    string         `protobuf:"bytes,1,opt,name=attr_name,json=attrName,proto3" json:"attr_name,omitempty"`
	AttrType    BasicType      `protobuf:"varint,2,opt,name=attr_type,json=attrType,proto3,enum=trac.metadata.BasicType" json:"attr_type,omitempty"`
	Operator    SearchOperator `protobuf:"varint,3,opt,name=operator,proto3,enum=trac.metadata.SearchOperator" json:"operator,omitempty"`
	SearchValue *Value         `protobuf:"bytes,4,opt,name=search_value,json=searchValue" json:"search_value,omitempty"`
}

func (m *SearchTerm) Reset()         { *m = SearchTerm{} }
func (m *SearchTerm) String() string { return proto.CompactTextString(m) }
func (*SearchTerm) ProtoMessage()    {}

func (m *SearchTerm) GetAttrName() string {
	if m != nil {
		return m.AttrName
	}
	return ""
}

func (m *SearchTerm) GetAttrType() BasicType {
	if m != nil {
		return m.AttrType
	}
	return BasicType_BASIC_TYPE_NOT_SET
}

func (m *SearchTerm) GetOperator() SearchOperator {
	if m != nil {
		return m.Operator
	}
	return SearchOperator_SEARCH_OPERATOR_NOT_SET
}

func (m *SearchTerm) GetSearchValue() *Value {
	if m != nil {
		return m.SearchValue
	}
	return nil
}

// SearchExpression is either a term or a logical combination, never both.
type SearchExpression struct {
	Term    *SearchTerm        `protobuf:"bytes,1,opt,name=term" json:"term,omitempty"`
	Logical *LogicalExpression `protobuf:"bytes,2,opt,name=logical" json:"logical,omitempty"`
}

func (m *SearchExpression) Reset()         { *m = SearchExpression{} }
func (m *SearchExpression) String() string { return proto.CompactTextString(m) }
func (*SearchExpression) ProtoMessage()    {}

func (m *SearchExpression) GetTerm() *SearchTerm {
	if m != nil {
		return m.Term
	}
	return nil
}

func (m *SearchExpression) GetLogical() *LogicalExpression {
	if m != nil {
		return m.Logical
	}
	return nil
}

type LogicalExpression struct {
	Operator LogicalOperator     `protobuf:"varint,1,opt,name=operator,proto3,enum=trac.metadata.LogicalOperator" json:"operator,omitempty"`
	Expr     []*SearchExpression `protobuf:"bytes,2,rep,name=expr" json:"expr,omitempty"`
}

func (m *LogicalExpression) Reset()         { *m = LogicalExpression{} }
func (m *LogicalExpression) String() string { return proto.CompactTextString(m) }
func (*LogicalExpression) ProtoMessage()    {}

func (m *LogicalExpression) GetOperator() LogicalOperator {
	if m != nil {
		return m.Operator
	}
	return LogicalOperator_LOGICAL_OPERATOR_NOT_SET
}

func (m *LogicalExpression) GetExpr() []*SearchExpression {
	if m != nil {
		return m.Expr
	}
	return nil
}

type SearchParameters struct {
	ObjectType    ObjectType        `protobuf:"varint,1,opt,name=object_type,json=objectType,proto3,enum=trac.metadata.ObjectType" json:"object_type,omitempty"`
	Search        *SearchExpression `protobuf:"bytes,2,opt,name=search" json:"search,omitempty"`
	SearchAsOf    *DatetimeValue    `protobuf:"bytes,3,opt,name=search_as_of,json=searchAsOf" json:"search_as_of,omitempty"`
	PriorVersions bool              `protobuf:"varint,4,opt,name=prior_versions,json=priorVersions,proto3" json:"prior_versions,omitempty"`
	PriorTags     bool              `protobuf:"varint,5,opt,name=prior_tags,json=priorTags,proto3" json:"prior_tags,omitempty"`
}

func (m *SearchParameters) Reset()         { *m = SearchParameters{} }
func (m *SearchParameters) String() string { return proto.CompactTextString(m) }
func (*SearchParameters) ProtoMessage()    {}

func (m *SearchParameters) GetObjectType() ObjectType {
	if m != nil {
		return m.ObjectType
	}
	return ObjectType_OBJECT_TYPE_NOT_SET
}

func (m *SearchParameters) GetSearch() *SearchExpression {
	if m != nil {
		return m.Search
	}
	return nil
}

func (m *SearchParameters) GetSearchAsOf() *DatetimeValue {
	if m != nil {
		return m.SearchAsOf
	}
	return nil
}

func (m *SearchParameters) GetPriorVersions() bool {
	if m != nil {
		return m.PriorVersions
	}
	return false
}

func (m *SearchParameters) GetPriorTags() bool {
	if m != nil {
		return m.PriorTags
	}
	return false
}

type TenantInfo struct {
	TenantCode  string `protobuf:"bytes,1,opt,name=tenant_code,json=tenantCode,proto3" json:"tenant_code,omitempty"`
	Description string `protobuf:"bytes,2,opt,name=description,proto3" json:"description,omitempty"`
}

func (m *TenantInfo) Reset()         { *m = TenantInfo{} }
func (m *TenantInfo) String() string { return proto.CompactTextString(m) }
func (*TenantInfo) ProtoMessage()    {}

func (m *TenantInfo) GetTenantCode() string {
	if m != nil {
		return m.TenantCode
	}
	return ""
}

func (m *TenantInfo) GetDescription() string {
	if m != nil {
		return m.Description
	}
	return ""
}

func init() {
	proto.RegisterType((*TypeDescriptor)(nil), "trac.metadata.TypeDescriptor")
	golang_proto.RegisterType((*TypeDescriptor)(nil), "trac.metadata.TypeDescriptor")
	proto.RegisterType((*DecimalValue)(nil), "trac.metadata.DecimalValue")
	golang_proto.RegisterType((*DecimalValue)(nil), "trac.metadata.DecimalValue")
	proto.RegisterType((*DateValue)(nil), "trac.metadata.DateValue")
	golang_proto.RegisterType((*DateValue)(nil), "trac.metadata.DateValue")
	proto.RegisterType((*DatetimeValue)(nil), "trac.metadata.DatetimeValue")
	golang_proto.RegisterType((*DatetimeValue)(nil), "trac.metadata.DatetimeValue")
	proto.RegisterType((*ArrayValue)(nil), "trac.metadata.ArrayValue")
	golang_proto.RegisterType((*ArrayValue)(nil), "trac.metadata.ArrayValue")
	proto.RegisterType((*MapValue)(nil), "trac.metadata.MapValue")
	golang_proto.RegisterType((*MapValue)(nil), "trac.metadata.MapValue")
	proto.RegisterType((*Value)(nil), "trac.metadata.Value")
	golang_proto.RegisterType((*Value)(nil), "trac.metadata.Value")
	proto.RegisterType((*TagHeader)(nil), "trac.metadata.TagHeader")
	golang_proto.RegisterType((*TagHeader)(nil), "trac.metadata.TagHeader")
	proto.RegisterType((*TagSelector)(nil), "trac.metadata.TagSelector")
	golang_proto.RegisterType((*TagSelector)(nil), "trac.metadata.TagSelector")
	proto.RegisterType((*FieldSchema)(nil), "trac.metadata.FieldSchema")
	golang_proto.RegisterType((*FieldSchema)(nil), "trac.metadata.FieldSchema")
	proto.RegisterType((*SchemaDefinition)(nil), "trac.metadata.SchemaDefinition")
	golang_proto.RegisterType((*SchemaDefinition)(nil), "trac.metadata.SchemaDefinition")
	proto.RegisterType((*DataDefinition)(nil), "trac.metadata.DataDefinition")
	golang_proto.RegisterType((*DataDefinition)(nil), "trac.metadata.DataDefinition")
	proto.RegisterType((*ModelDefinition)(nil), "trac.metadata.ModelDefinition")
	golang_proto.RegisterType((*ModelDefinition)(nil), "trac.metadata.ModelDefinition")
	proto.RegisterType((*FlowNode)(nil), "trac.metadata.FlowNode")
	golang_proto.RegisterType((*FlowNode)(nil), "trac.metadata.FlowNode")
	proto.RegisterType((*FlowEdge)(nil), "trac.metadata.FlowEdge")
	golang_proto.RegisterType((*FlowEdge)(nil), "trac.metadata.FlowEdge")
	proto.RegisterType((*FlowDefinition)(nil), "trac.metadata.FlowDefinition")
	golang_proto.RegisterType((*FlowDefinition)(nil), "trac.metadata.FlowDefinition")
	proto.RegisterType((*FileDefinition)(nil), "trac.metadata.FileDefinition")
	golang_proto.RegisterType((*FileDefinition)(nil), "trac.metadata.FileDefinition")
	proto.RegisterType((*CustomDefinition)(nil), "trac.metadata.CustomDefinition")
	golang_proto.RegisterType((*CustomDefinition)(nil), "trac.metadata.CustomDefinition")
	proto.RegisterType((*StorageDefinition)(nil), "trac.metadata.StorageDefinition")
	golang_proto.RegisterType((*StorageDefinition)(nil), "trac.metadata.StorageDefinition")
	proto.RegisterType((*JobDefinition)(nil), "trac.metadata.JobDefinition")
	golang_proto.RegisterType((*JobDefinition)(nil), "trac.metadata.JobDefinition")
	proto.RegisterType((*ResultDefinition)(nil), "trac.metadata.ResultDefinition")
	golang_proto.RegisterType((*ResultDefinition)(nil), "trac.metadata.ResultDefinition")
	proto.RegisterType((*ConfigDefinition)(nil), "trac.metadata.ConfigDefinition")
	golang_proto.RegisterType((*ConfigDefinition)(nil), "trac.metadata.ConfigDefinition")
	proto.RegisterType((*ResourceDefinition)(nil), "trac.metadata.ResourceDefinition")
	golang_proto.RegisterType((*ResourceDefinition)(nil), "trac.metadata.ResourceDefinition")
	proto.RegisterType((*ObjectDefinition)(nil), "trac.metadata.ObjectDefinition")
	golang_proto.RegisterType((*ObjectDefinition)(nil), "trac.metadata.ObjectDefinition")
	proto.RegisterType((*Tag)(nil), "trac.metadata.Tag")
	golang_proto.RegisterType((*Tag)(nil), "trac.metadata.Tag")
	proto.RegisterType((*SearchTerm)(nil), "trac.metadata.SearchTerm")
	golang_proto.RegisterType((*SearchTerm)(nil), "trac.metadata.SearchTerm")
	proto.RegisterType((*SearchExpression)(nil), "trac.metadata.SearchExpression")
	golang_proto.RegisterType((*SearchExpression)(nil), "trac.metadata.SearchExpression")
	proto.RegisterType((*LogicalExpression)(nil), "trac.metadata.LogicalExpression")
	golang_proto.RegisterType((*LogicalExpression)(nil), "trac.metadata.LogicalExpression")
	proto.RegisterType((*SearchParameters)(nil), "trac.metadata.SearchParameters")
	golang_proto.RegisterType((*SearchParameters)(nil), "trac.metadata.SearchParameters")
	proto.RegisterType((*TenantInfo)(nil), "trac.metadata.TenantInfo")
	golang_proto.RegisterType((*TenantInfo)(nil), "trac.metadata.TenantInfo")

	proto.RegisterEnum("trac.metadata.BasicType", BasicType_name, BasicType_value)
	golang_proto.RegisterEnum("trac.metadata.BasicType", BasicType_name, BasicType_value)
	proto.RegisterEnum("trac.metadata.ObjectType", ObjectType_name, ObjectType_value)
	golang_proto.RegisterEnum("trac.metadata.ObjectType", ObjectType_name, ObjectType_value)
	proto.RegisterEnum("trac.metadata.SearchOperator", SearchOperator_name, SearchOperator_value)
	golang_proto.RegisterEnum("trac.metadata.SearchOperator", SearchOperator_name, SearchOperator_value)
	proto.RegisterEnum("trac.metadata.LogicalOperator", LogicalOperator_name, LogicalOperator_value)
	golang_proto.RegisterEnum("trac.metadata.LogicalOperator", LogicalOperator_name, LogicalOperator_value)
	proto.RegisterEnum("trac.metadata.JobStatusCode", JobStatusCode_name, JobStatusCode_value)
	golang_proto.RegisterEnum("trac.metadata.JobStatusCode", JobStatusCode_name, JobStatusCode_value)
}
