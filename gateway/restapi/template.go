// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package restapi

import (
	"encoding/json"
	"strings"

	"github.com/gogo/protobuf/jsonpb"
	"github.com/gogo/protobuf/proto"
)

// Template is a uri pattern with literal segments and {var} segments.
// Var names are request message field paths in json naming, dots
// descending into nested messages.
type Template struct {
	raw      string
	segments []segment
}

type segment struct {
	literal string
	varPath string
}

// ParseTemplate parses a pattern like
// /trac-meta/api/v1/{tenant}/read-object/{selector.objectType}/{selector.objectId}.
func ParseTemplate(raw string) (*Template, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, Error.New("template %q must start with /", raw)
	}
	var segments []segment
	for _, part := range strings.Split(raw[1:], "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, Error.New("template %q has an empty variable", raw)
			}
			segments = append(segments, segment{varPath: name})
			continue
		}
		if strings.ContainsAny(part, "{}") {
			return nil, Error.New("template %q mixes literal and variable in %q", raw, part)
		}
		segments = append(segments, segment{literal: part})
	}
	return &Template{raw: raw, segments: segments}, nil
}

// MustParseTemplate parses or panics, for the static route tables.
func MustParseTemplate(raw string) *Template {
	template, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return template
}

// String returns the pattern.
func (t *Template) String() string { return t.raw }

// Match tests a request path against the template and extracts the
// variable values.
func (t *Template) Match(path string) (map[string]string, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")
	if len(parts) != len(t.segments) {
		return nil, false
	}

	vars := map[string]string{}
	for i, seg := range t.segments {
		if seg.varPath != "" {
			if parts[i] == "" {
				return nil, false
			}
			vars[seg.varPath] = parts[i]
			continue
		}
		if parts[i] != seg.literal {
			return nil, false
		}
	}
	return vars, true
}

// bindVars writes path variables into the request message. The values
// go through a nested json document so enums, numbers and strings all
// land with their proper types, then merge into the body-decoded
// message. Unmarshal would reset it, merge keeps the body fields.
func bindVars(msg proto.Message, vars map[string]string) error {
	if len(vars) == 0 {
		return nil
	}

	doc := map[string]interface{}{}
	for path, value := range vars {
		node := doc
		fields := strings.Split(path, ".")
		for _, field := range fields[:len(fields)-1] {
			child, ok := node[field].(map[string]interface{})
			if !ok {
				child = map[string]interface{}{}
				node[field] = child
			}
			node = child
		}
		node[fields[len(fields)-1]] = value
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return Error.Wrap(err)
	}

	bound := proto.Clone(msg)
	bound.Reset()
	decoder := &jsonpb.Unmarshaler{AllowUnknownFields: false}
	if err := decoder.Unmarshal(strings.NewReader(string(encoded)), bound); err != nil {
		return Error.New("invalid path variable: %v", err)
	}
	proto.Merge(msg, bound)
	return nil
}
