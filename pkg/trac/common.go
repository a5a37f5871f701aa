// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package trac holds the domain model shared by every platform service:
// object identity, the value type system and the canonical error classes.
package trac

import (
	"regexp"

	"github.com/zeebo/errs"
)

var (
	// Error is the default error class for platform packages.
	Error = errs.Class("trac")

	// ErrInvalidInput rejects malformed or inconsistent request content.
	ErrInvalidInput = errs.Class("invalid input")
	// ErrInvalidType rejects values that disagree with their declared type.
	ErrInvalidType = errs.Class("invalid type")
	// ErrNotFound reports a missing object, version or tag.
	ErrNotFound = errs.Class("not found")
	// ErrAlreadyExists reports a duplicate id on create.
	ErrAlreadyExists = errs.Class("already exists")
	// ErrVersionConflict reports a lost object-version race.
	ErrVersionConflict = errs.Class("version conflict")
	// ErrTagVersionConflict reports a lost tag-version race.
	ErrTagVersionConflict = errs.Class("tag version conflict")
	// ErrWrongObjectType reports a selector whose type does not match the
	// stored object.
	ErrWrongObjectType = errs.Class("wrong object type")
	// ErrPermissionDenied reports an operation the caller may not perform.
	ErrPermissionDenied = errs.Class("permission denied")
	// ErrUnauthenticated reports missing or unusable credentials.
	ErrUnauthenticated = errs.Class("unauthenticated")
	// ErrResourceExhausted reports a full queue or an exceeded quota.
	ErrResourceExhausted = errs.Class("resource exhausted")
	// ErrNotImplemented reports an operation outside the supported surface.
	ErrNotImplemented = errs.Class("not implemented")

	// ErrCacheNotFound reports a missing job cache entry.
	ErrCacheNotFound = errs.Class("cache entry not found")
	// ErrCacheTicket reports a stale or superseded cache ticket.
	ErrCacheTicket = errs.Class("cache ticket")
	// ErrExecutorUnavailable reports a transient executor failure; callers
	// are expected to retry.
	ErrExecutorUnavailable = errs.Class("executor unavailable")
)

// ReservedAttrPrefix marks attributes owned by the platform. Client writes
// must not set them.
const ReservedAttrPrefix = "trac_"

var identifierRx = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether s can be used as an attribute name,
// tenant code or other symbolic name.
func IsValidIdentifier(s string) bool {
	return identifierRx.MatchString(s)
}

// IsReservedAttrName reports whether name belongs to the platform.
func IsReservedAttrName(name string) bool {
	if len(name) == 0 {
		return false
	}
	if name[0] == '_' {
		name = name[1:]
	}
	return len(name) >= len(ReservedAttrPrefix) &&
		name[:len(ReservedAttrPrefix)] == ReservedAttrPrefix
}
