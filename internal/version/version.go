// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package version provides the build information of the platform binaries
// and the periodic check against the version control server.
package version

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
)

var (
	mon = monkit.Package()

	// Error is the default error class for the version package.
	Error = errs.Class("version")

	// verRegex matches a semantic version, e.g. v1.2.3.
	verRegex = regexp.MustCompile("^" + SemVerRegex + "$")
)

// SemVerRegex is the regular expression used to parse a semantic version.
const SemVerRegex = `v?([0-9]+)\.([0-9]+)\.([0-9]+)`

// These fields are set by the linker flags at release build time.
var (
	buildTimestamp  string
	buildCommitHash string
	buildVersion    string
	buildRelease    string

	// Build is the current build information.
	Build Info
)

// Info is the versioning information for a binary.
type Info struct {
	Timestamp  time.Time `json:"timestamp,omitempty"`
	CommitHash string    `json:"commitHash,omitempty"`
	Version    SemVer    `json:"version"`
	Release    bool      `json:"release,omitempty"`
}

// Marshal converts the build information to a json byte slice.
func (v Info) Marshal() ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return data, nil
}

// SemVer represents a semantic version.
type SemVer struct {
	Major int64 `json:"major"`
	Minor int64 `json:"minor"`
	Patch int64 `json:"patch"`
}

// NewSemVer parses a given version and returns an instance of SemVer or
// an error if unable to parse the version.
func NewSemVer(v string) (SemVer, error) {
	match := verRegex.FindStringSubmatch(v)
	if match == nil {
		return SemVer{}, Error.New("invalid semantic version: %q", v)
	}

	major, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return SemVer{}, Error.Wrap(err)
	}
	minor, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return SemVer{}, Error.Wrap(err)
	}
	patch, err := strconv.ParseInt(match[3], 10, 64)
	if err != nil {
		return SemVer{}, Error.Wrap(err)
	}

	return SemVer{Major: major, Minor: minor, Patch: patch}, nil
}

// Compare compares the version to other, returning -1 when less,
// 0 when equal and 1 when greater.
func (sem SemVer) Compare(other SemVer) int {
	if v := compareInt64(sem.Major, other.Major); v != 0 {
		return v
	}
	if v := compareInt64(sem.Minor, other.Minor); v != 0 {
		return v
	}
	return compareInt64(sem.Patch, other.Patch)
}

// IsZero checks if the semantic version is its zero value.
func (sem SemVer) IsZero() bool {
	return sem == SemVer{}
}

// String converts the SemVer struct to a more easy to handle string.
func (sem SemVer) String() string {
	return fmt.Sprintf("v%d.%d.%d", sem.Major, sem.Minor, sem.Patch)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Version represents a released version with its download url.
type Version struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// SemVer parses the version string.
func (ver Version) SemVer() (SemVer, error) {
	return NewSemVer(ver.Version)
}

// AllowedVersions provides the minimum allowed versions for the platform
// services, as served by the version control server.
type AllowedVersions struct {
	Metadata     SemVer
	Orchestrator SemVer
	Gateway      SemVer
	Executor     SemVer

	Processes Processes `json:"processes"`
}

// Processes describes versions for each binary.
type Processes struct {
	Metadata     Process `json:"metadata"`
	Orchestrator Process `json:"orchestrator"`
	Gateway      Process `json:"gateway"`
	Executor     Process `json:"executor"`
}

// Process versions for a single binary.
type Process struct {
	Minimum   Version `json:"minimum"`
	Suggested Version `json:"suggested"`
	Rollout   Rollout `json:"rollout"`
}

// Rollout represents the state of a staged rollout.
type Rollout struct {
	Seed   RolloutBytes `json:"seed"`
	Cursor RolloutBytes `json:"cursor"`
}

// RolloutBytes implements json un/marshalling using hex representation.
type RolloutBytes [32]byte

// MarshalJSON hex-encodes RolloutBytes and escapes with quotes.
func (rb RolloutBytes) MarshalJSON() ([]byte, error) {
	zero := RolloutBytes{}
	if bytes.Equal(rb[:], zero[:]) {
		return []byte{'"', '"'}, nil
	}
	return []byte(fmt.Sprintf("\"%x\"", rb)), nil
}

// UnmarshalJSON drops the quotes and hex-decodes RolloutBytes.
func (rb *RolloutBytes) UnmarshalJSON(b []byte) error {
	if _, err := hex.Decode(rb[:], b[1:len(b)-1]); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

func init() {
	if buildVersion == "" && buildTimestamp == "" && buildCommitHash == "" && buildRelease == "" {
		return
	}

	timestamp, err := strconv.ParseInt(buildTimestamp, 10, 64)
	if err != nil {
		panic(Error.Wrap(err))
	}

	sv, err := NewSemVer(buildVersion)
	if err != nil {
		panic(err)
	}

	Build = Info{
		Timestamp:  time.Unix(timestamp, 0),
		CommitHash: buildCommitHash,
		Version:    sv,
		Release:    strings.ToLower(buildRelease) == "true",
	}

	if Build.Timestamp.Unix() == 0 || Build.CommitHash == "" {
		Build.Release = false
	}
}
