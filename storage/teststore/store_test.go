// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package teststore

import (
	"testing"

	"trac.io/trac/storage/testsuite"
)

func TestSuite(t *testing.T) {
	testsuite.RunTests(t, New())
}
