// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package storelogger_test

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"trac.io/trac/storage/storelogger"
	"trac.io/trac/storage/teststore"
	"trac.io/trac/storage/testsuite"
)

func TestSuite(t *testing.T) {
	store := teststore.New()
	logged := storelogger.New(zaptest.NewLogger(t), store)
	testsuite.RunTests(t, logged)
}
