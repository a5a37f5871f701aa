// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package local

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trac.io/trac/pkg/trac"
)

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "true", renderValue(trac.Bool(true)))
	assert.Equal(t, "hello", renderValue(trac.String("hello")))
	assert.Equal(t, "42", renderValue(trac.Int(42)))
	assert.Equal(t, "1.5", renderValue(trac.Float(1.5)))
	assert.Equal(t, "9.50", renderValue(trac.Decimal("9.50")))

	// zero values still render by their declared type
	assert.Equal(t, "false", renderValue(trac.Bool(false)))
	assert.Equal(t, "0", renderValue(trac.Int(0)))
	assert.Equal(t, "0", renderValue(trac.Float(0)))
	assert.Equal(t, "", renderValue(nil))
}
