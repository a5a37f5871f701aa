// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package restapi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trac.io/trac/pkg/pb"
)

func TestTemplateMatch(t *testing.T) {
	template, err := ParseTemplate("/trac-meta/api/v1/{tenant}/read-object/{selector.objectType}/{selector.objectId}")
	require.NoError(t, err)

	vars, ok := template.Match("/trac-meta/api/v1/ACME/read-object/MODEL/abc-123")
	require.True(t, ok)
	require.Equal(t, map[string]string{
		"tenant":              "ACME",
		"selector.objectType": "MODEL",
		"selector.objectId":   "abc-123",
	}, vars)

	_, ok = template.Match("/trac-meta/api/v1/ACME/read-object/MODEL")
	require.False(t, ok)
	_, ok = template.Match("/trac-meta/api/v1/ACME/search/MODEL/abc-123")
	require.False(t, ok)
	// empty variable segments never match
	_, ok = template.Match("/trac-meta/api/v1//read-object/MODEL/abc-123")
	require.False(t, ok)
}

func TestTemplateValidation(t *testing.T) {
	_, err := ParseTemplate("no-leading-slash")
	require.Error(t, err)
	_, err = ParseTemplate("/a/{}")
	require.Error(t, err)
	_, err = ParseTemplate("/a/half{var}")
	require.Error(t, err)
}

func TestBindVars(t *testing.T) {
	req := &pb.MetadataReadRequest{
		Selector: &pb.TagSelector{LatestTag: true},
	}
	err := bindVars(req, map[string]string{
		"tenant":                 "ACME",
		"selector.objectType":    "MODEL",
		"selector.objectId":      "abc-123",
		"selector.objectVersion": "4",
	})
	require.NoError(t, err)

	require.Equal(t, "ACME", req.Tenant)
	require.Equal(t, pb.ObjectType_MODEL, req.Selector.ObjectType)
	require.Equal(t, "abc-123", req.Selector.ObjectId)
	require.Equal(t, int64(4), req.Selector.ObjectVersion)
	// fields already on the message survive the merge
	require.True(t, req.Selector.LatestTag)
}

func TestBindVarsRejectsBadValues(t *testing.T) {
	req := &pb.MetadataReadRequest{}
	err := bindVars(req, map[string]string{"selector.objectType": "NOT_A_TYPE"})
	require.Error(t, err)

	err = bindVars(req, map[string]string{"selector.objectVersion": "not-a-number"})
	require.Error(t, err)
}
