package translator

import (
	"context"
	"testing"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNames(t *testing.T) {
	vs := map[string]gst.ShaderVariable{
		"model":      {MappedName: "_umodel"},
		"projection": {MappedName: "_uprojection"},
	}
	fs := map[string]gst.ShaderVariable{
		"tint":  {MappedName: "_utint"},
		"model": {MappedName: "_umodel"},
		"bare":  {},
	}

	names := mergeNames(vs, fs)
	assert.Equal(t, map[string]string{
		"model":      "_umodel",
		"projection": "_uprojection",
		"tint":       "_utint",
	}, names)
}

func TestMergeNamesEmpty(t *testing.T) {
	assert.Empty(t, mergeNames())
	assert.Empty(t, mergeNames(nil, nil))
}

func TestNewAndClose(t *testing.T) {
	tr, err := New(context.Background())
	require.NoError(t, err)
	assert.NoError(t, tr.Close())
}
