package pep425_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelwright/pkg/python/pep425"
)

func TestParseTag(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		InStr  string
		OutVal *pep425.Tag
		OutErr string
	}{
		"simple":     {"py3-none-any", &pep425.Tag{Python: "py3", ABI: "none", Platform: "any"}, ""},
		"compressed": {"py2.py3-none-any", &pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"}, ""},
		"cpython":    {"cp310-cp310-manylinux_2_17_x86_64", &pep425.Tag{Python: "cp310", ABI: "cp310", Platform: "manylinux_2_17_x86_64"}, ""},
		"short":      {"py3-none", nil, `pep425.ParseTag: expected 3 "-"-separated parts, got 2: "py3-none"`},
		"long":       {"py3-none-any-whoops", nil, `pep425.ParseTag: expected 3 "-"-separated parts, got 4: "py3-none-any-whoops"`},
		"empty":      {"", nil, `pep425.ParseTag: expected 3 "-"-separated parts, got 1: ""`},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			val, err := pep425.ParseTag(tc.InStr)
			if tc.OutErr == "" {
				require.NoError(t, err)
				require.NotNil(t, val)
				assert.Equal(t, tc.OutVal, val)
				assert.Equal(t, tc.InStr, val.String())
			} else {
				assert.Nil(t, val)
				assert.EqualError(t, err, tc.OutErr)
			}
		})
	}
}

func TestDecompress(t *testing.T) {
	t.Parallel()
	in := pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "manylinux1_x86_64.any"}
	assert.Equal(t,
		[]pep425.Tag{
			{Python: "py2", ABI: "none", Platform: "manylinux1_x86_64"},
			{Python: "py2", ABI: "none", Platform: "any"},
			{Python: "py3", ABI: "none", Platform: "manylinux1_x86_64"},
			{Python: "py3", ABI: "none", Platform: "any"},
		},
		in.Decompress())
}

func TestInstaller(t *testing.T) {
	t.Parallel()
	// An abbreviated `packaging.tags.sys_tags()` listing for a CPython 3.10 on linux/amd64.
	inst := pep425.Installer{
		{Python: "cp310", ABI: "cp310", Platform: "manylinux_2_17_x86_64"},
		{Python: "cp310", ABI: "abi3", Platform: "manylinux_2_17_x86_64"},
		{Python: "cp310", ABI: "none", Platform: "manylinux_2_17_x86_64"},
		{Python: "py3", ABI: "none", Platform: "any"},
	}

	pure := pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"}
	native := pep425.Tag{Python: "cp310", ABI: "cp310", Platform: "manylinux_2_17_x86_64"}
	foreign := pep425.Tag{Python: "cp39", ABI: "cp39", Platform: "win_amd64"}

	assert.True(t, inst.Supports(pure))
	assert.True(t, inst.Supports(native))
	assert.False(t, inst.Supports(foreign))

	assert.Equal(t, 1, inst.Preference(native))
	assert.Equal(t, 4, inst.Preference(pure))
	assert.Equal(t, len(inst)+1, inst.Preference(foreign))
}
