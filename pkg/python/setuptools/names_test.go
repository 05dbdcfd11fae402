package setuptools_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

func TestSafeName(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"mojadata":      "mojadata",
		"moja.data":     "moja.data",
		"moja data":     "moja-data",
		"moja_data":     "moja-data",
		"jupyter--lab!": "jupyter-lab-",
	}
	for input, expected := range testcases {
		assert.Equal(t, expected, setuptools.SafeName(input), "input=%q", input)
	}
}

func TestToFilename(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"moja-data": "moja_data",
		"mojadata":  "mojadata",
	}
	for input, expected := range testcases {
		assert.Equal(t, expected, setuptools.ToFilename(input), "input=%q", input)
	}
}

func TestEggInfoDir(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"mojadata":  "mojadata.egg-info",
		"moja.data": "moja.data.egg-info",
		"moja data": "moja_data.egg-info",
		"Moja-Data": "Moja_Data.egg-info",
	}
	for input, expected := range testcases {
		assert.Equal(t, expected, setuptools.EggInfoDir(input), "input=%q", input)
	}
}
