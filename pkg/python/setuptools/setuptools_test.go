package setuptools_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

const mojadataPKGINFO = `Metadata-Version: 2.1
Name: mojadata
Version: 4.3.5
Summary: Mojadata Tiler
Home-page: https://github.com/SLEEK-TOOLS/moja.data
Author: Moja.global
License: MPL2
Requires-Python: >=3.10

Tiling utilities for moja.global.
`

const mojadataSetupCfg = `[metadata]
name = mojadata
version = 4.3.5
description = Mojadata Tiler
url = https://github.com/SLEEK-TOOLS/moja.data
author = Moja.global
license = MPL2

[options]
packages = find:
python_requires = >=3.10
`

const mojadataSetupPy = `from setuptools import setup, find_packages

long_description = open("readme.rst", encoding="utf8").read()

setup(
    name="mojadata",
    version="4.3.5",
    description="Mojadata Tiler",
    long_description=long_description,
    url="https://github.com/SLEEK-TOOLS/moja.data",
    author="Moja.global",
    author_email="",
    license="MPL2",
    keywords="moja.global",
    packages=find_packages(exclude=["contrib", "docs", "tests"]),
    python_requires=">=3.10"
)
`

func mojadataMetadata(source string) *setuptools.Metadata {
	return &setuptools.Metadata{
		Name:           "mojadata",
		Version:        "4.3.5",
		Summary:        "Mojadata Tiler",
		License:        "MPL2",
		HomePage:       "https://github.com/SLEEK-TOOLS/moja.data",
		Author:         "Moja.global",
		RequiresPython: ">=3.10",
		Source:         source,
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Files     map[string]string
		Expected  *setuptools.Metadata
		ExpectErr string
	}
	testcases := map[string]testcase{
		"pkg-info": {
			Files:    map[string]string{"PKG-INFO": mojadataPKGINFO},
			Expected: mojadataMetadata("PKG-INFO"),
		},
		"egg-info": {
			Files:    map[string]string{"mojadata.egg-info/PKG-INFO": mojadataPKGINFO},
			Expected: mojadataMetadata(filepath.Join("mojadata.egg-info", "PKG-INFO")),
		},
		"setup-cfg": {
			Files:    map[string]string{"setup.cfg": mojadataSetupCfg},
			Expected: mojadataMetadata("setup.cfg"),
		},
		"setup-py": {
			Files:    map[string]string{"setup.py": mojadataSetupPy},
			Expected: mojadataMetadata("setup.py"),
		},
		"precedence": {
			Files: map[string]string{
				"PKG-INFO": mojadataPKGINFO,
				"setup.py": "setup(\n    name=\"wrongname\",\n)\n",
			},
			Expected: mojadataMetadata("PKG-INFO"),
		},
		"computed-name": {
			// A name that isn't a literal can't be scraped; with no other
			// source, discovery comes up empty.
			Files: map[string]string{
				"setup.py": "setup(\n    name=get_name(),\n    version=\"1.0\",\n)\n",
			},
			ExpectErr: "no project metadata found",
		},
		"empty": {
			Files:     nil,
			ExpectErr: "no project metadata found",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			for relName, content := range tc.Files {
				filename := filepath.Join(dir, filepath.FromSlash(relName))
				require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
				require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
			}
			actual, err := setuptools.Discover(dir)
			if tc.ExpectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.ExpectErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.Expected, actual)
			}
		})
	}
}
