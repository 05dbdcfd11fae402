// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package dir_test

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelwright/pkg/dir"
	"github.com/datawire/wheelwright/pkg/fsutil"
	"github.com/datawire/wheelwright/pkg/testutil"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpdir := t.TempDir()
	for relName, content := range files {
		filename := filepath.Join(tmpdir, filepath.FromSlash(relName))
		require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}
	return tmpdir
}

type tarEntry struct {
	Typeflag byte
	Linkname string
	UID      int
	UName    string
	GID      int
	GName    string
	ModTime  time.Time
	Content  string
}

func readLayer(t *testing.T, layer interface {
	Uncompressed() (io.ReadCloser, error)
},
) (order []string, entries map[string]tarEntry) {
	t.Helper()
	layerReader, err := layer.Uncompressed()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, layerReader.Close())
	}()

	entries = make(map[string]tarEntry)
	tarReader := tar.NewReader(layerReader)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tarReader)
		require.NoError(t, err)
		order = append(order, header.Name)
		entries[header.Name] = tarEntry{
			Typeflag: header.Typeflag,
			Linkname: header.Linkname,
			UID:      header.Uid,
			UName:    header.Uname,
			GID:      header.Gid,
			GName:    header.Gname,
			ModTime:  header.ModTime,
			Content:  string(content),
		}
	}
	return order, entries
}

func TestLayerFromDir(t *testing.T) {
	tmpdir := writeTree(t, map[string]string{
		"mojadata-4.3.5-py3-none-any.whl": "wheel bytes",
		"sub/notes.txt":                   "hi",
	})

	clamp := time.Unix(1700000000, 0)
	layer, err := dir.LayerFromDir(tmpdir,
		&dir.Prefix{DirName: "opt/wheelhouse"},
		&dir.Ownership{UID: 0, UName: "root", GID: 0, GName: "root"},
		clamp)
	require.NoError(t, err)

	order, entries := readLayer(t, layer)
	assert.Equal(t, []string{
		"opt",
		"opt/wheelhouse",
		"opt/wheelhouse/mojadata-4.3.5-py3-none-any.whl",
		"opt/wheelhouse/sub",
		"opt/wheelhouse/sub/notes.txt",
	}, order)

	assert.Equal(t, byte(tar.TypeDir), entries["opt"].Typeflag)
	assert.Equal(t, "wheel bytes", entries["opt/wheelhouse/mojadata-4.3.5-py3-none-any.whl"].Content)

	for name, entry := range entries {
		assert.Equalf(t, 0, entry.UID, "entry %q", name)
		assert.Equalf(t, "root", entry.UName, "entry %q", name)
		assert.Equalf(t, 0, entry.GID, "entry %q", name)
		assert.Equalf(t, "root", entry.GName, "entry %q", name)
		assert.Truef(t, entry.ModTime.Equal(clamp), "entry %q: mtime %v not clamped to %v",
			name, entry.ModTime, clamp)
	}
}

func TestLayerFromDirLinks(t *testing.T) {
	tmpdir := writeTree(t, map[string]string{
		"a.whl": "shared bytes",
	})
	require.NoError(t, os.Link(filepath.Join(tmpdir, "a.whl"), filepath.Join(tmpdir, "b.whl")))
	require.NoError(t, os.Symlink("a.whl", filepath.Join(tmpdir, "latest.whl")))

	layer, err := dir.LayerFromDir(tmpdir, nil, nil, time.Unix(1700000000, 0))
	require.NoError(t, err)

	order, entries := readLayer(t, layer)
	assert.Equal(t, []string{"a.whl", "b.whl", "latest.whl"}, order)

	assert.Equal(t, byte(tar.TypeReg), entries["a.whl"].Typeflag)
	assert.Equal(t, "shared bytes", entries["a.whl"].Content)

	assert.Equal(t, byte(tar.TypeLink), entries["b.whl"].Typeflag)
	assert.Equal(t, "a.whl", entries["b.whl"].Linkname)

	assert.Equal(t, byte(tar.TypeSymlink), entries["latest.whl"].Typeflag)
	assert.Equal(t, "a.whl", entries["latest.whl"].Linkname)
}

func TestLayerRoundTrip(t *testing.T) {
	files := map[string]string{
		"mojadata-4.3.5-py3-none-any.whl": "wheel bytes",
	}
	tmpdir := writeTree(t, files)

	layer, err := dir.LayerFromDir(tmpdir, nil, nil, time.Unix(1700000000, 0))
	require.NoError(t, err)

	// Write it out and read it back.
	layerfile := filepath.Join(t.TempDir(), "layer.tar")
	file, err := os.Create(layerfile)
	require.NoError(t, err)
	require.NoError(t, fsutil.WriteLayer(layer, file))
	require.NoError(t, file.Close())

	reopened, err := fsutil.OpenLayer(layerfile)
	require.NoError(t, err)
	testutil.AssertEqualLayers(t, layer, reopened)

	// The same tree with a different clamp time differs only in timestamps.
	otherClamp, err := dir.LayerFromDir(writeTree(t, files), nil, nil, time.Unix(1600000000, 0))
	require.NoError(t, err)
	equal, err := fsutil.LayersEqualExceptTimestamps(layer, otherClamp)
	require.NoError(t, err)
	assert.True(t, equal)

	// Different content is a real difference.
	otherContent, err := dir.LayerFromDir(writeTree(t, map[string]string{
		"mojadata-4.3.5-py3-none-any.whl": "other bytes",
	}), nil, nil, time.Unix(1700000000, 0))
	require.NoError(t, err)
	equal, err = fsutil.LayersEqualExceptTimestamps(layer, otherContent)
	require.NoError(t, err)
	assert.False(t, equal)
}
