// Copyright (C) 2021  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/textproto"
	"path"
	"sort"
	"strings"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/wheelwright/pkg/python"
	"github.com/datawire/wheelwright/pkg/python/pep440"
)

// specVersion is the version of the wheel format that this parser implements.
//
//nolint:gochecknoglobals // Would be 'const'.
var specVersion, _ = pep440.ParseVersion("1.0")

// A Wheel is a built distribution that has been opened for reading:
//
//     A wheel is a ZIP-format archive with a specially formatted file name and
//     the ``.whl`` extension.  It contains a single distribution nearly as it
//     would be installed according to PEP 376 with a particular installation
//     scheme.
type Wheel struct {
	zip    *zip.Reader
	closer io.Closer

	cachedDistInfoDir string
}

// OpenWheel opens the named wheel file for reading.
func OpenWheel(filename string) (*Wheel, error) {
	zipReader, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("bdist.OpenWheel: %w", err)
	}
	return &Wheel{
		zip:    &zipReader.Reader,
		closer: zipReader,

		cachedDistInfoDir: "", // don't know it yet
	}, nil
}

// Close closes the underlying zip archive; the Wheel may not be read from after Close.
func (wh *Wheel) Close() error {
	if wh.closer == nil {
		return nil
	}
	return wh.closer.Close()
}

// Files returns the files in the wheel's zip archive, in archive order.
func (wh *Wheel) Files() []*zip.File {
	return wh.zip.File
}

// Open opens the named file within the wheel's zip archive.
func (wh *Wheel) Open(filename string) (io.ReadCloser, error) {
	filename = path.Clean(filename)
	for _, file := range wh.zip.File {
		if path.Clean(file.Name) == filename {
			return file.Open()
		}
	}
	return nil, fmt.Errorf("%w in wheel zip archive: %q", fs.ErrNotExist, filename)
}

// DistInfoDir returns the "{name}.dist-info" directory for the wheel file.
//
// This is based off of `pip/_internal/utils/wheel.py:wheel_dist_info_dir()`, since PEP 427 doesn't
// actually have much to say about resolving ambiguity.
func (wh *Wheel) DistInfoDir() (string, error) {
	if wh.cachedDistInfoDir != "" {
		return wh.cachedDistInfoDir, nil
	}
	infoDirs := make(map[string]struct{})
	for _, file := range wh.zip.File {
		dirname := strings.Split(path.Clean(file.FileHeader.Name), "/")[0]
		if !strings.HasSuffix(dirname, ".dist-info") {
			continue
		}
		infoDirs[dirname] = struct{}{}
	}

	switch len(infoDirs) {
	case 0:
		return "", fmt.Errorf(".dist-info directory not found")
	case 1:
		for infoDir := range infoDirs {
			wh.cachedDistInfoDir = infoDir
			return infoDir, nil
		}
		panic("not reached")
	default:
		list := make([]string, 0, len(infoDirs))
		for dir := range infoDirs {
			list = append(list, dir)
		}
		sort.Strings(list)
		return "", fmt.Errorf("multiple .dist-info directories found: %v", list)
	}
}

// readKV parses one of the `key: value` metadata files within the wheel's zip archive.
func (wh *Wheel) readKV(filename string) (textproto.MIMEHeader, error) {
	file, err := wh.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return python.ReadMetadata(file)
}

// DistInfoWheel parses the `{distribution}-{version}.dist-info/WHEEL` file, which is metadata
// about the archive itself in the same basic key: value format::
//
//     Wheel-Version: 1.0
//     Generator: bdist_wheel 1.0
//     Root-Is-Purelib: true
//     Tag: py2-none-any
//     Tag: py3-none-any
//     Build: 1
//
// It also checks that this parser is compatible with the file's Wheel-Version:
//
//     A wheel installer should warn if Wheel-Version is greater than the
//     version it supports, and must fail if Wheel-Version has a greater
//     major version than the version it supports.
func (wh *Wheel) DistInfoWheel(ctx context.Context) (textproto.MIMEHeader, error) {
	infoDir, err := wh.DistInfoDir()
	if err != nil {
		return nil, err
	}
	metadata, err := wh.readKV(path.Join(infoDir, "WHEEL"))
	if err != nil {
		return nil, fmt.Errorf("parse .dist-info/WHEEL: %w", err)
	}
	wheelVersion, err := pep440.ParseVersion(metadata.Get("Wheel-Version"))
	if err != nil {
		return nil, fmt.Errorf("parse Wheel-Version: %w", err)
	}
	if wheelVersion.Major() > specVersion.Major() {
		return nil, fmt.Errorf("wheel file's Wheel-Version (%s) is not compatible with this wheel parser",
			wheelVersion)
	}
	if wheelVersion.Cmp(*specVersion) > 0 {
		dlog.Warnf(ctx, "wheel file's Wheel-Version (%s) is newer than this wheel parser", wheelVersion)
	}
	return metadata, nil
}

// DistInfoMetadata parses the `{distribution}-{version}.dist-info/METADATA` file:
//
//     METADATA is the package metadata, the same format as PKG-INFO as
//     found at the root of sdists.
func (wh *Wheel) DistInfoMetadata() (textproto.MIMEHeader, error) {
	infoDir, err := wh.DistInfoDir()
	if err != nil {
		return nil, err
	}
	metadata, err := wh.readKV(path.Join(infoDir, "METADATA"))
	if err != nil {
		return nil, fmt.Errorf("parse .dist-info/METADATA: %w", err)
	}
	return metadata, nil
}
