package main

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/datawire/wheelwright/pkg/python/pypa/bdist"
)

// A wheelFile is a *.whl in the dist directory, together with its parsed
// filename.
type wheelFile struct {
	Path string
	Data *bdist.FileNameData
}

// distWheels lists the wheel files in distDir, sorted by version, then build
// tag, then filename (so that the order is total).
func distWheels(distDir string) ([]wheelFile, error) {
	paths, err := filepath.Glob(filepath.Join(distDir, "*.whl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	ret := make([]wheelFile, 0, len(paths))
	for _, path := range paths {
		data, err := bdist.ParseFilename(filepath.Base(path))
		if err != nil {
			return nil, err
		}
		ret = append(ret, wheelFile{
			Path: path,
			Data: data,
		})
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if d := ret[i].Data.Version.Cmp(ret[j].Data.Version); d != 0 {
			return d < 0
		}
		return ret[i].Data.BuildTag.Cmp(ret[j].Data.BuildTag) < 0
	})
	return ret, nil
}

// checkWheel verifies that the named wheel file is well-formed: that its
// declared Wheel-Version is one we can read, and that every archive member
// matches its RECORD hash and size.
func checkWheel(ctx context.Context, filename string) (err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	wh, err := bdist.OpenWheel(filename)
	if err != nil {
		return err
	}
	defer func() {
		maybeSetErr(wh.Close())
	}()

	if _, err := wh.DistInfoWheel(ctx); err != nil {
		return err
	}
	return wh.VerifyRecord()
}
