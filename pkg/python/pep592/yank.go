// Copyright (C) 2021  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep592 implements PEP 592 -- Adding "Yank" Support to the Simple API.
//
// https://www.python.org/dev/peps/pep-0592/
package pep592

import (
	"github.com/datawire/wheelwright/pkg/python/pep440"
	"github.com/datawire/wheelwright/pkg/python/pep503"
	"github.com/datawire/wheelwright/pkg/python/pypa/bdist"
)

// IsYanked reports whether the repository has marked the file as yanked.
func IsYanked(l pep503.FileLink) bool {
	_, yanked := l.DataAttrs["data-yanked"]
	return yanked
}

// YankedReason returns the reason the file was yanked:
//
//     The value of the data-yanked attribute, if present, is an arbitrary
//     string that represents the reason for why the file has been yanked.
//
// The reason may be empty even for a yanked file; use IsYanked to tell "not yanked" apart from
// "yanked without a reason".
func YankedReason(l pep503.FileLink) string {
	return l.DataAttrs["data-yanked"]
}

type excludeYanked struct {
	yankedVersions map[string]struct{}
}

// ExcludeYanked is a pep440.ExclusionBehavior implementing the PEP's installer rule:
//
//     Installers MUST ignore yanked releases, if the selection constraints can
//     be satisfied without them.
//
// A version is considered yanked if any of the given links with that version is yanked.
func ExcludeYanked(links []pep503.FileLink) pep440.ExclusionBehavior {
	ret := excludeYanked{
		yankedVersions: make(map[string]struct{}),
	}
	for _, link := range links {
		if IsYanked(link) {
			fileInfo, err := bdist.ParseFilename(link.Text)
			if err != nil {
				continue
			}
			ret.yankedVersions[fileInfo.Version.String()] = struct{}{}
		}
	}
	return ret
}

func (e excludeYanked) Allow(v pep440.Version) bool {
	_, yanked := e.yankedVersions[v.String()]
	return !yanked
}
