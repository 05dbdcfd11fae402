package bdist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/datawire/wheelwright/pkg/python/pep425"
	"github.com/datawire/wheelwright/pkg/python/pep440"
)

// FileNameData is the structured data that is encoded in to a wheel's filename:
//
//     The wheel filename is ``{distribution}-{version}(-{build
//     tag})?-{python tag}-{abi tag}-{platform tag}.whl``.
//
// The last three components are jointly the pep425.Tag:
//
//     The last three components of the filename before the extension are
//     called "compatibility tags."  The compatibility tags express the
//     package's basic interpreter requirements and are detailed in PEP 425.
type FileNameData struct {
	Distribution     string
	Version          pep440.Version
	BuildTag         *BuildTag
	CompatibilityTag pep425.Tag
}

var reFilename = regexp.MustCompile(regexp.MustCompile(`\s+`).ReplaceAllString(`
		^(?P<distribution>[^-]+)
		-(?P<version>[^-]+)
		(?:-(?P<build_n>[0-9]+)(?P<build_l>[^-0-9][^-]*)?)?
		-(?P<python>[^-]+)
		-(?P<abi>[^-]+)
		-(?P<platform>[^-]+)
		\.whl$`, ``))

// ParseFilename parses a wheel filename.  The argument must be a bare filename, not a path with
// directory components.
func ParseFilename(filename string) (*FileNameData, error) {
	match := reFilename.FindStringSubmatch(filename)
	if match == nil {
		return nil, fmt.Errorf("invalid wheel filename: %q", filename)
	}

	var ret FileNameData

	ret.Distribution = match[reFilename.SubexpIndex("distribution")]

	ver, err := pep440.ParseVersion(match[reFilename.SubexpIndex("version")])
	if err != nil {
		return nil, fmt.Errorf("invalid wheel filename: %q: %w", filename, err)
	}
	ret.Version = *ver

	if buildN := match[reFilename.SubexpIndex("build_n")]; buildN != "" {
		n, _ := strconv.Atoi(buildN)
		ret.BuildTag = &BuildTag{
			Int: n,
			Str: match[reFilename.SubexpIndex("build_l")],
		}
	}

	ret.CompatibilityTag = pep425.Tag{
		Python:   match[reFilename.SubexpIndex("python")],
		ABI:      match[reFilename.SubexpIndex("abi")],
		Platform: match[reFilename.SubexpIndex("platform")],
	}

	return &ret, nil
}

// BuildTag is the optional build-number component of a wheel filename:
//
//     Optional build number.  Must start with a digit.  Acts as a
//     tie-breaker if two wheel file names are the same in all other
//     respects (i.e. name, version, and other tags).
type BuildTag struct {
	Int int
	Str string
}

func (t BuildTag) String() string {
	return fmt.Sprintf("%d%s", t.Int, t.Str)
}

// Cmp compares two build tags, either of which may be nil:
//
//     Sort as an empty tuple if unspecified, else sort as a two-item tuple with
//     the first item being the initial digits as an ``int``, and the
//     second item being the remainder of the tag as a ``str``.
func (a *BuildTag) Cmp(b *BuildTag) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil && b != nil:
		return -1
	case a != nil && b == nil:
		return 1
	}
	if d := a.Int - b.Int; d != 0 {
		return d
	}
	switch {
	case a.Str < b.Str:
		return -1
	case a.Str > b.Str:
		return 1
	default:
		return 0
	}
}

// GenerateFilename is the inverse of ParseFilename.
//
//     As the components of the filename are separated by a dash (``-``, HYPHEN-MINUS),
//     this character cannot appear within any component.
func GenerateFilename(data FileNameData) (string, error) {
	var ret strings.Builder
	// - In distribution names, any run of ``-_.`` characters (HYPHEN-MINUS, LOW LINE
	//   and FULL STOP) should be replaced with ``_`` (LOW LINE). This is equivalent
	//   to :pep:`503` normalisation followed by replacing ``-`` with ``_``.
	ret.WriteString(regexp.MustCompile("[-_.]+").ReplaceAllLiteralString(data.Distribution, "_"))
	// - Version numbers should be normalised according to :pep:`440`. Normalised
	//   version numbers cannot contain ``-``.
	ver, err := data.Version.Normalize()
	if err != nil {
		return "", err
	}
	ret.WriteString("-")
	ret.WriteString(ver.String())
	// - The remaining components may not contain ``-`` characters, so no escaping
	//   is necessary.
	//
	// Tools producing wheels should verify that the filename components do not contain
	// ``-``, as the resulting file may not be processed correctly if they do.
	if data.BuildTag != nil {
		build := data.BuildTag.String()
		if strings.Contains(build, "-") {
			return "", fmt.Errorf("invalid build tag: contains dash: %q", build)
		}
		ret.WriteString("-")
		ret.WriteString(build)
	}
	compat := data.CompatibilityTag.String()
	if strings.Count(compat, "-") != 2 {
		return "", fmt.Errorf("invalid compatibility tag: %q", compat)
	}
	ret.WriteString("-")
	ret.WriteString(compat)
	ret.WriteString(".whl")
	return ret.String(), nil
}
