// This file mimics the name-mangling helpers in `pkg_resources/__init__.py`.

package setuptools

import (
	"regexp"
	"strings"
)

var reUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9.]+`)

// SafeName mimics `pkg_resources.safe_name`: any run of characters that are
// not alphanumeric or `.` becomes a single `-`.
func SafeName(name string) string {
	return reUnsafeChars.ReplaceAllLiteralString(name, "-")
}

// ToFilename mimics `pkg_resources.to_filename`: `-` becomes `_` so that the
// result can appear in a `-`-separated filename.
func ToFilename(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// EggInfoDir returns the name of the `.egg-info` directory that running
// `setup.py` leaves in the project root for the given project name; see
// `setuptools/command/egg_info.py:finalize_options()`.
func EggInfoDir(name string) string {
	return ToFilename(SafeName(name)) + ".egg-info"
}
