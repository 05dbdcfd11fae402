// Package pyinspect determines information about a Python environment.
package pyinspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dexec"

	"github.com/datawire/wheelwright/pkg/python"
	"github.com/datawire/wheelwright/pkg/python/pep425"
)

// Info is what an interpreter reports about itself.
//
// Tags is empty when the interpreter doesn't have the `packaging` module
// available; everything else comes from the standard library.
type Info struct {
	Executable  string
	Prefix      string
	BasePrefix  string
	VersionInfo python.VersionInfo
	Platform    string
	Tags        pep425.Installer `json:",omitempty"`
}

// Inspect runs the interpreter named by cmdline and reports on it.
func Inspect(ctx context.Context, cmdline ...string) (*Info, error) {
	cmd := dexec.CommandContext(ctx, cmdline[0], append(cmdline[1:], "-c", `
import json
import sys
import sysconfig

try:
    from packaging.tags import sys_tags
    tags = [str(tag) for tag in sys_tags()]
except ImportError:
    tags = []

version_info_slots = ['major', 'minor', 'micro', 'releaselevel', 'serial']

json.dump({
  "Executable": sys.executable,
  "Prefix": sys.prefix,
  "BasePrefix": sys.base_prefix,
  "VersionInfo": {slot: getattr(sys.version_info, slot) for slot in version_info_slots},
  "Platform": sysconfig.get_platform(),
  "Tags": tags,
}, sys.stdout)
`)...)
	cmd.DisableLogging = true
	bs, err := cmd.Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w:\n > %s", err,
				strings.Join(strings.Split(string(exitErr.Stderr), "\n"), "\n > "))
		}
		err = fmt.Errorf("running Python: %w", err)
		return nil, err
	}
	var data Info
	if err := json.Unmarshal(bs, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
