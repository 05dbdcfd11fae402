package pyinspect_test

import (
	"os/exec"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelwright/pkg/python/pyinspect"
)

func TestInspect(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not found in PATH")
	}
	ctx := dlog.NewTestContext(t, true)

	info, err := pyinspect.Inspect(ctx, "python3")
	require.NoError(t, err)

	assert.NotEmpty(t, info.Executable)
	assert.NotEmpty(t, info.Prefix)
	assert.NotEmpty(t, info.BasePrefix)
	assert.NotEmpty(t, info.Platform)
	assert.Equal(t, 3, info.VersionInfo.Major)

	// Cross-check against the interpreter directly.
	expected, err := exec.Command("python3", "-c",
		`import sys; print(sys.executable, end="")`).Output()
	require.NoError(t, err)
	assert.Equal(t, string(expected), info.Executable)
}

func TestInspectError(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not found in PATH")
	}
	ctx := dlog.NewTestContext(t, true)

	// An earlier -c wins, so the inspection snippet never runs and the
	// interpreter's stderr ends up in the error.
	_, err := pyinspect.Inspect(ctx, "python3", "-c", `import sys; sys.exit("no inspection today")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running Python")
	assert.Contains(t, err.Error(), "no inspection today")
}
