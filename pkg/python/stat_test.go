package python_test

import (
	"fmt"
	"os/exec"
	"testing"
	"testing/quick"

	"github.com/datawire/wheelwright/pkg/python"
)

func TestStatModeString(t *testing.T) {
	fn := func(m python.StatMode) bool {
		act := m.String()
		exp, _ := exec.Command("python3", "-c",
			fmt.Sprintf(`import stat; print(stat.filemode(%d), end="")`, m)).
			Output()
		return act == string(exp)
	}
	if err := quick.Check(fn, nil); err != nil {
		t.Error(err)
	}
}

func TestStatModeRoundTrip(t *testing.T) {
	fn := func(m python.StatMode) bool {
		switch m & python.ModeFmt {
		case python.ModeFmtNamedPipe, python.ModeFmtCharDevice, python.ModeFmtDir,
			python.ModeFmtBlockDevice, python.ModeFmtRegular, python.ModeFmtSymlink,
			python.ModeFmtSocket:
			return python.ModeFromGo(m.ToGo()) == m
		default:
			// Types with no Go equivalent can't survive the trip.
			return true
		}
	}
	if err := quick.Check(fn, nil); err != nil {
		t.Error(err)
	}
}
