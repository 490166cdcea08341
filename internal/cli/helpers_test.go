package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/klauern/skillhub/internal/source"
	"github.com/klauern/skillhub/internal/util"
)

// newHome points HOME at a fresh directory and returns its environment.
// Platforms named in platforms are marked installed.
func newHome(t *testing.T, platforms ...string) util.Env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(util.HomeEnvVar, "")
	for _, p := range platforms {
		require.NoError(t, os.MkdirAll(filepath.Join(home, "."+p), 0o755))
	}
	return util.NewEnv(home)
}

// runCLI runs the app with colors off and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	argv := append([]string{"skillhub", "--no-color"}, args...)
	err := NewApp(&out, &errOut).Run(context.Background(), argv)
	return out.String(), errOut.String(), err
}

// localSource creates skills under home/<dir> and registers them as a
// directory source.
func localSource(t *testing.T, env util.Env, scope, dir string, skills ...string) string {
	t.Helper()
	root := filepath.Join(env.Home, dir)
	for _, name := range skills {
		util.WriteSkill(t, filepath.Join(root, name), "# "+name+"\n")
	}
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, env.EnsureRoot())
	require.NoError(t, source.AddSource(env, source.Entry{Type: "directory", Scope: scope, Path: root}))
	return root
}

func setClock(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}
