package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ctebug/pkg/ctebug"
	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// execute runs the root command with args against a temporary config
// directory and returns stdout, stderr, and the command error.
func execute(t *testing.T, configDir string, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", configDir}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ctebug v"+ctebug.Version)
	assert.Contains(t, out, ctebug.ModulePath)
}

func TestRun_Default(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "run")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Results size: 5"))
	assert.Equal(t, 2, strings.Count(out, "Connecting to database..."))
	assert.Contains(t, out, "Using prepared statement")
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "FAIL")
}

func TestRun_JSON(t *testing.T) {
	out, stderr, err := execute(t, t.TempDir(), "run", "--json")
	require.NoError(t, err)

	var rep runReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.Equal(t, types.EngineSQLite, rep.Engine)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rep.Oracle)
	assert.Empty(t, rep.Divergences)
	require.Len(t, rep.Outcomes, 2)
	assert.Equal(t, types.VariantBound, rep.Outcomes[0].Variant)
	assert.Equal(t, types.VariantLiteral, rep.Outcomes[1].Variant)

	// Progress goes to stderr in JSON mode.
	assert.Contains(t, stderr, "Results size: 5")
}

func TestRun_WrongExpectedCountDiverges(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "run", "--expected", "4")
	require.Error(t, err)

	assert.ErrorIs(t, err, errDiverged)
	assert.Equal(t, exitUserError, exitCode(err))
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "count: expected 4, got 5")
}

func TestRun_SingleVariant(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "run", "--variant", "literal")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Results size: 5"))
	assert.NotContains(t, out, "Using prepared statement")
}

func TestRun_UnknownVariant(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "run", "--variant", "cached")
	assert.ErrorIs(t, err, types.ErrVariantUnknown)
}

func TestRun_Shared(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "run", "--shared", "--json")
	if err != nil {
		// The shared-session run is allowed to diverge; that is what it observes.
		require.ErrorIs(t, err, errDiverged)
	}

	var rep runReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.Shared)
	require.Len(t, rep.Outcomes, 2)
	assert.Equal(t, rep.Outcomes[0].Instance, rep.Outcomes[1].Instance)
}

func TestRun_UnknownEngine(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "--engine", "h2", "run")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEngineUnknown)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestTrace(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "trace")
	require.NoError(t, err)
	assert.Contains(t, out, "dummy:      [1 2 3 4 5]")
	assert.Contains(t, out, "dummy2:     [2 3 4 5]")
	assert.Contains(t, out, "rows:       5 (expected 5)")
}

func TestTrace_RootFlag(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "--root", "2", "--json", "trace")
	require.NoError(t, err)

	var tr struct {
		Final []int `json:"final"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.ElementsMatch(t, []int{2, 4, 5}, tr.Final)
}

func TestInit_WritesConfigOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	out, _, err := execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine: sqlite")
	assert.Contains(t, string(data), "expected: 5")
	assert.Contains(t, string(data), "- bound")

	out, _, err = execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigFile_Overrides(t *testing.T) {
	dir := t.TempDir()
	cfg := "root: 2\nexpected: 3\norder:\n  - literal\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))

	out, _, err := execute(t, dir, "run", "--json")
	require.NoError(t, err)

	var rep runReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, []int{2, 4, 5}, rep.Oracle)
	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, 3, rep.Outcomes[0].Count)
}

func TestConfigFile_FlagBeatsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("expected: 4\n"), 0o644))

	_, _, err := execute(t, dir, "--expected", "5", "run")
	assert.NoError(t, err)
}

func TestConfigFile_Env(t *testing.T) {
	t.Setenv("CTEBUG_EXPECTED", "7")

	_, _, err := execute(t, t.TempDir(), "run")
	assert.ErrorIs(t, err, errDiverged)
}

func TestConfigFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("root: [unclosed\n"), 0o644))

	_, _, err := execute(t, dir, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("plain")))
	assert.Equal(t, exitSysError, exitCode(withCode(exitSysError, errors.New("io"))))
	assert.Nil(t, withCode(exitSysError, nil))
}
