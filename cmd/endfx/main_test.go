package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/export"
	"github.com/arloliu/endfx/internal/endftest"
)

// run executes the command line args against a fresh command tree and returns
// what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(&app{logger: zap.NewNop()})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func hydrogenFile(t *testing.T) string {
	t.Helper()

	return endftest.Write(t, t.TempDir(), "h1.endf", endftest.Hydrogen())
}

func TestParseCmd_Stdout(t *testing.T) {
	out, err := run(t, "parse", hydrogenFile(t))
	require.NoError(t, err)

	m, err := export.ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 102}, m.ReactionIDs())
}

func TestParseCmd_SubsetToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "h-1.json")

	_, err := run(t, "parse", hydrogenFile(t), "--mt", "2,102-117", "--json", dest, "--compression", "zstd")
	require.NoError(t, err)

	m, err := export.LoadJSON(dest + ".zst")
	require.NoError(t, err)
	require.Equal(t, []int{2, 102}, m.ReactionIDs())
}

func TestParseCmd_Errors(t *testing.T) {
	_, err := run(t, "parse", filepath.Join(t.TempDir(), "missing.endf"))
	require.ErrorIs(t, err, errs.ErrFileNotFound)

	_, err = run(t, "parse", hydrogenFile(t), "--mt", "9-1")
	require.ErrorIs(t, err, errs.ErrInvalidReactionRange)

	_, err = run(t, "parse", hydrogenFile(t), "--json", filepath.Join(t.TempDir(), "h.json"), "--compression", "foo")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = run(t, "parse")
	require.Error(t, err)
}

func TestAggregateCmd(t *testing.T) {
	out, err := run(t, "aggregate", hydrogenFile(t), "--mt", "102-117")
	require.NoError(t, err)
	require.Equal(t, "energy,cross_section\n"+
		"1e-05,16.72\n"+
		"1.0,0.03334\n"+
		"1000.0,0.00106\n"+
		"20000000.0,2.9e-05\n", out)

	out, err = run(t, "aggregate", hydrogenFile(t), "--mt", "18")
	require.NoError(t, err)
	require.Equal(t, "energy,cross_section\n", out)

	_, err = run(t, "aggregate", hydrogenFile(t))
	require.Error(t, err, "--mt is required")
}

func TestAggregateCmd_ToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "absorption.csv")

	_, err := run(t, "aggregate", hydrogenFile(t), "--mt", "102", "-o", dest)
	require.NoError(t, err)

	s, err := export.LoadCSV(dest)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
}

func TestInfoCmd(t *testing.T) {
	out, err := run(t, "info", hydrogenFile(t))
	require.NoError(t, err)
	require.Contains(t, out, "material:    h-1")
	require.Contains(t, out, "reactions:   3")
	require.Contains(t, out, "fingerprint: ")
	require.Regexp(t, `(?m)^\s*102\s+4\s+1e-05\s+2e\+07\s*$`, out)
}

func TestMaterialCmd(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "material", hydrogenFile(t), "--out", root, "--json")
	require.NoError(t, err)

	paths := strings.Fields(out)
	require.Equal(t, []string{
		filepath.Join(root, "h-1", "h-1_aggregated_scattering.csv"),
		filepath.Join(root, "h-1", "h-1_aggregated_absorption.csv"),
		filepath.Join(root, "h-1", "h-1.json"),
	}, paths)

	_, err = run(t, "material", hydrogenFile(t), hydrogenFile(t), "--name", "x")
	require.Error(t, err)
}

func TestMaterialCmd_ConfigChannels(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "endfx.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output:
  root: `+root+`
  compression: s2
channels:
  - name: total
    reactions: "1"
`), 0o600))

	out, err := run(t, "--config", cfgPath, "material", hydrogenFile(t))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "h-1", "h-1_aggregated_total.csv.s2"), strings.TrimSpace(out))

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "info", hydrogenFile(t))
	require.ErrorIs(t, err, errs.ErrFileNotFound)
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	endftest.Write(t, dir, "h1.endf", endftest.Hydrogen())
	root := t.TempDir()

	out, err := run(t, "batch", dir, "--out", root, "--workers", "2")
	require.NoError(t, err)
	require.Contains(t, out, "1 exported, 0 skipped, 0 failed")

	out, err = run(t, "batch", dir, "--out", root)
	require.NoError(t, err)
	require.Contains(t, out, "0 exported, 1 skipped, 0 failed")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.endf"), []byte("not an endf file\n"), 0o600))
	out, err = run(t, "batch", dir, "--out", root, "--force")
	require.Error(t, err)
	require.Contains(t, out, "1 exported, 0 skipped, 1 failed")
}
