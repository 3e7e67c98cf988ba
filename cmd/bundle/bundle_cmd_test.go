package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func isolateConfig(t *testing.T) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Setenv("HOME", t.TempDir())

	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand()
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBundleCommand_PrintsToStdout(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site.less":  ".a {}\n@import 'vars';\n.b {}\n",
		"vars.less":  "@c: red;\n",
		"other.less": ".unused {}\n",
	})

	stdout, _, err := execute(t, filepath.Join(dir, "site.less"))

	require.NoError(t, err)
	assert.Equal(t, ".a {}\n@c: red;\n.b {}\n", stdout)
}

func TestBundleCommand_WritesEveryDestination(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site.less": "@import 'vars';\n.a { color: @c; }\n",
		"vars.less": "@c: red;\n",
	})
	out := filepath.Join(dir, "dist")

	stdout, _, err := execute(t, filepath.Join(dir, "site.less"),
		"-o", filepath.Join(out, "one.css"),
		"-o", filepath.Join(out, "nested", "two"))

	require.NoError(t, err)
	for _, path := range []string{filepath.Join(out, "one.less"), filepath.Join(out, "nested", "two.less")} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "@c: red;\n.a { color: @c; }\n", string(content))
		assert.Contains(t, stdout, "✓ "+path)
	}
	assert.Contains(t, stdout, "bundled from 2 files")
}

func TestBundleCommand_ReportsFailedDestination(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site.less": ".a {}\n",
		"blocker":   "",
	})
	good := filepath.Join(dir, "ok.less")
	bad := filepath.Join(dir, "blocker", "bad.less")

	stdout, _, err := execute(t, filepath.Join(dir, "site.less"), "-o", bad, "-o", good)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write 1 of 2 destinations")
	assert.Contains(t, stdout, "✗ "+bad)
	assert.Contains(t, stdout, "✓ "+good)
	assert.FileExists(t, good)
}

func TestBundleCommand_ModuleRootFlagOverridesConfig(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	modules := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site.less": "@import '~theme/base';\n",
	})
	writeFiles(t, modules, map[string]string{
		"theme/base.less": ".theme {}\n",
	})
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("module_root: /does/not/exist\n"), 0o644))

	cmd := NewCommand()
	cmd.Flags().String("config", "", "")
	cmd.SetArgs([]string{filepath.Join(dir, "site.less"), "--config", configPath, "--module-root", modules})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, ".theme {}\n", stdout.String())
}

func TestBundleCommand_StrictCyclesFails(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.less": "@import 'b';\n",
		"b.less": "@import 'a';\n",
	})

	_, _, err := execute(t, filepath.Join(dir, "a.less"), "--strict-cycles")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import cycle")
}

func TestBundleCommand_MissingImport(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site.less": "@import 'missing';\n",
	})

	_, _, err := execute(t, filepath.Join(dir, "site.less"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.less")
}

func TestBundleCommand_RequiresSource(t *testing.T) {
	isolateConfig(t)

	_, _, err := execute(t)

	assert.Error(t, err)
}
