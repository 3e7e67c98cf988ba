package git

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupGitRepo initializes a git repository in a temporary directory
func setupGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := resolveSymlinks(t.TempDir())
	runGitCmd(t, dir, "init", "--quiet")
	runGitCmd(t, dir, "config", "user.name", "Test User")
	runGitCmd(t, dir, "config", "user.email", "test@example.com")
	runGitCmd(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

func runGitCmd(t *testing.T, repoDir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = repoDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "git %s: %s", strings.Join(args, " "), stderr.String())
	return strings.TrimSpace(stdout.String())
}

// createFile creates a file with content, including missing parent directories
func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644), "failed to create file %s", name)
	return filePath
}

// gitCommitAll stages everything and returns the new commit SHA
func gitCommitAll(t *testing.T, repoDir, message string) string {
	t.Helper()
	runGitCmd(t, repoDir, "add", "-A")
	runGitCmd(t, repoDir, "commit", "--quiet", "-m", message)
	return runGitCmd(t, repoDir, "rev-parse", "HEAD")
}
