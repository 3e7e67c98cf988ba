package git

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/lessbundle/vcs"
)

// GetRepositoryRoot returns the absolute path to the repository root
func GetRepositoryRoot(ctx context.Context, repoPath string) (string, error) {
	out, err := runGit(ctx, repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ValidateCommit checks that ref names an existing commit.
func ValidateCommit(ctx context.Context, repoPath, ref string) error {
	if err := validateGitRef(ref); err != nil {
		return err
	}
	if _, err := runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", ref+"^{commit}"); err != nil {
		return fmt.Errorf("invalid commit reference %q: %w", ref, err)
	}
	return nil
}

// GetShortCommitHash returns the abbreviated hash of ref
func GetShortCommitHash(ctx context.Context, repoPath, ref string) (string, error) {
	if err := validateGitRef(ref); err != nil {
		return "", err
	}
	out, err := runGit(ctx, repoPath, "rev-parse", "--short", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetFileContentFromCommit reads the content of a file at a specific commit
// using 'git show commit:path'. The filePath should be relative to the repository root.
func GetFileContentFromCommit(ctx context.Context, repoPath, ref, filePath string) ([]byte, error) {
	if err := validateGitRef(ref); err != nil {
		return nil, err
	}
	if err := validateGitRelPath(filePath); err != nil {
		return nil, err
	}

	return runGit(ctx, repoPath, "show", fmt.Sprintf("%s:%s", ref, filepath.ToSlash(filePath)))
}

// CommitContentReader returns a reader that serves absolute paths inside the
// repository from the tree of ref instead of the working copy. Paths outside the
// repository, and paths missing from the tree, report fs.ErrNotExist.
func CommitContentReader(ctx context.Context, repoPath, ref string) (vcs.ContentReader, error) {
	root, err := GetRepositoryRoot(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	root = resolveSymlinks(root)

	if err := ValidateCommit(ctx, root, ref); err != nil {
		return nil, err
	}

	return func(filePath string) ([]byte, error) {
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return nil, err
		}

		absPath = filepath.Join(resolveSymlinks(filepath.Dir(absPath)), filepath.Base(absPath))
		rel, err := filepath.Rel(root, absPath)
		if err != nil || validateGitRelPath(rel) != nil {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
		}

		content, err := GetFileContentFromCommit(ctx, root, ref, rel)
		if err != nil {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: fmt.Errorf("%w: %v", fs.ErrNotExist, err)}
		}
		return content, nil
	}, nil
}

func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("git reference cannot start with '-': %q", ref)
	}
	if strings.ContainsAny(ref, "\x00\n\r\t ") {
		return fmt.Errorf("git reference contains whitespace or NUL: %q", ref)
	}
	return nil
}

func validateGitRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("git path must be relative: %q", path)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("git path escapes repository: %q", path)
	}
	return nil
}

// resolveSymlinks keeps temp directories such as /var -> /private/var comparable.
func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
