package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// WriteResult is the outcome of writing the bundle to one destination.
type WriteResult struct {
	Path  string
	Bytes int
	Err   error
}

// WriteError names the destination a write failed for.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteDestinations writes text to every path concurrently, creating missing
// parent directories. Results are returned in the order of paths and every path
// is attempted regardless of failures elsewhere.
func WriteDestinations(ctx context.Context, text string, paths []string) []WriteResult {
	results := make([]WriteResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = writeDestination(ctx, text, path)
		}()
	}
	wg.Wait()

	return results
}

func writeDestination(ctx context.Context, text, path string) WriteResult {
	result := WriteResult{Path: path}
	if err := ctx.Err(); err != nil {
		result.Err = &WriteError{Path: path, Err: err}
		return result
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		result.Err = &WriteError{Path: path, Err: err}
		return result
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		result.Err = &WriteError{Path: path, Err: err}
		return result
	}

	result.Bytes = len(text)
	return result
}

// WriteErrors joins the errors of failed writes, or returns nil.
func WriteErrors(results []WriteResult) error {
	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, result.Err)
		}
	}
	return errors.Join(errs...)
}
