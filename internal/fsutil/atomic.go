// SPDX-License-Identifier: Apache-2.0

// Package fsutil holds the file replacement helpers used to rewrite corpus
// files in place.
package fsutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadLines returns the lines of path with surrounding whitespace trimmed.
// A trailing newline does not produce an empty final line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)
	if content == "" {
		return nil, nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// WriteLinesAtomic replaces path with lines joined by "\n" plus a final
// newline. The new content is written to a temp file in the same directory
// and renamed over path, so readers never observe a partial file.
func WriteLinesAtomic(path string, lines []string) error {
	dir := filepath.Dir(path)
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	bw := bufio.NewWriterSize(tmp, 64*1024)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			cleanup()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			cleanup()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	_ = os.Chmod(tmpPath, perm)
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
