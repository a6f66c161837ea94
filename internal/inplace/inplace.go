// Package inplace writes a replacement for a file through a sibling temp file
// so the original is only ever swapped out atomically, with an optional
// backup of the original.
package inplace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Target is one pending in-place edit. Write the replacement content to File,
// then call Commit to swap it in or Discard to drop it.
type Target struct {
	// File is the temp file receiving the replacement content. It lives in
	// the same directory as the original so the final rename stays on one
	// filesystem.
	File *os.File

	path string
	done bool
}

// NewTarget creates the temp file next to path. The original is not touched.
func NewTarget(path string) (*Target, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	f, err := os.CreateTemp(dir, name+"_tmp_*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file for in-place editing: %w", err)
	}
	return &Target{File: f, path: path}, nil
}

// Discard closes and removes the temp file. Used when processing failed or
// produced no changes. Safe to call after Commit, where it does nothing.
func (t *Target) Discard() error {
	if t.done {
		return nil
	}
	t.done = true
	closeErr := t.File.Close()
	if err := os.Remove(t.File.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return closeErr
}

// Commit atomically replaces the original with the temp file, carrying the
// original's permission bits over. With a non-empty backupExt the original is
// first renamed to path+backupExt; an existing backup is never overwritten.
func (t *Target) Commit(backupExt string) error {
	if t.done {
		return fmt.Errorf("in-place target for %s already resolved", t.path)
	}
	if err := t.File.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	t.done = true

	modeSource := t.path
	if backupExt != "" {
		backup := t.path + backupExt
		if _, err := os.Stat(backup); err == nil {
			return fmt.Errorf("cannot make backup of %s: %s already exists", t.path, backup)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat backup %s: %w", backup, err)
		}
		if err := os.Rename(t.path, backup); err != nil {
			return fmt.Errorf("rename %s to %s: %w", t.path, backup, err)
		}
		modeSource = backup
	}

	if err := copyMode(modeSource, t.File.Name()); err != nil {
		return err
	}
	if err := os.Rename(t.File.Name(), t.path); err != nil {
		return fmt.Errorf("replace %s: %w", t.path, err)
	}
	return nil
}

func copyMode(from, to string) error {
	info, err := os.Stat(from)
	if err != nil {
		return fmt.Errorf("stat %s: %w", from, err)
	}
	if err := os.Chmod(to, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", to, err)
	}
	return nil
}
