package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
)

// File implements Recipients backed by a flat text file with one chat ID per line.
// The whole file is rewritten atomically on every mutation.
type File struct {
	path string

	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewFile loads the recipient list at path. A missing file is an empty list.
func NewFile(path string) (*File, error) {
	f := &File{path: path, ids: make(map[int64]struct{})}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recipients: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, lineNo, err)
		}
		f.ids[id] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan recipients: %w", err)
	}
	return f, nil
}

// Add stores chatID and persists the list if it was not present yet.
func (f *File) Add(_ context.Context, chatID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.ids[chatID]; ok {
		return false, nil
	}
	f.ids[chatID] = struct{}{}
	if err := f.persist(); err != nil {
		delete(f.ids, chatID)
		return false, err
	}
	return true, nil
}

// Contains reports whether chatID is stored.
func (f *File) Contains(_ context.Context, chatID int64) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[chatID]
	return ok, nil
}

// List returns a snapshot of all recipients in ascending order.
func (f *File) List(_ context.Context) ([]int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sorted(), nil
}

// Close is a no-op; every mutation is already on disk.
func (f *File) Close() error {
	return nil
}

func (f *File) sorted() []int64 {
	ids := make([]int64, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// persist must be called with mu held.
func (f *File) persist() error {
	var b bytes.Buffer
	for _, id := range f.sorted() {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte('\n')
	}
	if err := renameio.WriteFile(f.path, b.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write recipients: %w", err)
	}
	return nil
}
