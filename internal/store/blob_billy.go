// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const (
	// namespaceMarker records the creation time of a namespace directory.
	// File modification times are not reliable across billy backends.
	namespaceMarker = ".namespace"

	// tempPrefix prefixes in-flight writes; they are renamed into place
	// once fully written.
	tempPrefix = ".tmp-"

	rootDir = "/"
)

// billyBlobStore keeps each namespace in its own directory of a billy
// filesystem and each blob in its own file. Operations on one namespace are
// serialized; different namespaces proceed in parallel.
type billyBlobStore struct {
	fs    billy.Filesystem
	locks sync.Map // namespace -> *sync.Mutex
	now   func() time.Time
}

// NewBillyBlobStore returns a BlobStore on top of fs.
func NewBillyBlobStore(fs billy.Filesystem) BlobStore {
	return &billyBlobStore{fs: fs, now: time.Now}
}

// NewFileBlobStore returns a BlobStore rooted at dir on the local disk.
func NewFileBlobStore(dir string) (BlobStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving batch directory %q: %w", dir, err)
	}
	if err = os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("error creating batch directory %q: %w", dir, err)
	}
	// the bound variant hands out *os.File values, which can be synced
	return NewBillyBlobStore(osfs.New(abs, osfs.WithBoundOS())), nil
}

// NewMemoryBlobStore returns a BlobStore that keeps everything in memory.
func NewMemoryBlobStore() BlobStore {
	return NewBillyBlobStore(memfs.New())
}

func (s *billyBlobStore) EnsureNamespace(ctx context.Context, namespace string) error {
	if err := validName(namespace); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.lock(namespace)
	defer unlock()

	dir := s.fs.Join(rootDir, namespace)
	if _, err := s.fs.Stat(s.fs.Join(dir, namespaceMarker)); err == nil {
		return nil
	}
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("error creating namespace %q: %w", namespace, err)
	}

	createdAt := s.now().UTC().Format(time.RFC3339Nano)
	if err := s.writeAtomic(dir, namespaceMarker, []byte(createdAt)); err != nil {
		return fmt.Errorf("error marking namespace %q: %w", namespace, err)
	}
	return nil
}

func (s *billyBlobStore) NamespaceExists(ctx context.Context, namespace string) (bool, error) {
	if err := validName(namespace); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	unlock := s.lock(namespace)
	defer unlock()

	return s.exists(s.fs.Join(rootDir, namespace))
}

func (s *billyBlobStore) Put(ctx context.Context, namespace, key string, data []byte) error {
	if err := validNames(namespace, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.lock(namespace)
	defer unlock()

	dir := s.fs.Join(rootDir, namespace)
	ok, err := s.exists(dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNamespaceNotFound, namespace)
	}

	return s.writeAtomic(dir, key, data)
}

func (s *billyBlobStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := validNames(namespace, key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := s.lock(namespace)
	defer unlock()

	data, err := util.ReadFile(s.fs, s.fs.Join(rootDir, namespace, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrBlobNotFound, namespace, key)
		}
		return nil, fmt.Errorf("error reading blob %s/%s: %w", namespace, key, err)
	}
	return data, nil
}

func (s *billyBlobStore) Delete(ctx context.Context, namespace, key string) error {
	if err := validNames(namespace, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.lock(namespace)
	defer unlock()

	name := s.fs.Join(rootDir, namespace, key)
	ok, err := s.exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrBlobNotFound, namespace, key)
	}
	if err = s.fs.Remove(name); err != nil {
		return fmt.Errorf("error removing blob %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *billyBlobStore) RemoveNamespaceIfEmpty(ctx context.Context, namespace string) (bool, error) {
	if err := validName(namespace); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	unlock := s.lock(namespace)
	defer unlock()

	dir := s.fs.Join(rootDir, namespace)
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error listing namespace %q: %w", namespace, err)
	}
	for _, entry := range entries {
		if entry.Name() != namespaceMarker {
			return false, nil
		}
	}

	if err = util.RemoveAll(s.fs, dir); err != nil {
		return false, fmt.Errorf("error removing namespace %q: %w", namespace, err)
	}
	return true, nil
}

func (s *billyBlobStore) ListNamespaces(ctx context.Context) ([]NamespaceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.fs.ReadDir(rootDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing namespaces: %w", err)
	}

	namespaces := make([]NamespaceInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info := NamespaceInfo{Name: entry.Name(), CreatedAt: entry.ModTime()}

		// prefer the marker; directories without one (crashed before the
		// marker was written) report their modification time
		raw, err := util.ReadFile(s.fs, s.fs.Join(rootDir, entry.Name(), namespaceMarker))
		if err == nil {
			if createdAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(raw))); err == nil {
				info.CreatedAt = createdAt
			}
		}
		namespaces = append(namespaces, info)
	}
	return namespaces, nil
}

func (s *billyBlobStore) RemoveNamespace(ctx context.Context, namespace string) error {
	if err := validName(namespace); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := s.lock(namespace)
	defer unlock()

	if err := util.RemoveAll(s.fs, s.fs.Join(rootDir, namespace)); err != nil {
		return fmt.Errorf("error removing namespace %q: %w", namespace, err)
	}
	return nil
}

// writeAtomic writes data into a temp file inside dir and renames it to
// name, so readers never observe a partially written blob.
func (s *billyBlobStore) writeAtomic(dir, name string, data []byte) error {
	tmp, err := util.TempFile(s.fs, dir, tempPrefix)
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	// some filesystems report only the base name
	tmpName := s.fs.Join(dir, path.Base(tmp.Name()))

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	// in-memory files have nothing to flush
	if syncer, ok := tmp.(interface{ Sync() error }); ok {
		if err = syncer.Sync(); err != nil {
			_ = tmp.Close()
			_ = s.fs.Remove(tmpName)
			return fmt.Errorf("error syncing %s: %w", name, err)
		}
	}
	if err = tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("error closing %s: %w", name, err)
	}

	target := s.fs.Join(dir, name)
	if err = s.fs.Rename(tmpName, target); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("error renaming %s: %w", name, err)
	}
	return nil
}

// lock acquires the mutex of namespace and returns its release.
func (s *billyBlobStore) lock(namespace string) func() {
	mu, _ := s.locks.LoadOrStore(namespace, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *billyBlobStore) exists(name string) (bool, error) {
	_, err := s.fs.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("error checking %s: %w", name, err)
}

func validNames(names ...string) error {
	for _, name := range names {
		if err := validName(name); err != nil {
			return err
		}
	}
	return nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || name == namespaceMarker ||
		strings.HasPrefix(name, tempPrefix) || strings.ContainsAny(name, `/\`) || path.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
