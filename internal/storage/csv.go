package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"expenses/internal/cache"
	"expenses/internal/codec"
	"expenses/internal/core"
	"expenses/internal/log"
)

// CSVStore keeps the whole ledger in one CSV table. Every mutation reads
// the table, changes it in memory and replaces the file through a
// temporary file and a rename, so readers never observe a partial table.
//
// A CSVStore serializes its own calls. Concurrent writers in other
// processes are not supported.
type CSVStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
	cache  *cache.LRUCache[snapshot]
	rename func(oldpath, newpath string) error
}

// snapshot is a decoded table together with the file stamp it was read at.
type snapshot struct {
	modTime time.Time
	size    int64
	items   []core.Expense
}

// CSVOption configures a CSVStore.
type CSVOption func(*CSVStore)

// WithCSVLogger sets the logger used by the store.
func WithCSVLogger(l *log.Logger) CSVOption {
	return func(s *CSVStore) {
		s.logger = l.WithComponent(log.ComponentStorage)
	}
}

// WithSnapshotTTL bounds how long a decoded table is reused. Zero disables
// snapshot caching.
func WithSnapshotTTL(ttl time.Duration) CSVOption {
	return func(s *CSVStore) {
		if ttl <= 0 {
			s.cache = nil
			return
		}
		s.cache = cache.NewLRUCache[snapshot](1, ttl)
	}
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore opens the table at path, creating it with only a header when
// missing. Tables written before ids were tracked get ids assigned and are
// rewritten once.
func NewCSVStore(path string, opts ...CSVOption) (*CSVStore, error) {
	s := &CSVStore{
		path:   path,
		logger: log.Discard(),
		cache:  cache.NewLRUCache[snapshot](1, 5*time.Minute),
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &core.PersistenceError{Op: "create data directory", Path: filepath.Dir(path), Err: err}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
		s.logger.Info("Created ledger table", log.FieldPath, path)
	} else if err != nil {
		return nil, &core.PersistenceError{Op: "stat", Path: path, Err: err}
	}

	if err := s.upgrade(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the table.
func (s *CSVStore) Path() string { return s.path }

func (s *CSVStore) Close() error { return nil }

// upgrade assigns ids to rows that have none and re-sorts the table.
func (s *CSVStore) upgrade() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	assigned := 0
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = newID()
			assigned++
		}
	}
	sorted := slices.IsSortedFunc(items, func(a, b core.Expense) int {
		return a.Date.Compare(b.Date.Time)
	})
	if assigned == 0 && sorted {
		return nil
	}
	sortByDate(items)
	if err := s.write(items); err != nil {
		return err
	}
	s.logger.Info("Upgraded ledger table",
		log.FieldOperation, log.OpUpgrade,
		log.FieldPath, s.path,
		"assigned_ids", assigned)
	return nil
}

func (s *CSVStore) Append(ctx context.Context, e core.Expense) (core.ID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e = codec.Normalize(e)
	if err := e.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return "", err
	}
	e.ID = newID()
	items = append(items, e)
	sortByDate(items)
	if err := s.write(items); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "Expense appended",
		log.NewFields().
			WithOperation(log.OpAppend).
			WithExpense(string(e.ID), e.Owner, e.Date.String(), e.Amount, string(e.Category)).
			ToSlice()...)
	return e.ID, nil
}

func (s *CSVStore) Scan(ctx context.Context, owner string) ([]core.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	items, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *CSVStore) Get(ctx context.Context, id core.ID) (core.Expense, error) {
	if err := ctx.Err(); err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	items, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return core.Expense{}, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return core.Expense{}, core.NotFound(id)
	}
	return items[i], nil
}

func (s *CSVStore) UpdateField(ctx context.Context, id core.ID, field core.Field, value string) (core.Expense, error) {
	if err := ctx.Err(); err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return core.Expense{}, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return core.Expense{}, core.NotFound(id)
	}
	updated, err := codec.ApplyField(items[i], field, value)
	if err != nil {
		return core.Expense{}, err
	}
	if err := updated.Validate(); err != nil {
		return core.Expense{}, err
	}
	items[i] = updated
	sortByDate(items)
	if err := s.write(items); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldID, id,
		log.FieldField, field.String())
	return updated, nil
}

func (s *CSVStore) Delete(ctx context.Context, id core.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return core.NotFound(id)
	}
	items = slices.Delete(items, i, i+1)
	if err := s.write(items); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldID, id)
	return nil
}

// load returns a private copy of the table. The caller must hold s.mu.
func (s *CSVStore) load() ([]core.Expense, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, &core.PersistenceError{Op: "stat", Path: s.path, Err: err}
	}
	if s.cache != nil {
		if snap, ok := s.cache.Get(s.path); ok && snap.size == info.Size() && snap.modTime.Equal(info.ModTime()) {
			s.logger.Debug("Ledger snapshot reused", log.FieldPath, s.path, log.FieldCount, len(snap.items))
			return slices.Clone(snap.items), nil
		}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &core.PersistenceError{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	items, err := decodeTable(f)
	if err != nil {
		return nil, &core.PersistenceError{Op: "decode", Path: s.path, Err: err}
	}
	s.remember(info, items)
	return items, nil
}

func (s *CSVStore) remember(info os.FileInfo, items []core.Expense) {
	if s.cache == nil {
		return
	}
	s.cache.Set(s.path, snapshot{
		modTime: info.ModTime(),
		size:    info.Size(),
		items:   slices.Clone(items),
	})
}

func decodeTable(r io.Reader) ([]core.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var items []core.Expense
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && codec.IsHeader(row) {
			continue
		}
		e, err := codec.DecodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, e)
	}
	return items, nil
}

// write replaces the table with items. On failure the previous table is
// left in place and the temporary file is removed. The caller must hold
// s.mu.
func (s *CSVStore) write(items []core.Expense) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &core.PersistenceError{Op: "create temp file", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &core.PersistenceError{Op: op, Path: s.path, Err: err}
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(codec.Header); err != nil {
		return fail("write header", err)
	}
	for _, e := range items {
		if err := w.Write(codec.EncodeRow(e)); err != nil {
			return fail("write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fail("flush", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &core.PersistenceError{Op: "close", Path: s.path, Err: err}
	}
	if err := s.rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &core.PersistenceError{Op: "replace", Path: s.path, Err: err}
	}

	if info, err := os.Stat(s.path); err == nil {
		s.remember(info, items)
	} else if s.cache != nil {
		s.cache.Delete(s.path)
	}
	return nil
}
