// Package jsonfile writes a run's hotel records as one JSON array and serves
// them back for reads.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"trip_hotels/internal/domain"
)

type Store struct {
	path string

	mu     sync.Mutex
	loaded []domain.HotelRecord
	mtime  int64
}

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Encode renders records as an indented JSON array. Non-ASCII text and HTML
// characters are written literally.
func Encode(hs []domain.HotelRecord) ([]byte, error) {
	if hs == nil {
		hs = []domain.HotelRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(hs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveHotels replaces the file atomically: write a sibling temp file, then rename.
func (s *Store) SaveHotels(ctx context.Context, hs []domain.HotelRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := Encode(hs)
	if err != nil {
		return fmt.Errorf("encode hotels: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename into %s: %w", s.path, err)
	}
	return nil
}

// load re-reads the file when its modification time changed.
func (s *Store) load() ([]domain.HotelRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if s.loaded != nil && st.ModTime().UnixNano() == s.mtime {
		return s.loaded, nil
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var hs []domain.HotelRecord
	if err := json.Unmarshal(b, &hs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if hs == nil {
		hs = []domain.HotelRecord{}
	}
	s.loaded, s.mtime = hs, st.ModTime().UnixNano()
	return hs, nil
}

func (s *Store) GetHotel(ctx context.Context, id string) (domain.HotelRecord, error) {
	hs, err := s.load()
	if err != nil {
		return domain.HotelRecord{}, err
	}
	for _, h := range hs {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.HotelRecord{}, domain.ErrNotFound
}

func (s *Store) ListHotels(ctx context.Context, city string) ([]domain.HotelRecord, error) {
	hs, err := s.load()
	if err != nil {
		return nil, err
	}
	if city == "" {
		return hs, nil
	}
	out := make([]domain.HotelRecord, 0, len(hs))
	for _, h := range hs {
		if strings.EqualFold(h.City, city) {
			out = append(out, h)
		}
	}
	return out, nil
}
