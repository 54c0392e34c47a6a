// Package profiles loads and indexes monthly climate profile datasets.
//
// A dataset is a JSON document of the form
//
//	{"meta": {"source": "..."}, "features": [{"id": "...", "tmean": [...], ...}]}
//
// Files ending in .gz or .zst are decompressed on the fly.
package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
)

var (
	// ErrUnknownRegion is returned when a region id has no profile.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrDuplicateID is returned when two profiles share an id.
	ErrDuplicateID = errors.New("duplicate profile id")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Store is an immutable index of profiles by region id. It is safe for
// concurrent use.
type Store struct {
	meta  domain.ProfilesMeta
	byID  map[string]*domain.MonthlyClimateProfile
	order []string
}

// Load reads, decompresses and validates a dataset file.
func Load(path string) (*Store, error) {
	db, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	store, err := New(db)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return store, nil
}

// ReadFile decodes a dataset file without validating its profiles.
func ReadFile(path string) (domain.ProfilesDB, error) {
	var db domain.ProfilesDB

	f, err := os.Open(path)
	if err != nil {
		return db, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()

	r, closeFn, err := decompress(path, f)
	if err != nil {
		return db, err
	}
	defer closeFn()

	if err := json.NewDecoder(r).Decode(&db); err != nil {
		return db, fmt.Errorf("load %s: decode profiles: %w", filepath.Base(path), err)
	}
	return db, nil
}

func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("create zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}

// Decode parses and validates an uncompressed dataset.
func Decode(r io.Reader) (*Store, error) {
	var db domain.ProfilesDB
	if err := json.NewDecoder(r).Decode(&db); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return New(db)
}

// New validates every profile of db and indexes it by id.
func New(db domain.ProfilesDB) (*Store, error) {
	s := &Store{
		meta:  db.Meta,
		byID:  make(map[string]*domain.MonthlyClimateProfile, len(db.Features)),
		order: make([]string, 0, len(db.Features)),
	}

	var errs []error
	for i := range db.Features {
		p := db.Features[i]
		if err := validate.Struct(&p); err != nil {
			errs = append(errs, fmt.Errorf("profile %d (%q): %w", i, p.ID, err))
			continue
		}
		if _, dup := s.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("profile %d: %w: %q", i, ErrDuplicateID, p.ID))
			continue
		}
		s.byID[p.ID] = &p
		s.order = append(s.order, p.ID)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the profile for a region id.
func (s *Store) Get(id string) (*domain.MonthlyClimateProfile, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	return p, nil
}

// Lookup returns the profile for id, or nil when there is none.
func (s *Store) Lookup(id string) *domain.MonthlyClimateProfile {
	return s.byID[id]
}

// Len returns the number of profiles.
func (s *Store) Len() int {
	return len(s.byID)
}

// All returns the profiles in dataset order.
func (s *Store) All() []*domain.MonthlyClimateProfile {
	out := make([]*domain.MonthlyClimateProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// IDs returns every region id, sorted.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	sort.Strings(ids)
	return ids
}

// Meta returns the dataset provenance.
func (s *Store) Meta() domain.ProfilesMeta {
	return s.meta
}
