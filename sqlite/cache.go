package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/bloom"
)

// Ensure CacheService implements distill.ResultCache at compile time.
var _ distill.ResultCache = (*CacheService)(nil)

// DefaultTTL is how long cached results stay fresh.
const DefaultTTL = 24 * time.Hour

// expectedEntries sizes the Bloom filter fronting the cache.
const expectedEntries = 100_000

// CacheService stores processed results keyed by fingerprint. A Bloom
// filter fronts the database so the common miss path never touches
// SQLite. Existing fingerprints are loaded into the filter on
// construction; the filter never produces false negatives, so a miss
// there is a definitive miss.
type CacheService struct {
	db     *DB
	ttl    time.Duration
	filter *bloom.Filter

	// Now is the time source, overridable in tests.
	Now func() time.Time
}

// NewCacheService creates a CacheService over an open DB. Non-positive
// ttl uses the default.
func NewCacheService(db *DB, ttl time.Duration) (*CacheService, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &CacheService{
		db:     db,
		ttl:    ttl,
		filter: bloom.NewFilter(expectedEntries, 0.01),
		Now:    time.Now,
	}
	if err := s.loadFilter(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to prime cache filter: %w", err)
	}
	return s, nil
}

// loadFilter primes the Bloom filter with every stored fingerprint.
func (s *CacheService) loadFilter(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT fingerprint FROM results`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var fingerprint string
		if err := rows.Scan(&fingerprint); err != nil {
			return err
		}
		s.filter.Add(fingerprint)
	}
	return rows.Err()
}

// Get returns the cached result for a fingerprint. Expired entries are
// deleted on read. Returns ENOTFOUND when no fresh entry exists.
func (s *CacheService) Get(ctx context.Context, fingerprint string) (*distill.ProcessingResult, error) {
	if !s.filter.Test(fingerprint) {
		return nil, distill.Errorf(distill.ENOTFOUND, "result not cached")
	}

	var (
		result    distill.ProcessingResult
		success   int
		stats     string
		warnings  string
		errorsRaw string
		expiresAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT success, content, title, stats, warnings, errors, expires_at
		FROM results WHERE fingerprint = ?`, fingerprint,
	).Scan(&success, &result.Content, &result.Title, &stats, &warnings, &errorsRaw, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, distill.Errorf(distill.ENOTFOUND, "result not cached")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached result: %w", err)
	}

	expiry, err := parseRFC3339(expiresAt, "expires_at")
	if err != nil {
		return nil, err
	}
	if s.Now().After(expiry) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM results WHERE fingerprint = ?`, fingerprint)
		return nil, distill.Errorf(distill.ENOTFOUND, "cached result expired")
	}

	result.Success = success != 0
	if err := json.Unmarshal([]byte(stats), &result.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &result.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode cached warnings: %w", err)
	}
	if err := json.Unmarshal([]byte(errorsRaw), &result.Errors); err != nil {
		return nil, fmt.Errorf("failed to decode cached errors: %w", err)
	}
	return &result, nil
}

// Put stores a result under a fingerprint, replacing any prior entry.
func (s *CacheService) Put(ctx context.Context, fingerprint string, result *distill.ProcessingResult) error {
	if fingerprint == "" {
		return distill.Errorf(distill.EINVALID, "fingerprint required")
	}
	if result == nil {
		return distill.Errorf(distill.EINVALID, "result required")
	}

	stats, err := json.Marshal(result.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	warnings, err := marshalStrings(result.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}
	errs, err := marshalStrings(result.Errors)
	if err != nil {
		return fmt.Errorf("failed to encode errors: %w", err)
	}

	now := s.Now().UTC()
	success := 0
	if result.Success {
		success = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO results
			(fingerprint, success, content, title, stats, warnings, errors, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fingerprint, success, result.Content, result.Title,
		string(stats), string(warnings), string(errs),
		now.Format(time.RFC3339), now.Add(s.ttl).Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	s.filter.Add(fingerprint)
	return nil
}

// PurgeExpired deletes every expired entry and reports how many went.
func (s *CacheService) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM results WHERE expires_at < ?`,
		s.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired results: %w", err)
	}
	return res.RowsAffected()
}

// marshalStrings encodes a string slice, mapping nil to an empty JSON
// array so round-trips stay symmetric.
func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}
