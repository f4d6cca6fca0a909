// Package core defines repository ports and cross-cutting services shared by the service layer.
package core

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/nazmul162001/educonnect/internal/domain/model"
)

// CacheRepository defines the interface for caching operations.
// The core defines it; the data layer provides the Redis implementation.
type CacheRepository interface {
	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value. Returns nil, nil when the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

const collegeKeyPrefix = "college:"

// CollegeCacheConfig holds configuration for college caching.
type CollegeCacheConfig struct {
	TTL time.Duration
}

// DefaultCollegeCacheConfig returns the default college cache settings.
func DefaultCollegeCacheConfig() CollegeCacheConfig {
	return CollegeCacheConfig{TTL: 10 * time.Minute}
}

// CollegeCacheOptions bundles dependencies for NewCollegeCache.
type CollegeCacheOptions struct {
	Cache    CacheRepository // nil disables caching
	Colleges CollegeRepository
	Config   CollegeCacheConfig
	Logger   *slog.Logger
}

// CollegeCache is a read-through cache in front of CollegeRepository.
// Cache failures never fail a read; the repository stays authoritative.
type CollegeCache struct {
	cache    CacheRepository
	colleges CollegeRepository
	ttl      time.Duration
	logger   *slog.Logger
}

var _ CollegeRepository = (*CollegeCache)(nil)

// NewCollegeCache creates a CollegeCache.
func NewCollegeCache(opts CollegeCacheOptions) *CollegeCache {
	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultCollegeCacheConfig().TTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CollegeCache{
		cache:    opts.Cache,
		colleges: opts.Colleges,
		ttl:      ttl,
		logger:   logger.With("component", "college_cache"),
	}
}

// GetByID returns a college, consulting the cache first.
func (c *CollegeCache) GetByID(ctx context.Context, id string) (*model.College, error) {
	key := collegeKeyPrefix + "id:" + id
	var cached model.College
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	college, err := c.colleges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, college)
	return college, nil
}

// List returns colleges, consulting the cache first.
func (c *CollegeCache) List(ctx context.Context, opts model.CollegeListOptions) ([]*model.College, error) {
	opts.Normalize()
	key := collegeKeyPrefix + "list:" + strconv.Itoa(opts.Limit) + ":" + strconv.Itoa(opts.Offset) + ":" + opts.Search
	var cached []*model.College
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	colleges, err := c.colleges.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, colleges)
	return colleges, nil
}

// Upsert writes through to the repository and drops every cached college entry.
func (c *CollegeCache) Upsert(ctx context.Context, req *model.UpsertCollegeRequest) (*model.College, error) {
	college, err := c.colleges.Upsert(ctx, req)
	if err != nil {
		return nil, err
	}
	c.Invalidate(ctx)
	return college, nil
}

// Invalidate removes every cached college entry.
func (c *CollegeCache) Invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if _, err := c.cache.DeletePrefix(ctx, collegeKeyPrefix); err != nil {
		c.logger.WarnContext(ctx, "college cache invalidation failed", "error", err)
	}
}

func (c *CollegeCache) load(ctx context.Context, key string, dst any) bool {
	if c.cache == nil {
		return false
	}
	b, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "college cache read failed", "key", key, "error", err)
		return false
	}
	if len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.logger.WarnContext(ctx, "college cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CollegeCache) store(ctx context.Context, key string, v any) {
	if c.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "college cache write failed", "key", key, "error", err)
	}
}
