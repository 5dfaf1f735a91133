package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/admissions-service/internal/domain"
)

const listKey = "applicants:list"

// ApplicantCache keeps a short-lived copy of the full applicant listing in
// Redis. It is strictly best-effort: any cache failure falls through to the
// store.
type ApplicantCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewApplicantCache builds a cache over the given client. A nil client or
// non-positive TTL disables caching.
func NewApplicantCache(client *redis.Client, ttl time.Duration) *ApplicantCache {
	return &ApplicantCache{client: client, ttl: ttl}
}

// GetList returns the cached listing, or (nil, false) on miss or error.
func (c *ApplicantCache) GetList(ctx context.Context) ([]domain.Applicant, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		return nil, false
	}
	var applicants []domain.Applicant
	if err := json.Unmarshal(raw, &applicants); err != nil {
		return nil, false
	}
	return applicants, true
}

// SetList stores the listing for the configured TTL.
func (c *ApplicantCache) SetList(ctx context.Context, applicants []domain.Applicant) error {
	if !c.enabled() {
		return nil
	}
	raw, err := json.Marshal(applicants)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey, raw, c.ttl).Err()
}

// Invalidate drops the cached listing after a write.
func (c *ApplicantCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Del(ctx, listKey).Err()
}

func (c *ApplicantCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}
