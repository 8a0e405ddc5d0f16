package memory

import (
	"time"

	"triage-assist-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ConsentCache keeps the latest consent record per user in process memory.
type ConsentCache struct {
	cache *cache.Cache
}

func NewConsentCache(ttl time.Duration) *ConsentCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ConsentCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *ConsentCache) Save(record *entity.ConsentRecord) {
	c.cache.Set(record.UserId.String(), record, cache.DefaultExpiration)
}

func (c *ConsentCache) Get(userId uuid.UUID) (*entity.ConsentRecord, bool) {
	if x, found := c.cache.Get(userId.String()); found {
		return x.(*entity.ConsentRecord), true
	}
	return nil, false
}

func (c *ConsentCache) Delete(userId uuid.UUID) {
	c.cache.Delete(userId.String())
}
