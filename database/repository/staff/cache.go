package staffRepo

import (
	"context"
	"encoding/json"
	"time"

	"opdcare/models"
	"opdcare/utils"

	"github.com/go-redis/redis/v8"
)

const (
	doctorCacheKeyPrefix = "doctor:profile:"
	doctorCacheTTL       = 5 * time.Minute
)

// profileCache caches doctor profiles in Redis. Scheduling evaluates the
// doctor's configuration on every registration, so the hot lookup is served
// from cache; every write through the repo invalidates the entry.
type profileCache struct {
	client *redis.Client
}

func newProfileCache() *profileCache {
	return &profileCache{client: utils.GetCacheClient()}
}

func (c *profileCache) get(id string) *models.Staff {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, doctorCacheKeyPrefix+id).Bytes()
	if err != nil {
		return nil
	}
	var s models.Staff
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

func (c *profileCache) put(s *models.Staff) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	c.client.Set(ctx, doctorCacheKeyPrefix+s.ID, data, doctorCacheTTL)
}

func (c *profileCache) invalidate(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c.client.Del(ctx, doctorCacheKeyPrefix+id)
}
