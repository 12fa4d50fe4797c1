package iam

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

const (
	userCacheSize = 1024
	userCacheTTL  = 30 * time.Second
)

// userCache keeps recently authenticated users in memory so the per-request
// authn path does not hit the database for every call. The short TTL bounds
// how long a disabled account or role change can lag behind.
type userCache struct {
	lru *expirable.LRU[string, *models.User]
}

func newUserCache() *userCache {
	return &userCache{
		lru: expirable.NewLRU[string, *models.User](userCacheSize, nil, userCacheTTL),
	}
}

func (c *userCache) get(id string) (*models.User, bool) {
	return c.lru.Get(id)
}

func (c *userCache) put(user *models.User) {
	if user != nil {
		c.lru.Add(user.ID, user)
	}
}

// invalidate drops a user after any mutation so the next authn sees the
// fresh record.
func (c *userCache) invalidate(id string) {
	c.lru.Remove(id)
}
