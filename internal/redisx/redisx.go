// Package redisx holds the redis client and the key/TTL conventions for
// the presentation-layer caches. Core logic never reads redis.
package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Dashboard summary cache: dashboard:{owner_id} -> JSON snapshot.
	KeyDashboard = "dashboard:%s"
)

var (
	TTLDashboard = 30 * time.Second
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
