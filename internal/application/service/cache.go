package service

import (
	"context"
	"time"
)

// PublicPath is the route rendering the public resume.
const PublicPath = "/"

// CacheInvalidator signals that the cached output of a frontend route is stale.
type CacheInvalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// Revalidator asks the frontend to rebuild a route.
type Revalidator interface {
	RevalidatePath(ctx context.Context, path string) error
}

// TokenRevoker keeps revoked token IDs until the tokens would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
