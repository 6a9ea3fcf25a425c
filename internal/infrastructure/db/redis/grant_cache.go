package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/masum-abrar/nex-trade-backend/internal/core/ports"
)

// grantTTL also bounds how long a revoked role can keep serving its
// cached grants, so it is kept short.
const grantTTL = time.Minute

// GrantCache is a cache-aside decorator around a GrantRepository. Grant
// lookups run on every login, so the role→module set and role name are
// kept in Redis for a short TTL. Cache failures degrade to direct reads;
// they never fail a login. Revoking a role takes effect on the next
// direct read, at most grantTTL after the cached entry was written.
type GrantCache struct {
	inner  ports.GrantRepository
	client *redis.Client
	log    zerolog.Logger
}

func NewGrantCache(inner ports.GrantRepository, client *redis.Client, log zerolog.Logger) *GrantCache {
	return &GrantCache{inner: inner, client: client, log: log}
}

func (c *GrantCache) ModulesForRole(ctx context.Context, roleID string) ([]string, error) {
	if roleID == "" {
		return c.inner.ModulesForRole(ctx, roleID)
	}

	key := fmt.Sprintf("grants:modules:%s", roleID)
	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var modules []string
		if err := json.Unmarshal([]byte(raw), &modules); err == nil {
			return modules, nil
		}
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("role_id", roleID).Msg("grant cache read failed")
	}

	modules, err := c.inner.ModulesForRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(modules); err == nil {
		if err := c.client.Set(ctx, key, raw, grantTTL).Err(); err != nil {
			c.log.Warn().Err(err).Str("role_id", roleID).Msg("grant cache write failed")
		}
	}
	return modules, nil
}

func (c *GrantCache) RoleName(ctx context.Context, roleID string) (string, error) {
	if roleID == "" {
		return c.inner.RoleName(ctx, roleID)
	}

	key := fmt.Sprintf("grants:rolename:%s", roleID)
	if name, err := c.client.Get(ctx, key).Result(); err == nil {
		return name, nil
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("role_id", roleID).Msg("role name cache read failed")
	}

	name, err := c.inner.RoleName(ctx, roleID)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, name, grantTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("role_id", roleID).Msg("role name cache write failed")
	}
	return name, nil
}
