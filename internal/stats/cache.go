package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda o ranking completo no Redis por um TTL curto.
// O ranking dobra sobre todas as apostas; não precisa ser recomputado
// a cada requisição.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func NewCache(r *redis.Client) *Cache { return &Cache{R: r, TTL: 30 * time.Second} }

const leaderboardKey = "stats:leaderboard"

func (c *Cache) GetLeaderboard(ctx context.Context, dst *[]LeaderboardEntry) (bool, error) {
	b, err := c.R.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetLeaderboard(ctx context.Context, entries []LeaderboardEntry) error {
	b, _ := json.Marshal(entries)
	return c.R.Set(ctx, leaderboardKey, b, c.TTL).Err()
}

// Invalidate derruba o ranking após uma liquidação; o próximo GET recomputa
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.R.Del(ctx, leaderboardKey).Err()
}
