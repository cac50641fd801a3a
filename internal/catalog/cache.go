package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// OddsSource é o que o cache envolve: a leitura autoritativa das cotações
type OddsSource interface {
	CurrentOdds(ctx context.Context, raceID int64, driverName, market string) (decimal.Decimal, error)
}

// Cached faz read-through das cotações via Redis com TTL curto.
// Erro no Redis degrada pra leitura direta, nunca falha a captura.
type Cached struct {
	Src OddsSource
	R   *redis.Client
	TTL time.Duration
}

func NewCached(src OddsSource, r *redis.Client) *Cached {
	return &Cached{Src: src, R: r, TTL: 30 * time.Second}
}

func keyOdds(raceID int64, driver, market string) string {
	return fmt.Sprintf("odds:%d:%s:%s", raceID, driver, market)
}

func (c *Cached) CurrentOdds(ctx context.Context, raceID int64, driverName, market string) (decimal.Decimal, error) {
	key := keyOdds(raceID, driverName, market)

	if val, err := c.R.Get(ctx, key).Result(); err == nil {
		if odds, derr := decimal.NewFromString(val); derr == nil {
			return odds, nil
		}
	}

	odds, err := c.Src.CurrentOdds(ctx, raceID, driverName, market)
	if err != nil {
		return decimal.Zero, err
	}

	_ = c.R.Set(ctx, key, odds.String(), c.TTL).Err()
	return odds, nil
}
