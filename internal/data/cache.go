package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scorekeeper/internal/biz"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/yola1107/kratos/v2/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	statsKeyFmt   = "score:stats:%s"
	statsCacheTTL = 10 * time.Minute
)

// statsCache keeps PlayerStatistics projections in redis. The projection is
// always recomputable, so every failure mode here degrades to a miss.
type statsCache struct {
	data *Data
	log  *log.Helper
}

// NewStatsCache .
func NewStatsCache(data *Data, logger log.Logger) biz.StatsCache {
	return &statsCache{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (c *statsCache) key(playerID string) string { return fmt.Sprintf(statsKeyFmt, playerID) }

func (c *statsCache) Get(ctx context.Context, playerID string) (*biz.PlayerStatistics, error) {
	raw, err := c.data.rdb.Get(ctx, c.key(playerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	st := &biz.PlayerStatistics{}
	if err := json.Unmarshal(raw, st); err != nil {
		c.log.WithContext(ctx).Warnf("dropping undecodable stats for %s: %v", playerID, err)
		return nil, nil
	}
	return st, nil
}

func (c *statsCache) Set(ctx context.Context, st *biz.PlayerStatistics) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.data.rdb.Set(ctx, c.key(st.PlayerID), raw, statsCacheTTL).Err()
}

func (c *statsCache) Drop(ctx context.Context, playerIDs ...string) error {
	keys := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		if id != "" {
			keys = append(keys, c.key(id))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.data.rdb.Del(ctx, keys...).Err()
}
