package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Spok95/peerrank/internal/metrics"
	"github.com/Spok95/peerrank/internal/models"
)

// LeaderboardCache — мемоизация свода по (room, question) в Redis.
// Инвалидация через версию комнаты: любая запись в леджер комнаты
// инкрементит версию, старые ключи дотлевают по TTL.
type LeaderboardCache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ Cache = (*LeaderboardCache)(nil)

func NewLeaderboardCache(addr string, ttl time.Duration, logger *zap.Logger) (*LeaderboardCache, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("кэш лидерборда включён", zap.String("addr", addr), zap.Duration("ttl", ttl))
	return &LeaderboardCache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

func (c *LeaderboardCache) Close() error { return c.rdb.Close() }

func verKey(roomID int64) string { return fmt.Sprintf("lb:ver:%d", roomID) }

func (c *LeaderboardCache) dataKey(ctx context.Context, roomID int64, questionID *int64) string {
	ver, err := c.rdb.Get(ctx, verKey(roomID)).Int64()
	if err != nil && err != goredis.Nil {
		return ""
	}
	q := "all"
	if questionID != nil {
		q = fmt.Sprintf("%d", *questionID)
	}
	return fmt.Sprintf("lb:%d:v%d:%s", roomID, ver, q)
}

// Get — на промахе возвращает ключ с текущей версией комнаты.
// Последующий Set пишет под этот же ключ: если между чтением БД и
// записью версия сдвинулась, устаревшие строки лягут в мёртвый ключ
// и дотлеют по TTL, читатели их не увидят.
func (c *LeaderboardCache) Get(ctx context.Context, roomID int64, questionID *int64) ([]models.LeaderboardRow, string, bool) {
	key := c.dataKey(ctx, roomID, questionID)
	if key == "" {
		return nil, "", false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("кэш недоступен, читаем из БД", zap.Error(err))
		}
		metrics.CacheMisses.Inc()
		return nil, key, false
	}
	var rows []models.LeaderboardRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		metrics.CacheMisses.Inc()
		return nil, key, false
	}
	metrics.CacheHits.Inc()
	return rows, key, true
}

func (c *LeaderboardCache) Set(ctx context.Context, key string, rows []models.LeaderboardRow) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("не удалось записать кэш", zap.Error(err))
	}
}

// InvalidateRoom — сбрасывает все своды комнаты (и общий, и по вопросам).
func (c *LeaderboardCache) InvalidateRoom(ctx context.Context, roomID int64) {
	if err := c.rdb.Incr(ctx, verKey(roomID)).Err(); err != nil {
		c.logger.Warn("не удалось инвалидировать кэш", zap.Int64("room_id", roomID), zap.Error(err))
	}
}
