package cache

import (
	"context"
	"encoding/json"
	"time"

	"show-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to redis for the advisory seat cache. Returns nil
// when the server is unreachable; callers degrade to direct database reads.
func NewRedisClient(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, seat cache disabled", zap.Error(err))
		return nil
	}

	return client
}

// SeatSnapshot is the cached inventory view of one show.
type SeatSnapshot struct {
	TotalSeatCount int      `json:"total_seat_count"`
	BookedSeats    []string `json:"booked_seats"`
}

// SeatCache holds short-lived booked-seat snapshots per show. It only serves
// the advisory availability check; the authoritative check happens in the
// commit transaction, so a stale or missing entry is never a correctness
// problem. All methods are safe on a nil cache or nil redis client.
type SeatCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewSeatCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *SeatCache {
	return &SeatCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("component", "seat_cache")),
	}
}

func (c *SeatCache) key(showID string) string {
	return "show:seats:" + showID
}

// GetSnapshot returns the cached snapshot and whether it was present.
func (c *SeatCache) GetSnapshot(ctx context.Context, showID string) (*SeatSnapshot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key(showID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Seat cache read failed", zap.Error(err), zap.String("show_id", showID))
		}
		return nil, false
	}

	var snap SeatSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		c.log.Warn("Seat cache entry corrupt", zap.Error(err), zap.String("show_id", showID))
		return nil, false
	}

	return &snap, true
}

func (c *SeatCache) SetSnapshot(ctx context.Context, showID string, snap SeatSnapshot) {
	if c == nil || c.rdb == nil {
		return
	}

	if snap.BookedSeats == nil {
		snap.BookedSeats = []string{}
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.key(showID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Seat cache write failed", zap.Error(err), zap.String("show_id", showID))
	}
}

// Invalidate drops the snapshot after a commit or cancel changed inventory.
func (c *SeatCache) Invalidate(ctx context.Context, showID string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, c.key(showID)).Err(); err != nil {
		c.log.Warn("Seat cache invalidate failed", zap.Error(err), zap.String("show_id", showID))
	}
}
