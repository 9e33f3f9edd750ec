package redis

import (
  "context"
  "fmt"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/google/uuid"
  goredis "github.com/redis/go-redis/v9"

  "github.com/yungbote/coherence-backend/internal/logger"
)

// DayCache keeps a per-user, per-day pointer to the persisted guidance
// event. It is best effort: every miss or failure falls through to the
// database range query, which stays authoritative.
type DayCache interface {
  GetGuidanceID(ctx context.Context, userID uuid.UUID, date string) (uuid.UUID, bool)
  SetGuidanceID(ctx context.Context, userID uuid.UUID, date string, eventID uuid.UUID)
  Close() error
}

type dayCache struct {
  log *logger.Logger
  rdb *goredis.Client
  ttl time.Duration
}

func NewDayCache(log *logger.Logger) (DayCache, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  ttlHours := 30
  if v := strings.TrimSpace(os.Getenv("REDIS_DAY_CACHE_TTL_HOURS")); v != "" {
    if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
      ttlHours = parsed
    }
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &dayCache{
    log: log.With("service", "RedisDayCache"),
    rdb: rdb,
    ttl: time.Duration(ttlHours) * time.Hour,
  }, nil
}

func guidanceKey(userID uuid.UUID, date string) string {
  return fmt.Sprintf("guidance:%s:%s", userID, date)
}

func (c *dayCache) GetGuidanceID(ctx context.Context, userID uuid.UUID, date string) (uuid.UUID, bool) {
  val, err := c.rdb.Get(ctx, guidanceKey(userID, date)).Result()
  if err != nil {
    if err != goredis.Nil {
      c.log.Warn("Day cache read failed", "error", err)
    }
    return uuid.Nil, false
  }
  id, err := uuid.Parse(val)
  if err != nil {
    c.log.Warn("Day cache held invalid id", "value", val)
    return uuid.Nil, false
  }
  return id, true
}

func (c *dayCache) SetGuidanceID(ctx context.Context, userID uuid.UUID, date string, eventID uuid.UUID) {
  if err := c.rdb.Set(ctx, guidanceKey(userID, date), eventID.String(), c.ttl).Err(); err != nil {
    c.log.Warn("Day cache write failed", "error", err)
  }
}

func (c *dayCache) Close() error {
  return c.rdb.Close()
}
