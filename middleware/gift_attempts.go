package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"relationship-dashboard/utils"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// GiftAttempts caps password guesses per client IP using a Redis counter.
// With a nil client it lets every request through.
type GiftAttempts struct {
	redis       *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewGiftAttempts creates the limiter
func NewGiftAttempts(rdb *redis.Client, maxAttempts int, window time.Duration) *GiftAttempts {
	return &GiftAttempts{
		redis:       rdb,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func attemptsKey(ip string) string {
	return fmt.Sprintf("gift_attempts:%s", ip)
}

// count increments the counter and makes sure it expires. The TTL is also
// checked on later attempts so a counter whose EXPIRE was lost heals
// instead of locking the client out. A counter that cannot be given a TTL
// is removed.
func (ga *GiftAttempts) count(ctx context.Context, key string) (int64, error) {
	attempts, err := ga.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	needsTTL := attempts == 1
	if !needsTTL {
		ttl, err := ga.redis.TTL(ctx, key).Result()
		needsTTL = err == nil && ttl < 0
	}
	if !needsTTL {
		return attempts, nil
	}

	if err := ga.redis.Expire(ctx, key, ga.window).Err(); err != nil {
		delCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ga.redis.Del(delCtx, key)
		return 0, fmt.Errorf("set attempt window: %w", err)
	}
	return attempts, nil
}

// Protect counts each attempt and rejects the request once the window's
// budget is spent. A successful (200) verification clears the counter.
// Redis failures are logged and do not block the request.
func (ga *GiftAttempts) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ga == nil || ga.redis == nil || ga.maxAttempts <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r)
		key := attemptsKey(ip)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		attempts, err := ga.count(ctx, key)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("ip", ip).Msg("Failed to count gift attempt")
		} else if attempts > ga.maxAttempts {
			log.Warn().Str("ip", ip).Int64("attempts", attempts).Msg("Too many gift attempts")
			writeJSONError(w, http.StatusTooManyRequests, utils.ErrTooManyAttempts.Error())
			return
		}

		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := ga.redis.Del(ctx, key).Err(); err != nil {
				log.Error().Err(err).Str("ip", ip).Msg("Failed to reset gift attempts")
			}
		}
	})
}
