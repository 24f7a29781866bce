package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var rdb *redis.Client

// RateLimitConfig defines rules for one endpoint class.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
	Algorithm   string // "fixed_window" | "sliding_window"
}

// OTP endpoints are brute-force targets, so they get the tightest limits.
// Code submission is sliding-window (smooth over boundary bursts),
// send/registration are fixed-window (cheap, coarse).
var rateLimitRules = map[string]RateLimitConfig{
	"auth_register": {
		MaxRequests: 3, // 3 registrations per hour per IP
		Window:      time.Hour,
		Algorithm:   "fixed_window",
	},
	"auth_send_otp": {
		MaxRequests: 5, // 5 code sends per 15 minutes
		Window:      15 * time.Minute,
		Algorithm:   "fixed_window",
	},
	"auth_verify": {
		MaxRequests: 5, // 5 code attempts per 10 minutes
		Window:      10 * time.Minute,
		Algorithm:   "sliding_window",
	},
	"auth_direct_login": {
		MaxRequests: 10,
		Window:      5 * time.Minute,
		Algorithm:   "sliding_window",
	},
}

// InitRateLimiter wires the shared redis client. Without it the limiter
// middleware passes everything through.
func InitRateLimiter(redisClient *redis.Client) {
	rdb = redisClient
}

// RateLimit returns a middleware enforcing the named rule per client IP.
func RateLimit(rule string) gin.HandlerFunc {
	config, ok := rateLimitRules[rule]
	return func(c *gin.Context) {
		if rdb == nil || !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:ip:%s", rule, c.ClientIP())

		var allowed bool
		var err error
		switch config.Algorithm {
		case "sliding_window":
			allowed, err = slidingWindowAllow(c, key, config)
		default:
			allowed, err = fixedWindowAllow(c, key, config)
		}
		if err != nil {
			// Fail open: a broken limiter must not take auth down with it.
			log.Warn().Err(err).Str("rule", rule).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			log.Info().Str("rule", rule).Str("ip", c.ClientIP()).Msg("rate limit exceeded")
			c.Header("Retry-After", fmt.Sprintf("%d", int(config.Window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func fixedWindowAllow(c *gin.Context, key string, config RateLimitConfig) (bool, error) {
	redisKey := "rate:fw:" + key

	luaScript := `
	local key = KEYS[1]
	local expiry = tonumber(ARGV[1])
	local limit = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		redis.call('SET', key, 1, 'EX', expiry)
		return 1
	end
	if tonumber(current) >= limit then
		return 0
	end
	redis.call('INCR', key)
	return 1
	`

	result, err := rdb.Eval(c.Request.Context(), luaScript, []string{redisKey},
		int(config.Window.Seconds()), config.MaxRequests).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func slidingWindowAllow(c *gin.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - config.Window.Nanoseconds()
	redisKey := "rate:sw:" + key

	luaScript := `
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local max_requests = tonumber(ARGV[3])
	local window_seconds = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, 0, window_start)
	if redis.call('ZCARD', key) >= max_requests then
		return 0
	end
	redis.call('ZADD', key, now, now)
	redis.call('EXPIRE', key, window_seconds + 60)
	return 1
	`

	result, err := rdb.Eval(c.Request.Context(), luaScript, []string{redisKey},
		now, windowStart, config.MaxRequests, int(config.Window.Seconds())).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
