package middleware

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-redis/redis/v8"

    "arbt-storefront-api/models"
)

type RateLimiter struct {
    client *redis.Client
}

type RateLimitConfig struct {
    Requests int
    Window   time.Duration
    Message  string
}

var defaultConfigs = map[string]RateLimitConfig{
    "/api/auth/login": {
        Requests: 5,
        Window:   time.Minute * 15,
        Message:  "Too many login attempts. Please try again in 15 minutes.",
    },
    "/api/auth/signup": {
        Requests: 10,
        Window:   time.Minute * 15,
        Message:  "Too many signup attempts. Please try again later.",
    },
    "/api/payment-process": {
        Requests: 5,
        Window:   time.Minute * 10,
        Message:  "Too many payment submissions. Please wait before retrying.",
    },
    "/api/reviews": {
        Requests: 10,
        Window:   time.Minute * 10,
        Message:  "Too many reviews submitted. Please slow down.",
    },
    "default": {
        Requests: 120,
        Window:   time.Minute,
        Message:  "Rate limit exceeded. Please slow down your requests.",
    },
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
    return &RateLimiter{client: client}
}

func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            config := rl.getConfigForEndpoint(r.URL.Path)
            key := rl.getRateLimitKey(r)

            allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
            if err != nil {
                // Rate limiting must never take the storefront down with it.
                log.Printf("Rate limit check error: %v", err)
                next.ServeHTTP(w, r)
                return
            }

            w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
            w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
            w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

            if !allowed {
                log.Printf("Rate limit exceeded for key: %s, endpoint: %s", key, r.URL.Path)

                w.Header().Set("Content-Type", "application/json")
                w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
                w.WriteHeader(http.StatusTooManyRequests)

                json.NewEncoder(w).Encode(models.APIResponse{
                    Status:  "error",
                    Message: config.Message,
                })
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}

func (rl *RateLimiter) getConfigForEndpoint(path string) RateLimitConfig {
    if idx := strings.Index(path, "?"); idx != -1 {
        path = path[:idx]
    }

    if config, exists := defaultConfigs[path]; exists {
        return config
    }

    if strings.HasPrefix(path, "/api/admin/") {
        return RateLimitConfig{
            Requests: 60,
            Window:   time.Minute,
            Message:  "Too many admin requests. Please slow down.",
        }
    }

    return defaultConfigs["default"]
}

func (rl *RateLimiter) getRateLimitKey(r *http.Request) string {
    ip := getClientIP(r)
    return fmt.Sprintf("rate_limit:%s:%s", ip, r.URL.Path)
}

func getClientIP(r *http.Request) string {
    if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
        ips := strings.Split(ip, ",")
        return strings.TrimSpace(ips[0])
    }

    if ip := r.Header.Get("X-Real-IP"); ip != "" {
        return ip
    }

    ip := r.RemoteAddr
    if idx := strings.LastIndex(ip, ":"); idx != -1 {
        ip = ip[:idx]
    }
    return ip
}

func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (allowed bool, remaining int, resetTime time.Time, err error) {
    now := time.Now()
    windowStart := now.Truncate(config.Window)
    windowEnd := windowStart.Add(config.Window)

    // Lua keeps the clean-count-add sequence atomic.
    luaScript := `
        local key = KEYS[1]
        local window_start = ARGV[1]
        local limit = tonumber(ARGV[2])
        local current_time = ARGV[3]

        redis.call('ZREMRANGEBYSCORE', key, 0, window_start - 1)

        local current_count = redis.call('ZCARD', key)

        if current_count < limit then
            redis.call('ZADD', key, current_time, current_time)
            redis.call('EXPIRE', key, 3600)
            return {1, limit - current_count - 1}
        else
            return {0, 0}
        end
    `

    result, err := rl.client.Eval(ctx, luaScript, []string{key},
        windowStart.UnixNano(), config.Requests, now.UnixNano()).Result()
    if err != nil {
        return false, 0, time.Time{}, err
    }

    resultSlice, ok := result.([]interface{})
    if !ok || len(resultSlice) != 2 {
        return false, 0, time.Time{}, fmt.Errorf("unexpected redis result format")
    }

    allowedInt, ok1 := resultSlice[0].(int64)
    remainingInt, ok2 := resultSlice[1].(int64)
    if !ok1 || !ok2 {
        return false, 0, time.Time{}, fmt.Errorf("failed to parse redis result")
    }

    return allowedInt == 1, int(remainingInt), windowEnd, nil
}

// SecurityHeadersMiddleware adds the standard hardening headers.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("X-Content-Type-Options", "nosniff")
        w.Header().Set("X-Frame-Options", "DENY")
        w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

        if strings.HasPrefix(r.URL.Path, "/api/") {
            w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
        }

        next.ServeHTTP(w, r)
    })
}
