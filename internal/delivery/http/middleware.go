package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"library-service/internal/apperrors"
	"library-service/internal/infrastructure"
)

// userIDKey is the echo context key the auth middleware stores the acting
// user id under.
const userIDKey = "user_id"

func currentUserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}

// AuthMiddleware resolves the bearer token of a request to a user identity.
// The Redis token cache is consulted first; on a miss or cache outage the
// signature is verified directly.
type AuthMiddleware struct {
	jwtService   *infrastructure.JWTService
	redisService *infrastructure.RedisService
}

func NewAuthMiddleware(jwtService *infrastructure.JWTService, redisService *infrastructure.RedisService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, redisService: redisService}
}

func (m *AuthMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			return apperrors.Unauthorized("You need a token to get access to this endpoint")
		}

		if cached, err := m.redisService.GetToken(c.Request().Context(), token); err == nil {
			if id, err := strconv.ParseUint(cached, 10, 64); err == nil {
				c.Set(userIDKey, uint(id))
				return next(c)
			}
		}

		userID, err := m.jwtService.VerifyToken(token)
		if err != nil {
			return err
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// RateLimiter applies a per-client token bucket keyed by remote IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perSecond, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

func (rl *RateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !rl.limiterFor(c.RealIP()).Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please slow down")
		}
		return next(c)
	}
}
