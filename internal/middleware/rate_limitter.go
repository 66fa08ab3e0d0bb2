package middleware

import (
	"FaceAttendance/pkg/response"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "Too many requests")
)

const minIdleTTL = time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than it takes them to refill are indistinguishable from new ones, so they
// are dropped on the next sweep.
type rateLimiter struct {
	bucket    map[string]*visitor
	rate      rate.Limit
	burstSize int
	mutex     *sync.RWMutex

	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	idleTTL := minIdleTTL
	if reqRate > 0 {
		if refill := time.Duration(float64(burstSize) / float64(reqRate) * float64(time.Second)); refill > idleTTL {
			idleTTL = refill
		}
	}

	return &rateLimiter{
		bucket:    make(map[string]*visitor),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.RWMutex{},
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		r.sweep(now)
	}

	v, exist := r.bucket[ip]
	if !exist {
		v = &visitor{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.bucket[ip] = v
	}
	v.lastSeen = now

	return v.limiter
}

func (r *rateLimiter) sweep(now time.Time) {
	for ip, v := range r.bucket {
		if now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.bucket, ip)
		}
	}
	r.lastSweep = now
}

func (r *rateLimiter) size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.bucket)
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.Warnf("too many requests for IP %s", clientIP)
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": ErrTooManyRequests.Error(),
		})
	}

	return ctx.Next()
}
