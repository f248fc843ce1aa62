package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	// KeyGetter overrides the client IP as the limiter key.
	KeyGetter func(r *http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "periods_limiter",
		CleanUpInterval: time.Minute,
	})
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{
		Prefix: "periods_limiter",
	})
	if err != nil {
		return nil, errors.Wrap(err, "create redis limiter store")
	}
	return store, nil
}

func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	period := cfg.Period
	if period <= 0 {
		period = time.Second
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(cfg.RequestsPerPeriod),
	})

	opts := []stdlib.Option{}
	if cfg.KeyGetter != nil {
		opts = append(opts, stdlib.WithKeyGetter(cfg.KeyGetter))
	}
	return stdlib.NewMiddleware(instance, opts...).Handler
}
