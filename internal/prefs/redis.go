package prefs

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amorizz/portfolio/internal/content"
)

const keyPrefix = "portfolio:lang:"

// Redis stores preferences in Redis. When the server cannot be reached at
// start-up every call is bypassed: Get reports no preference and Set does nothing.
type Redis struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects to redisURL (redis://[:password@]host:port/db).
// An empty URL or an unreachable server yields a bypassing store, never an error.
func NewRedis(redisURL string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if redisURL == "" {
		return &Redis{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[prefs] invalid REDIS_URL, language preferences will not persist: %v", err)
		return &Redis{ttl: ttl}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[prefs] Redis unavailable, bypassing preference store: %v", err)
		_ = client.Close()
		return &Redis{ttl: ttl}
	}

	return &Redis{client: client, ttl: ttl}
}

// Available reports whether preferences are actually persisted.
func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		log.Printf("[prefs] Redis error, preferences may be lost: %v", err)
	}
}

func (r *Redis) Get(ctx context.Context, visitorID string) (content.Lang, bool, error) {
	if !r.Available() || visitorID == "" {
		return "", false, nil
	}
	v, err := r.client.Get(ctx, keyPrefix+visitorID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		r.warnUnavailableOnce(err)
		return "", false, err
	}
	lang, err := content.ParseLang(v)
	if err != nil {
		return "", false, nil
	}
	return lang, true, nil
}

func (r *Redis) Set(ctx context.Context, visitorID string, lang content.Lang) error {
	if !lang.Valid() {
		return &content.UnsupportedLangError{Code: string(lang)}
	}
	if !r.Available() || visitorID == "" {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+visitorID, string(lang), r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Close releases the client.
func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}
