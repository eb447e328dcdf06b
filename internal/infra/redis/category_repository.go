package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-client/internal/domain"
)

// CategoryKey holds the JSON-encoded category list.
const CategoryKey = "trivia:categories"

// CategoryLoader fetches the category list from the trivia API.
type CategoryLoader interface {
	LoadCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryRepository caches the category list in Redis and falls back to a loader on cache miss.
// A TTL of zero disables caching.
type CategoryRepository struct {
	client *redis.Client
	loader CategoryLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCategoryRepository(client *redis.Client, loader CategoryLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	if r.ttl > 0 {
		if categories, ok := r.cached(ctx); ok {
			return categories, nil
		}
	}

	result, err, _ := r.sf.Do(CategoryKey, func() (interface{}, error) {
		if r.ttl > 0 {
			// Re-check cache in case another goroutine filled it.
			if categories, ok := r.cached(ctx); ok {
				return categories, nil
			}
		}

		categories, err := r.loader.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}

		if ttl := r.ttlWithJitter(); ttl > 0 {
			if data, err := json.Marshal(categories); err == nil {
				_ = r.client.Set(ctx, CategoryKey, data, ttl).Err()
			}
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (r *CategoryRepository) cached(ctx context.Context) ([]domain.Category, bool) {
	data, err := r.client.Get(ctx, CategoryKey).Bytes()
	if err != nil {
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
