package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"taskdesk/domain"
)

// Cache wraps a TaskRepository with Redis-backed caching of read operations.
// Writes go straight to the base repository and evict the affected entries,
// so readers observe every mutation after at most one backing fetch.
type Cache struct {
	base  TaskRepository
	redis *redis.Client
	ttl   time.Duration
	ns    string
}

// NewCache creates a caching repository wrapper using the provided Redis
// client and TTL. A nil or unreachable Redis client degrades to pass-through.
func NewCache(base TaskRepository, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
		ns:    "taskdesk:cache:" + uuid.NewString(),
	}
}

func (c *Cache) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	created, err := c.base.Add(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, created.ID)
	return created, nil
}

func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	if task, ok := c.loadTaskFromCache(ctx, id); ok {
		return task, nil
	}
	task, err := c.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task != nil {
		c.storeTask(ctx, *task)
	}
	return task, nil
}

func (c *Cache) GetAll(ctx context.Context) ([]domain.Task, error) {
	if tasks, ok := c.loadListFromCache(ctx); ok {
		return tasks, nil
	}
	tasks, err := c.base.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.storeList(ctx, tasks)
	return tasks, nil
}

func (c *Cache) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	updated, err := c.base.Update(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, updated.ID)
	return updated, nil
}

func (c *Cache) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := c.base.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		c.evict(ctx, id)
	}
	return deleted, nil
}

func (c *Cache) loadTaskFromCache(ctx context.Context, id int64) (*domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, c.taskCacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the base repository without failing.
			_ = c.redis.Del(ctx, c.taskCacheKey(id)).Err()
		}
		return nil, false
	}
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		_ = c.redis.Del(ctx, c.taskCacheKey(id)).Err()
		return nil, false
	}
	return &task, true
}

func (c *Cache) loadListFromCache(ctx context.Context) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, c.listCacheKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, c.listCacheKey()).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, c.listCacheKey()).Err()
		return nil, false
	}
	return tasks, true
}

func (c *Cache) storeTask(ctx context.Context, task domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, c.taskCacheKey(task.ID), data, c.ttl).Err()
}

func (c *Cache) storeList(ctx context.Context, tasks []domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, c.listCacheKey(), data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, id int64) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, c.taskCacheKey(id), c.listCacheKey()).Result()
}

func (c *Cache) taskCacheKey(id int64) string {
	return fmt.Sprintf("%s:task:%d", c.ns, id)
}

func (c *Cache) listCacheKey() string {
	return c.ns + ":list"
}
