package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"taskdesk/domain"
)

// Redis stores tasks in a Redis keyspace. Every repository instance owns a
// unique namespace, so the id counter and the task collection live and die
// with the instance and two instances sharing one server never interfere.
//
// Ids come from INCR on a per-instance counter, which keeps them monotonic
// and never reused regardless of deletions. An index sorted set scored by id
// preserves ascending-id enumeration order.
type Redis struct {
	client *redis.Client
	ns     string
}

// NewRedis creates a repository bound to a fresh namespace on the given client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, ns: "taskdesk:" + uuid.NewString()}
}

func (r *Redis) taskKey(id int64) string {
	return fmt.Sprintf("%s:task:%d", r.ns, id)
}

func (r *Redis) counterKey() string { return r.ns + ":next_id" }

func (r *Redis) indexKey() string { return r.ns + ":ids" }

func (r *Redis) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	id, err := r.client.Incr(ctx, r.counterKey()).Result()
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = id

	payload, err := json.Marshal(task)
	if err != nil {
		return domain.Task{}, err
	}
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.taskKey(id), payload, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(id), Member: id})
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *Redis) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	data, err := r.client.Get(ctx, r.taskKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *Redis) GetAll(ctx context.Context) ([]domain.Task, error) {
	members, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt id index entry %q: %w", member, err)
		}
		data, err := r.client.Get(ctx, r.taskKey(id)).Bytes()
		if err == redis.Nil {
			// Index entry without a task key; skip rather than fail the listing.
			continue
		}
		if err != nil {
			return nil, err
		}
		var task domain.Task
		if err := json.Unmarshal(data, &task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *Redis) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	exists, err := r.client.Exists(ctx, r.taskKey(task.ID)).Result()
	if err != nil {
		return domain.Task{}, err
	}
	if exists == 0 {
		return domain.Task{}, domain.NotFoundError{ID: task.ID}
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return domain.Task{}, err
	}
	if err := r.client.Set(ctx, r.taskKey(task.ID), payload, 0).Err(); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *Redis) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, domain.ErrInvalidID
	}
	deleted, err := r.client.Del(ctx, r.taskKey(id)).Result()
	if err != nil {
		return false, err
	}
	if deleted == 0 {
		return false, nil
	}
	if err := r.client.ZRem(ctx, r.indexKey(), id).Err(); err != nil {
		return false, err
	}
	return true, nil
}
