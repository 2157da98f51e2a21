// Package queue carries background jobs from the API to the worker process.
// Jobs are JSON-encoded; the redis backend uses LPUSH/BRPOP list semantics so
// multiple workers can share one list.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edudesk/edudesk/internal/pkg/logger"
)

// Job types.
const (
	JobBackupPrune = "backup.prune"
)

// Job represents work for the background worker.
type Job struct {
	Type        string    `json:"type"`
	BackupID    string    `json:"backupId,omitempty"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	EnqueuedAt  time.Time `json:"enqueuedAt"`
}

// Queue is the abstraction over the in-memory and redis backends.
type Queue interface {
	Publish(ctx context.Context, job Job) error
	Consume(ctx context.Context) (<-chan Job, error)
}

// InMemory is a channel-backed queue for the demo path and tests.
type InMemory struct {
	ch chan Job
}

// NewInMemory creates a bounded in-memory queue.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan Job, size)}
}

// Publish enqueues a job. When no worker is draining the queue and the
// buffer is full the job is dropped with an error rather than blocking the
// publisher.
func (q *InMemory) Publish(ctx context.Context, job Job) error {
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.New("queue full, job dropped")
	}
}

// Consume returns a channel of jobs for workers.
func (q *InMemory) Consume(ctx context.Context) (<-chan Job, error) {
	out := make(chan Job)
	go func() {
		defer close(out)
		for {
			select {
			case job := <-q.ch:
				out <- job
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Redis implements a redis list-backed queue.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis builds a queue over an existing client.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = "edudesk:backup-jobs"
	}
	return &Redis{client: client, key: key}
}

// Publish enqueues a job.
func (q *Redis) Publish(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

// Consume streams jobs using BRPOP until the context is canceled.
func (q *Redis) Consume(ctx context.Context) (<-chan Job, error) {
	out := make(chan Job)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				logger.Warn().Err(err).Msg("queue pop failed, retrying")
				continue
			}
			if len(res) != 2 {
				continue
			}
			var job Job
			if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
				logger.Warn().Err(err).Msg("dropping undecodable job")
				continue
			}
			out <- job
		}
	}()
	return out, nil
}
