package genjobredis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Abraxas-365/packwright/pkg/genjob"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements genjob.RecordStore backed by Redis. Records are
// JSON blobs keyed by job id; a list holds ready ids, a sorted set holds
// scheduled retries keyed by their redelivery time, and a set tracks all
// ids for census scans.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed record store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

const (
	readyKey     = "genjob:ready"
	scheduledKey = "genjob:scheduled"
	idsKey       = "genjob:ids"
)

func jobKey(id string) string { return fmt.Sprintf("genjob:job:%s", id) }

// Create persists a new record and pushes pending jobs onto the ready list.
func (s *RedisStore) Create(ctx context.Context, job genjob.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return storeErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", job.ID)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, jobKey(job.ID), data, 0)
	pipe.SAdd(ctx, idsKey, job.ID)
	if job.Status == genjob.StatusPending {
		pipe.LPush(ctx, readyKey, job.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErrors.NewWithCause(ErrWrite, err).WithDetail("job_id", job.ID)
	}
	return nil
}

// Get retrieves a record by id.
func (s *RedisStore) Get(ctx context.Context, id string) (genjob.Job, error) {
	data, err := s.rdb.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return genjob.Job{}, genjob.NewError(genjob.ErrJobNotFound).WithDetail("job_id", id)
		}
		return genjob.Job{}, storeErrors.NewWithCause(ErrRead, err).WithDetail("job_id", id)
	}

	var job genjob.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return genjob.Job{}, storeErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", id)
	}
	return job, nil
}

// Claim blocks for the next ready id and transitions its record to
// processing with a checked transaction. An id whose record is no longer
// pending lost a redelivery race and is skipped.
func (s *RedisStore) Claim(ctx context.Context, timeout time.Duration) (*genjob.Job, error) {
	result, err := s.rdb.BRPop(ctx, timeout, readyKey).Result()
	if err != nil {
		if err == redis.Nil || ctx.Err() != nil {
			return nil, nil
		}
		return nil, storeErrors.NewWithCause(ErrRead, err)
	}

	id := result[1]

	var claimed *genjob.Job
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, jobKey(id)).Bytes()
		if err != nil {
			if err == redis.Nil {
				return nil // record already swept, drop the id
			}
			return err
		}

		var job genjob.Job
		if err := json.Unmarshal(data, &job); err != nil {
			return storeErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", id)
		}
		if job.Status != genjob.StatusPending {
			return nil // stale redelivery, abandon
		}

		now := time.Now().UTC()
		job.Status = genjob.StatusProcessing
		job.StartedAt = &now
		job.UpdatedAt = now
		job.Version++

		next, err := json.Marshal(job)
		if err != nil {
			return storeErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", id)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, jobKey(id), next, 0)
			return nil
		})
		if err != nil {
			return err
		}

		claimed = &job
		return nil
	}, jobKey(id))

	if err != nil {
		if err == redis.TxFailedErr {
			return nil, nil // another writer touched the record, abandon
		}
		return nil, storeErrors.NewWithCause(ErrWrite, err).WithDetail("job_id", id)
	}
	return claimed, nil
}

// Update persists a transition, rejecting writers holding a stale version.
func (s *RedisStore) Update(ctx context.Context, job genjob.Job) (genjob.Job, error) {
	return s.checkedWrite(ctx, job, func(pipe redis.Pipeliner, data []byte) {
		pipe.Set(ctx, jobKey(job.ID), data, 0)
	})
}

// Requeue returns a job to pending and schedules its redelivery.
func (s *RedisStore) Requeue(ctx context.Context, job genjob.Job, delay time.Duration) (genjob.Job, error) {
	score := float64(time.Now().UTC().Add(delay).Unix())
	return s.checkedWrite(ctx, job, func(pipe redis.Pipeliner, data []byte) {
		pipe.Set(ctx, jobKey(job.ID), data, 0)
		pipe.ZAdd(ctx, scheduledKey, redis.Z{Score: score, Member: job.ID})
	})
}

// checkedWrite performs an optimistic transaction: the stored version must
// match the caller's copy or the write is rejected as stale.
func (s *RedisStore) checkedWrite(
	ctx context.Context,
	job genjob.Job,
	apply func(pipe redis.Pipeliner, data []byte),
) (genjob.Job, error) {
	var written genjob.Job

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, jobKey(job.ID)).Bytes()
		if err != nil {
			if err == redis.Nil {
				return genjob.NewError(genjob.ErrJobNotFound).WithDetail("job_id", job.ID)
			}
			return err
		}

		var current genjob.Job
		if err := json.Unmarshal(data, &current); err != nil {
			return storeErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", job.ID)
		}
		if current.Version != job.Version {
			return genjob.NewError(genjob.ErrStaleVersion).
				WithDetail("job_id", job.ID).
				WithDetail("expected_version", job.Version).
				WithDetail("actual_version", current.Version)
		}

		job.Version++
		job.UpdatedAt = time.Now().UTC()

		next, err := json.Marshal(job)
		if err != nil {
			return storeErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", job.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			apply(pipe, next)
			return nil
		})
		if err != nil {
			return err
		}

		written = job
		return nil
	}, jobKey(job.ID))

	if err != nil {
		if err == redis.TxFailedErr {
			return genjob.Job{}, genjob.NewError(genjob.ErrStaleVersion).
				WithDetail("job_id", job.ID)
		}
		return genjob.Job{}, err
	}
	return written, nil
}

// promoteScript atomically moves due ids from the scheduled set to the
// ready list.
var promoteScript = redis.NewScript(`
local scheduled_key = KEYS[1]
local ready_key = KEYS[2]
local now = tonumber(ARGV[1])
local ids = redis.call('ZRANGEBYSCORE', scheduled_key, '-inf', now)
if #ids > 0 then
    for _, id in ipairs(ids) do
        redis.call('LPUSH', ready_key, id)
    end
    redis.call('ZREMRANGEBYSCORE', scheduled_key, '-inf', now)
end
return #ids
`)

// PromoteDue moves scheduled jobs whose redelivery time has passed onto the
// ready list.
func (s *RedisStore) PromoteDue(ctx context.Context) (int, error) {
	now := strconv.FormatInt(time.Now().UTC().Unix(), 10)

	n, err := promoteScript.Run(ctx, s.rdb, []string{scheduledKey, readyKey}, now).Int()
	if err != nil && err != redis.Nil {
		return 0, storeErrors.NewWithCause(ErrWrite, err)
	}
	return n, nil
}

// All returns a snapshot of every record.
func (s *RedisStore) All(ctx context.Context) ([]genjob.Job, error) {
	ids, err := s.rdb.SMembers(ctx, idsKey).Result()
	if err != nil {
		return nil, storeErrors.NewWithCause(ErrRead, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = jobKey(id)
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeErrors.NewWithCause(ErrRead, err)
	}

	jobs := make([]genjob.Job, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // id whose record was deleted mid-scan
		}
		var job genjob.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			return nil, storeErrors.NewWithCause(ErrUnmarshal, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Delete removes a record and any queue state referring to it.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, jobKey(id))
	pipe.SRem(ctx, idsKey, id)
	pipe.ZRem(ctx, scheduledKey, id)
	pipe.LRem(ctx, readyKey, 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErrors.NewWithCause(ErrWrite, err).WithDetail("job_id", id)
	}
	return nil
}

var _ genjob.RecordStore = (*RedisStore)(nil)
