// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// driver is the minimal set of backing-store primitives the protocol
// needs (spec §6). It exists so producer.go/consumer.go/lifecycle.go
// never import go-redis directly, and so tests can swap in a fake
// without a running server — though in practice this package's own
// tests use a real (embedded) Redis via miniredis rather than a fake,
// to exercise the actual wire commands.
type driver interface {
	// ping checks that the server is reachable.
	ping(ctx context.Context) error

	// setNX sets key to value only if it was previously absent; reports
	// whether the set took effect.
	setNX(ctx context.Context, key string, value int) (bool, error)

	// set unconditionally sets key to value.
	set(ctx context.Context, key, value string) error

	// getInt returns the integer stored at key, and whether it was present.
	getInt(ctx context.Context, key string) (value int, ok bool, err error)

	// exists reports whether key is present.
	exists(ctx context.Context, key string) (bool, error)

	// del deletes zero or more keys; absent keys are ignored.
	del(ctx context.Context, keys ...string) error

	// incr atomically increments the integer at key by 1.
	incr(ctx context.Context, key string) error

	// incrBy atomically increments the integer at key by n.
	incrBy(ctx context.Context, key string, n int64) error

	// lpush pushes value onto the head of the list at key, returning
	// the list's length after the push.
	lpush(ctx context.Context, key string, value []byte) (length int64, err error)

	// llen returns the length of the list at key (0 if absent).
	llen(ctx context.Context, key string) (int64, error)

	// ltrim keeps only the elements of the list at key within [start, stop].
	ltrim(ctx context.Context, key string, start, stop int64) error

	// brpop blocks indefinitely until one of keys has an element, pops
	// it from the tail, and returns which key fired along with the
	// popped value.
	brpop(ctx context.Context, keys ...string) (firedKey string, value []byte, err error)
}

// redisDriver implements driver against a real Redis-protocol server
// via go-redis. This is the only file in the package that imports
// go-redis — every other file talks to the driver interface.
type redisDriver struct {
	client *redis.Client
}

// newRedisDriver wraps an already-constructed go-redis client.
func newRedisDriver(client *redis.Client) *redisDriver {
	return &redisDriver{client: client}
}

func (d *redisDriver) ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *redisDriver) setNX(ctx context.Context, key string, value int) (bool, error) {
	return d.client.SetNX(ctx, key, value, 0).Result()
}

func (d *redisDriver) set(ctx context.Context, key, value string) error {
	return d.client.Set(ctx, key, value, 0).Err()
}

func (d *redisDriver) getInt(ctx context.Context, key string) (int, bool, error) {
	n, err := d.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (d *redisDriver) exists(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *redisDriver) del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return d.client.Del(ctx, keys...).Err()
}

func (d *redisDriver) incr(ctx context.Context, key string) error {
	return d.client.Incr(ctx, key).Err()
}

func (d *redisDriver) incrBy(ctx context.Context, key string, n int64) error {
	return d.client.IncrBy(ctx, key, n).Err()
}

func (d *redisDriver) lpush(ctx context.Context, key string, value []byte) (int64, error) {
	return d.client.LPush(ctx, key, value).Result()
}

func (d *redisDriver) llen(ctx context.Context, key string) (int64, error) {
	return d.client.LLen(ctx, key).Result()
}

func (d *redisDriver) ltrim(ctx context.Context, key string, start, stop int64) error {
	return d.client.LTrim(ctx, key, start, stop).Err()
}

func (d *redisDriver) brpop(ctx context.Context, keys ...string) (string, []byte, error) {
	// Timeout 0 means block indefinitely, matching spec §5's "no
	// client-side timers mandated". ctx is handed to go-redis as is; no
	// caller races this call against ctx.Done(), and a wait abandoned
	// because of ctx is not followed by any restoring push of a token
	// the server may have popped.
	res, err := d.client.BRPop(ctx, 0*time.Second, keys...).Result()
	if err != nil {
		return "", nil, err
	}
	return res[0], []byte(res[1]), nil
}
