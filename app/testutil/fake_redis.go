// Author: SGS Locations (2026). Apache 2.0 License

package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FakeRedis is a simple in-memory stand-in for the redis client, covering
// the operations the token store uses.
type FakeRedis struct {
	sync.Mutex
	values      map[string]string
	expirations map[string]time.Time
}

func NewFakeRedis() *FakeRedis {
	return &FakeRedis{
		values:      make(map[string]string),
		expirations: make(map[string]time.Time),
	}
}

func (f *FakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *FakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.Lock()
	defer f.Unlock()
	v, ok := f.values[key]
	exp, expSet := f.expirations[key]
	if expSet && exp.Before(time.Now()) {
		v = ""
		ok = false
		delete(f.values, key)
		delete(f.expirations, key)
	}
	cmd := redis.NewStringCmd(ctx)
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *FakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.Lock()
	defer f.Unlock()
	f.values[key] = fmt.Sprintf("%v", value)
	if expiration > 0 {
		f.expirations[key] = time.Now().Add(expiration)
	} else {
		delete(f.expirations, key)
	}
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *FakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.Lock()
	defer f.Unlock()
	for _, key := range keys {
		delete(f.values, key)
		delete(f.expirations, key)
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

// Expire backdates a key's expiration so tests can simulate a timed-out
// pending authorization.
func (f *FakeRedis) Expire(key string) {
	f.Lock()
	defer f.Unlock()
	f.expirations[key] = time.Now().Add(-time.Second)
}
