package flags

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisFeatureFlag struct {
	RDB *redis.Client
}

func (f *RedisFeatureFlag) Enabled(ctx context.Context, feature, session string) bool {
	// global switch, feature = domain + capability
	globalGrainKey := "feature:portal:" + feature
	if ok, _ := f.RDB.Get(ctx, globalGrainKey).Bool(); ok {
		return true
	}

	// per-session rollout
	sessionGrainKey := fmt.Sprintf("feature:portal:%s:session:%s", feature, session)
	ok, _ := f.RDB.Get(ctx, sessionGrainKey).Bool()
	return ok
}
