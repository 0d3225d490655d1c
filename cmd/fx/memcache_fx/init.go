package memcache_fx

import (
	"go.uber.org/fx"
	mem "lumijob/pkg/memcache"
)

var Module = fx.Provide(provideIdempotencyStore)

func provideIdempotencyStore() mem.IdempotencyStore {
	return mem.NewIdempotencyKeys()
}
