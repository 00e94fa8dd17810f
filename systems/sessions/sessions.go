// Package sessions keeps track of active camera streams.
package sessions

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/providers"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Sessions registry implementation.
// Only metadata is kept, instrument sessions are owned by streams.
type registry struct {
	logger common.ILoggerProvider
	items  *cache.Cache
	seq    uint64
}

// Registered stream.
type entry struct {
	seq     uint64
	session *providers.StreamSession
}

// NewSessionsProvider constructs a new sessions registry.
func NewSessionsProvider(logger common.ILoggerProvider) providers.ISessionsProvider {
	return &registry{
		logger: logger,
		items:  cache.New(cache.NoExpiration, 0),
	}
}

// Open registers a new stream and returns its ID.
func (r *registry) Open(remote string) string {
	id := uuid.New().String()
	r.items.Set(id, &entry{
		seq: atomic.AddUint64(&r.seq, 1),
		session: &providers.StreamSession{
			ID:        id,
			Remote:    remote,
			StartedAt: time.Now().UTC(),
		},
	}, cache.NoExpiration)

	r.logger.Debug("Stream session opened", common.LogSessionToken, id, common.LogURLToken, remote)
	return id
}

// Close removes stream.
func (r *registry) Close(id string) {
	r.items.Delete(id)
	r.logger.Debug("Stream session closed", common.LogSessionToken, id)
}

// Count returns number of active streams.
func (r *registry) Count() int {
	return r.items.ItemCount()
}

// List returns active streams, oldest first.
func (r *registry) List() []*providers.StreamSession {
	items := r.items.Items()
	entries := make([]*entry, 0, len(items))
	for _, v := range items {
		entries = append(entries, v.Object.(*entry))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	result := make([]*providers.StreamSession, 0, len(entries))
	for _, v := range entries {
		result = append(result, v.session)
	}

	return result
}
