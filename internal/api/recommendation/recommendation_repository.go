package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/wanderseoul/daycourse/internal/types"
)

// InteractionRecorder stores model attempts for debugging and quality
// sampling. Nothing in the request path depends on it succeeding.
type InteractionRecorder interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error)
	GetInteraction(ctx context.Context, id uuid.UUID) (*types.LlmInteraction, bool)
}

// MemoryInteractionRecorder keeps recent interactions in an expiring
// in-memory store. There is no persistence requirement for this service, so
// a TTL cache replaces a database table.
type MemoryInteractionRecorder struct {
	store *cache.Cache
}

func NewMemoryInteractionRecorder(ttl time.Duration) *MemoryInteractionRecorder {
	return &MemoryInteractionRecorder{
		store: cache.New(ttl, ttl*2),
	}
}

func (r *MemoryInteractionRecorder) SaveInteraction(_ context.Context, interaction types.LlmInteraction) (uuid.UUID, error) {
	id := uuid.New()
	interaction.ID = id
	interaction.CreatedAt = time.Now()
	r.store.Set(id.String(), interaction, cache.DefaultExpiration)
	return id, nil
}

func (r *MemoryInteractionRecorder) GetInteraction(_ context.Context, id uuid.UUID) (*types.LlmInteraction, bool) {
	v, ok := r.store.Get(id.String())
	if !ok {
		return nil, false
	}
	interaction := v.(types.LlmInteraction)
	return &interaction, true
}

var _ InteractionRecorder = (*MemoryInteractionRecorder)(nil)
