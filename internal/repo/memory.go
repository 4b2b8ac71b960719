package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// MemoryStateRepo keeps the encoded payload in process memory. It round-trips
// through JSON exactly like the durable backends, so nothing the Store holds
// is ever shared with it.
type MemoryStateRepo struct {
	mu      sync.RWMutex
	payload []byte
}

var _ StateRepo = (*MemoryStateRepo)(nil)

// NewMemoryStateRepo returns an empty in-memory repo.
func NewMemoryStateRepo() *MemoryStateRepo {
	return &MemoryStateRepo{}
}

// NewMemoryStateRepoFromPayload seeds the repo with a raw payload, which may
// be malformed.
func NewMemoryStateRepoFromPayload(payload []byte) *MemoryStateRepo {
	return &MemoryStateRepo{payload: append([]byte(nil), payload...)}
}

func (r *MemoryStateRepo) Load(_ context.Context) (domain.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := decodeState(r.payload)
	if err != nil {
		return domain.State{}, fmt.Errorf("repo.MemoryStateRepo.Load: %w", err)
	}
	return s, nil
}

func (r *MemoryStateRepo) Save(_ context.Context, state domain.State) error {
	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("repo.MemoryStateRepo.Save: %w", err)
	}

	r.mu.Lock()
	r.payload = data
	r.mu.Unlock()
	return nil
}

// Payload returns a copy of the last saved payload.
func (r *MemoryStateRepo) Payload() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.payload...)
}
