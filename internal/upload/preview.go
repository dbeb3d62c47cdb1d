package upload

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PreviewStore issues and revokes preview handles for file content.
type PreviewStore interface {
	// Create registers the content of f and returns an opaque handle.
	Create(f File) (string, error)

	// Revoke releases handle. Unknown handles are ignored.
	Revoke(handle string)
}

// MemoryPreviews is an in-process PreviewStore. Handles look like
// "blob:<uuid>" and resolve to a copy of the file bytes until revoked.
type MemoryPreviews struct {
	mu      sync.Mutex
	handles map[string][]byte
}

// NewMemoryPreviews creates an empty handle registry.
func NewMemoryPreviews() *MemoryPreviews {
	return &MemoryPreviews{handles: make(map[string][]byte)}
}

// Create registers f and returns its handle.
func (p *MemoryPreviews) Create(f File) (string, error) {
	if f.Name == "" {
		return "", fmt.Errorf("cannot create preview for unnamed file")
	}

	data := make([]byte, len(f.Data))
	copy(data, f.Data)

	handle := "blob:" + uuid.NewString()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.handles[handle] = data
	return handle, nil
}

// Revoke releases handle.
func (p *MemoryPreviews) Revoke(handle string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.handles, handle)
}

// Open returns the content behind handle.
func (p *MemoryPreviews) Open(handle string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.handles[handle]
	return data, ok
}

// Live returns the number of handles not yet revoked.
func (p *MemoryPreviews) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}
