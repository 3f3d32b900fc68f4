package load

import (
	"sort"
	"sync"
	"time"
)

// Repository is the load-lookup collaborator contract the chat pipeline
// consumes. Implementations must treat returned loads as read-only snapshots.
type Repository interface {
	List() []Load
	Get(id string) (*Load, bool)
	Search(query string) []SearchResult
}

// MemoryRepository serves loads from an in-memory corpus. It backs the pilot
// deployment, where load data is mock/static.
type MemoryRepository struct {
	mu    sync.RWMutex
	loads []Load
	byID  map[string]int
	now   func() time.Time
}

func NewMemoryRepository(loads []Load) *MemoryRepository {
	r := &MemoryRepository{
		loads: append([]Load(nil), loads...),
		byID:  make(map[string]int, len(loads)),
		now:   time.Now,
	}
	for i, l := range r.loads {
		r.byID[l.ID] = i
	}
	return r
}

func (r *MemoryRepository) List() []Load {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Load, len(r.loads))
	copy(out, r.loads)
	return out
}

func (r *MemoryRepository) Get(id string) (*Load, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	l := r.loads[i]
	return &l, true
}

// Search runs the classifier's scoring over the corpus and returns whatever
// matched, ordered by descending score. An exact ID hit comes back as a
// single result.
func (r *MemoryRepository) Search(query string) []SearchResult {
	routing := Classify(query, r.List(), r.now)
	return routing.Results
}

// Put inserts or replaces a load. Used by tests and the seed path.
func (r *MemoryRepository) Put(l Load) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.byID[l.ID]; ok {
		r.loads[i] = l
		return
	}
	r.byID[l.ID] = len(r.loads)
	r.loads = append(r.loads, l)
	sort.SliceStable(r.loads, func(i, j int) bool { return r.loads[i].ID < r.loads[j].ID })
	for i, ld := range r.loads {
		r.byID[ld.ID] = i
	}
}
