package fare

import "go.uber.org/atomic"

// Store holds the single active table behind an atomic pointer. Reloads build
// a complete replacement and swap it in one step; on build failure the prior
// table stays authoritative, so readers never observe a partial update.
type Store struct {
	active *atomic.Pointer[Table]
}

func NewStore() *Store {
	return &Store{active: atomic.NewPointer[Table](nil)}
}

// Active returns the current table, or nil when nothing has loaded yet.
func (s *Store) Active() *Table {
	return s.active.Load()
}

// Install swaps in an already-built table.
func (s *Store) Install(t *Table) {
	s.active.Store(t)
}

// Reload runs build and installs the result only on success.
func (s *Store) Reload(build func() (*Table, error)) (*Table, error) {
	t, err := build()
	if err != nil {
		return nil, err
	}
	s.active.Store(t)
	return t, nil
}
