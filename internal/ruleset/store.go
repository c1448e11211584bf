package ruleset

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// LoadFunc produces a fresh ruleset snapshot.
type LoadFunc func() (*Ruleset, error)

// Store holds the current ruleset snapshot and swaps it atomically on reload.
//
// Readers call Current and keep the returned snapshot for as long as they
// need a consistent view.
type Store struct {
	load    LoadFunc
	logger  *zap.Logger
	reload  sync.Mutex
	current atomic.Pointer[Ruleset]
}

// NewStore performs the initial load.
//
// Precondition: load and logger must be non-nil.
// Postcondition: Returns a store whose Current is non-nil, or a non-nil error.
func NewStore(load LoadFunc, logger *zap.Logger) (*Store, error) {
	s := &Store{load: load, logger: logger}
	rs, err := load()
	if err != nil {
		return nil, fmt.Errorf("initial ruleset load: %w", err)
	}
	s.current.Store(rs)
	return s, nil
}

// Current returns the active snapshot.
func (s *Store) Current() *Ruleset {
	return s.current.Load()
}

// Reload loads a new snapshot and makes it current.
//
// Postcondition: On error the previous snapshot stays current.
func (s *Store) Reload() (*Ruleset, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	prev := s.current.Load()
	rs, err := s.load()
	if err != nil {
		s.logger.Warn("ruleset reload failed, keeping previous snapshot",
			zap.Stringer("id", prev.ID),
			zap.Error(err),
		)
		return prev, err
	}
	s.current.Store(rs)
	s.logger.Info("ruleset reloaded",
		zap.Stringer("previous", prev.ID),
		zap.Stringer("id", rs.ID),
	)
	return rs, nil
}
