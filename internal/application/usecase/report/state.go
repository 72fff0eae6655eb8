package report

import (
	"strings"
	"sync"
)

type Dir int

const (
	DirSame Dir = 0
	DirUp   Dir = +1
	DirDown Dir = -1
)

// State remembers the last arbitrage profit per symbol between rounds.
type State struct {
	mu   sync.Mutex
	last map[string]float64
}

func NewState() *State {
	return &State{last: make(map[string]float64)}
}

// Apply records profit for symbol and returns its direction versus the
// previous round. The first observation is DirSame.
func (s *State) Apply(symbol string, profit float64) Dir {
	sym := strings.ToUpper(strings.TrimSpace(symbol))

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.last[sym]
	s.last[sym] = profit
	switch {
	case !ok || profit == prev:
		return DirSame
	case profit > prev:
		return DirUp
	default:
		return DirDown
	}
}

func (d Dir) Arrow() string {
	switch d {
	case DirUp:
		return "↑"
	case DirDown:
		return "↓"
	default:
		return "="
	}
}
