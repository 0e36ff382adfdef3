package session

import (
	"sync"

	"github.com/opsgrade/posture-engine/internal/models"
)

// hub fans recomputed scorecards out to per-session watchers. Slow
// subscribers are skipped rather than blocking answer submission.
type hub struct {
	mu       sync.RWMutex
	watchers map[string]map[chan *models.Report]struct{}
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[chan *models.Report]struct{})}
}

func (h *hub) subscribe(sessionID string) (<-chan *models.Report, func()) {
	ch := make(chan *models.Report, 8)

	h.mu.Lock()
	if h.watchers[sessionID] == nil {
		h.watchers[sessionID] = make(map[chan *models.Report]struct{})
	}
	h.watchers[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.watchers[sessionID]; ok {
			if _, subscribed := set[ch]; subscribed {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.watchers, sessionID)
			}
		}
	}
	return ch, cancel
}

func (h *hub) publish(sessionID string, report *models.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.watchers[sessionID] {
		select {
		case ch <- report:
		default: // watcher is not keeping up, drop this update
		}
	}
}

func (h *hub) hasWatchers(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[sessionID]) > 0
}

func (h *hub) closeSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.watchers[sessionID] {
		close(ch)
	}
	delete(h.watchers, sessionID)
}
