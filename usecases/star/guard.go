package star

import "sync"

// promotionGuard prevents two concurrent reaction events from both deciding to
// promote the same message within this process. It is advisory: the unique
// constraint on the promotion record is what makes the crosspost at-most-once
// across processes.
type promotionGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newPromotionGuard() *promotionGuard {
	return &promotionGuard{inFlight: make(map[string]struct{})}
}

// TryAcquire claims the message for promotion. Returns false when another
// event handler already holds it.
func (g *promotionGuard) TryAcquire(messageID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.inFlight[messageID]; held {
		return false
	}
	g.inFlight[messageID] = struct{}{}
	return true
}

// Release frees the message for future promotion attempts. Must be called
// whether or not the promotion succeeded.
func (g *promotionGuard) Release(messageID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, messageID)
}
