package search

import "github.com/poiesic/chatindex/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during fan-out
// searches, for example to surface skipped chats in a UI.
type Monitor interface {
	Start(query string)
	CollectionSearched(chatID string, hits int)
	CollectionSkipped(chatID string, err error)
	Finish(results map[string][]core.SearchHit)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) CollectionSearched(_ string, _ int)     {}
func (n *noopMonitor) CollectionSkipped(_ string, _ error)    {}
func (n *noopMonitor) Finish(_ map[string][]core.SearchHit)   {}
