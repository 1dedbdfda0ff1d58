package driven

import "github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"

// ResponseCache stores shaped replies to first-turn questions.
type ResponseCache interface {
	// Get returns a cached reply for the key.
	Get(key string) (*domain.ChatReply, bool)

	// Set stores a reply using the default expiry.
	Set(key string, reply *domain.ChatReply)

	// Flush removes every entry.
	Flush()

	// ItemCount returns the number of cached replies.
	ItemCount() int
}
