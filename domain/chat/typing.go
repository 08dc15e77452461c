package chat

import "time"

// TypingState is keyed by the directed pair (From, To).
// It is overwritten in place and never deleted; last writer wins.
type TypingState struct {
	From      string
	To        string
	IsTyping  bool
	UpdatedAt time.Time
}

// ActiveAt reports whether From is typing to To at the given instant.
// A zero staleAfter disables expiry, so a flag left true stays true.
func (s TypingState) ActiveAt(now time.Time, staleAfter time.Duration) bool {
	if !s.IsTyping {
		return false
	}
	if staleAfter <= 0 {
		return true
	}
	return now.Sub(s.UpdatedAt) < staleAfter
}

// ExpiresAt is the instant a true flag turns stale, if expiry is enabled.
func (s TypingState) ExpiresAt(staleAfter time.Duration) (time.Time, bool) {
	if !s.IsTyping || staleAfter <= 0 {
		return time.Time{}, false
	}
	return s.UpdatedAt.Add(staleAfter), true
}

// TypingSnapshot is one emission of a typing feed.
// Found is false when the record has never been written.
type TypingSnapshot struct {
	State TypingState
	Found bool
	Err   error
}
