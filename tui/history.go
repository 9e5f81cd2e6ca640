// Package tui provides a Bubble Tea terminal UI over the engine's bridge.
package tui

// History remembers past commands for up/down recall at the prompt. Entries
// are kept oldest-first; navigation is an offset counted back from the
// newest entry, where zero means the player is typing fresh input.
type History struct {
	entries []string
	limit   int
	offset  int
}

// NewHistory creates a history that keeps at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a command. Repeating the newest entry is a no-op, and the
// oldest entries fall off once the limit is reached. Recording always drops
// the player back to fresh input.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		h.offset = 0
		return
	}
	h.entries = append(h.entries, cmd)
	if overflow := len(h.entries) - h.limit; overflow > 0 {
		h.entries = append(h.entries[:0], h.entries[overflow:]...)
	}
	h.offset = 0
}

// Prev steps one command back in time, holding at the oldest. Reports false
// only when there is nothing recorded at all.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.offset < len(h.entries) {
		h.offset++
	}
	return h.entries[len(h.entries)-h.offset], true
}

// Next steps one command forward. Stepping past the newest entry returns
// false and leaves the player on fresh input.
func (h *History) Next() (string, bool) {
	if h.offset <= 1 {
		h.offset = 0
		return "", false
	}
	h.offset--
	return h.entries[len(h.entries)-h.offset], true
}

// ResetCursor drops back to fresh input without touching the entries.
func (h *History) ResetCursor() {
	h.offset = 0
}
