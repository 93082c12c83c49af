package process

import (
	"regexp"
	"sync"
)

// ActivityLog accumulates human-readable progress and error messages.
// Messages sharing an account+lineno prefix are coalesced so a noisy line
// does not flood the log.
type ActivityLog struct {
	mu      sync.Mutex
	entries []string
}

var linePrefix = regexp.MustCompile(`^[^:]+: lineno \d+:`)

// Log appends a message, replacing the previous entry if both refer to the
// same account and line.
func (l *ActivityLog) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := len(l.entries); n > 0 {
		prev, cur := linePrefix.FindString(l.entries[n-1]), linePrefix.FindString(msg)
		if cur != "" && cur == prev {
			l.entries[n-1] = msg
			return
		}
	}
	l.entries = append(l.entries, msg)
}

// Entries returns a copy of the accumulated messages.
func (l *ActivityLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}
