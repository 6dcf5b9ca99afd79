package gate

// Session holds page-session flags. Nothing is persisted.
type Session struct {
	flags map[string]bool
}

// UnlockedKey is the session flag set after a successful unlock.
const UnlockedKey = "unlocked"

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{flags: make(map[string]bool)}
}

// Set records a flag.
func (s *Session) Set(key string) {
	s.flags[key] = true
}

// Has reports whether a flag was recorded.
func (s *Session) Has(key string) bool {
	return s.flags[key]
}

// Clear drops all flags, as when the page session ends.
func (s *Session) Clear() {
	clear(s.flags)
}
