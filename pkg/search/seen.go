package search

// Seen tracks canonical anagram keys already emitted in combination mode.
// A single Seen is shared by every frame of one search and only grows.
type Seen struct {
	keys map[string]struct{}
}

// NewSeen creates an empty key set.
func NewSeen() *Seen {
	return &Seen{keys: make(map[string]struct{})}
}

// Has reports whether key was already registered.
func (s *Seen) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Add registers key.
func (s *Seen) Add(key string) {
	s.keys[key] = struct{}{}
}

// Len is the number of registered keys.
func (s *Seen) Len() int {
	return len(s.keys)
}
