package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies a rendered statement text: the fingerprint of its segments
// and the number of external values numbered ahead of its own placeholders.
type Key struct {
	Fingerprint uint64
	Offset      int
}

// Entry is a cached rendering. Segments are kept so a fingerprint collision
// can be told apart from a real hit.
type Entry struct {
	Segments []string
	Text     string
}

// TextCache is a bounded LRU of rendered statement texts. It is safe for
// concurrent use.
type TextCache struct {
	cache *lru.Cache[Key, *Entry]
}

func NewTextCache(size int) (*TextCache, error) {
	c, err := lru.New[Key, *Entry](size)
	if err != nil {
		return nil, fmt.Errorf("text cache: %w", err)
	}
	return &TextCache{cache: c}, nil
}

// Get returns the cached text for key if it was rendered from segments.
func (t *TextCache) Get(key Key, segments []string) (string, bool) {
	e, ok := t.cache.Get(key)
	if !ok || !sameSegments(e.Segments, segments) {
		return "", false
	}
	return e.Text, true
}

// Set stores text for key. The segments slice is copied.
func (t *TextCache) Set(key Key, segments []string, text string) {
	segs := make([]string, len(segments))
	copy(segs, segments)
	t.cache.Add(key, &Entry{Segments: segs, Text: text})
}

func (t *TextCache) Len() int { return t.cache.Len() }

func (t *TextCache) Purge() { t.cache.Purge() }

func sameSegments(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
