package symbol

import "sync"

var _ Symbology = (*Cache)(nil)

// Cache memoizes patterns by text. Safe for concurrent use.
type Cache struct {
	sym Symbology

	mu       sync.Mutex
	patterns map[string]Pattern
}

// NewCache wraps sym; a nil sym uses the default symbology.
func NewCache(sym Symbology) *Cache {
	if sym == nil {
		sym = Simplified{}
	}
	return &Cache{sym: sym, patterns: map[string]Pattern{}}
}

// Symbology returns the wrapped encoder.
func (c *Cache) Symbology() Symbology { return c.sym }

func (c *Cache) Encode(text string) Pattern {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.patterns[text]; ok {
		return p
	}
	p := c.sym.Encode(text)
	c.patterns[text] = p
	return p
}

// Name implements Symbology.
func (c *Cache) Name() string { return c.sym.Name() }

// Len returns the number of cached texts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.patterns)
}
