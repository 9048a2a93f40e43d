package theme

// Collection is an ordered set of themes keyed by name.
// It is not safe for concurrent mutation.
type Collection struct {
	names  []string
	themes map[string]Theme
}

// NewCollection returns a collection holding themes in the given order.
// A later theme with an existing name replaces the earlier one in place.
func NewCollection(themes ...Theme) *Collection {
	c := &Collection{themes: make(map[string]Theme, len(themes))}
	for _, t := range themes {
		c.Add(t)
	}
	return c
}

// Add stores t under t.Name, keeping the original position on replacement.
func (c *Collection) Add(t Theme) {
	if _, ok := c.themes[t.Name]; !ok {
		c.names = append(c.names, t.Name)
	}
	c.themes[t.Name] = t
}

// Get returns a copy of the named theme.
func (c *Collection) Get(name string) (Theme, bool) {
	t, ok := c.themes[name]
	return t, ok
}

// Names returns the theme names in insertion order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of themes.
func (c *Collection) Len() int {
	return len(c.names)
}

// All returns copies of the themes in insertion order.
func (c *Collection) All() []Theme {
	out := make([]Theme, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.themes[name])
	}
	return out
}
