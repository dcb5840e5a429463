package checklist

import (
	"fmt"
	"strings"
)

// Catalog is an immutable, ordered set of checklist items. Every mutating
// operation returns a new Catalog, so a catalog can be shared between runs.
type Catalog struct {
	items []Item
	index map[string]int
}

// NewCatalog validates items and builds a catalog in the given order.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if err := c.add(it); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(it Item) error {
	if strings.TrimSpace(it.Question) == "" {
		return ErrEmptyQuestion
	}
	if it.Weight <= 0 {
		return fmt.Errorf("%w: %q has weight %d", ErrInvalidWeight, it.Question, it.Weight)
	}
	if _, ok := c.index[it.Question]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateQuestion, it.Question)
	}
	c.index[it.Question] = len(c.items)
	c.items = append(c.items, it.clone())
	return nil
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.clone()
	}
	return out
}

// Lookup finds an item by its question text.
func (c *Catalog) Lookup(question string) (Item, bool) {
	i, ok := c.index[question]
	if !ok {
		return Item{}, false
	}
	return c.items[i].clone(), true
}

// ForScope returns the items tagged with at least one framework in scope,
// keeping catalog order. An empty scope selects every item.
func (c *Catalog) ForScope(scope []Framework) []Item {
	if len(scope) == 0 {
		return c.Items()
	}
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.InScope(scope) {
			out = append(out, it.clone())
		}
	}
	return out
}

// WithCustom returns a new catalog with extra appended after the existing items.
func (c *Catalog) WithCustom(extra ...Item) (*Catalog, error) {
	all := make([]Item, 0, len(c.items)+len(extra))
	all = append(all, c.items...)
	all = append(all, extra...)
	return NewCatalog(all)
}

// Frameworks lists every framework referenced by the catalog, in first-seen order.
func (c *Catalog) Frameworks() []Framework {
	seen := map[Framework]bool{}
	var out []Framework
	for _, it := range c.items {
		for _, t := range it.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// Knows reports whether framework f tags at least one item.
func (c *Catalog) Knows(f Framework) bool {
	for _, it := range c.items {
		if it.HasTag(f) {
			return true
		}
	}
	return false
}
