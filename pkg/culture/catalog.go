package culture

import "sort"

// Movement is a selectable player movement from the seed tables.
type Movement struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// EvolutionItem is a purchasable trait. Player and rivals buy from the same catalog.
type EvolutionItem struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Category      string   `json:"category" yaml:"category"`
	Cost          int      `json:"cost" yaml:"cost"`
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites"`
}

// Catalog indexes the evolution items.
type Catalog struct {
	items []EvolutionItem
	byID  map[string]EvolutionItem
}

// NewCatalog builds a catalog, keeping items in cost-then-id order.
func NewCatalog(items []EvolutionItem) *Catalog {
	c := &Catalog{byID: make(map[string]EvolutionItem, len(items))}
	for _, it := range items {
		c.items = append(c.items, it)
		c.byID[it.ID] = it
	}
	sort.SliceStable(c.items, func(i, j int) bool {
		if c.items[i].Cost != c.items[j].Cost {
			return c.items[i].Cost < c.items[j].Cost
		}
		return c.items[i].ID < c.items[j].ID
	})
	return c
}

// Items returns all items ordered by cost then ID.
func (c *Catalog) Items() []EvolutionItem {
	out := make([]EvolutionItem, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up an item by ID.
func (c *Catalog) Item(id string) (EvolutionItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// PrerequisitesMet returns true if every prerequisite of item is owned.
func PrerequisitesMet(item EvolutionItem, owned map[string]bool) bool {
	for _, p := range item.Prerequisites {
		if !owned[p] {
			return false
		}
	}
	return true
}

// Affordable returns the items not yet owned whose prerequisites are met and
// whose cost fits within ip, cheapest first.
func (c *Catalog) Affordable(owned map[string]bool, ip int) []EvolutionItem {
	var out []EvolutionItem
	for _, it := range c.items {
		if owned[it.ID] || it.Cost > ip || !PrerequisitesMet(it, owned) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// traitRatio is the owned fraction of the catalog.
func (c *Catalog) traitRatio(owned map[string]bool) float64 {
	if c == nil || len(c.items) == 0 {
		return 0
	}
	n := 0
	for _, it := range c.items {
		if owned[it.ID] {
			n++
		}
	}
	return float64(n) / float64(len(c.items))
}
