package ledger

import (
	"sort"
	"strings"
	"sync"
)

// DefaultCategories is the fixed starter set of expense categories.
var DefaultCategories = []string{
	"Nourriture",
	"Transport",
	"Salaire",
	"Logement",
	"Factures",
	"Divertissement",
	"Santé",
	"Shopping",
	"Autre",
}

// DefaultDomains is the fixed starter set of spending domains.
var DefaultDomains = []string{
	"Bureau",
	"Showroom",
	"Prestataire Externe",
	"Besoins",
	"Autre",
}

// Catalog holds a classification tag set: a fixed default list plus
// user-added custom entries. Names are unique case-insensitively; defaults
// cannot be removed.
type Catalog struct {
	mu       sync.RWMutex
	defaults []string
	custom   []string
}

func NewCategoryCatalog() *Catalog {
	return &Catalog{defaults: DefaultCategories}
}

func NewDomainCatalog() *Catalog {
	return &Catalog{defaults: DefaultDomains}
}

// All returns defaults followed by custom entries, custom sorted by name.
func (c *Catalog) All() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make([]string, 0, len(c.defaults)+len(c.custom))
	all = append(all, c.defaults...)
	custom := make([]string, len(c.custom))
	copy(custom, c.custom)
	sort.Strings(custom)
	return append(all, custom...)
}

// Add registers a custom entry. Empty names and case-insensitive duplicates
// of any existing entry are rejected.
func (c *Catalog) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.containsLocked(name) {
		return &ValidationError{Field: "name", Reason: "already exists"}
	}
	c.custom = append(c.custom, name)
	return nil
}

// Remove deletes a custom entry. Defaults are fixed; removing an unknown
// name is a no-op.
func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.defaults {
		if strings.EqualFold(d, name) {
			return &ValidationError{Field: "name", Reason: "default entries cannot be removed"}
		}
	}
	for i, v := range c.custom {
		if strings.EqualFold(v, name) {
			c.custom = append(c.custom[:i], c.custom[i+1:]...)
			return nil
		}
	}
	return nil
}

func (c *Catalog) containsLocked(name string) bool {
	for _, d := range c.defaults {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	for _, v := range c.custom {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
