package entity

import (
	"strings"
)

// QuoteCollection is an ordered list of quotes
type QuoteCollection struct {
	quotes []*Quote
}

// NewQuoteCollection creates a collection holding the given quotes
func NewQuoteCollection(quotes ...*Quote) *QuoteCollection {
	c := &QuoteCollection{}
	c.AddAll(quotes)
	return c
}

// Add appends q as is
func (c *QuoteCollection) Add(q *Quote) {
	c.quotes = append(c.quotes, q)
}

// AddAll appends every non-nil quote
func (c *QuoteCollection) AddAll(quotes []*Quote) {
	for _, q := range quotes {
		if q != nil {
			c.Add(q)
		}
	}
}

// Quotes returns a copy of the underlying slice
func (c *QuoteCollection) Quotes() []*Quote {
	out := make([]*Quote, len(c.quotes))
	copy(out, c.quotes)
	return out
}

// Len returns the number of quotes
func (c *QuoteCollection) Len() int { return len(c.quotes) }

// IsEmpty reports whether the collection holds no quotes
func (c *QuoteCollection) IsEmpty() bool { return len(c.quotes) == 0 }

// FilterByCurrency keeps quotes whose source or target is currency
func (c *QuoteCollection) FilterByCurrency(currency string) *QuoteCollection {
	filtered := &QuoteCollection{}
	for _, q := range c.quotes {
		if q.From == currency || q.To == currency {
			filtered.Add(q)
		}
	}
	return filtered
}

// FilterByDate keeps quotes for the given calendar date (YYYY-MM-DD)
func (c *QuoteCollection) FilterByDate(date string) *QuoteCollection {
	filtered := &QuoteCollection{}
	for _, q := range c.quotes {
		if q.Date.Format(DateLayout) == date {
			filtered.Add(q)
		}
	}
	return filtered
}

// First returns nil when the collection is empty
func (c *QuoteCollection) First() *Quote {
	if len(c.quotes) == 0 {
		return nil
	}
	return c.quotes[0]
}

// Last returns nil when the collection is empty
func (c *QuoteCollection) Last() *Quote {
	if len(c.quotes) == 0 {
		return nil
	}
	return c.quotes[len(c.quotes)-1]
}

// ToMaps renders every quote with Quote.ToMap, in insertion order
func (c *QuoteCollection) ToMaps() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(c.quotes))
	for _, q := range c.quotes {
		out = append(out, q.ToMap())
	}
	return out
}

// String renders one quote per line
func (c *QuoteCollection) String() string {
	lines := make([]string, 0, len(c.quotes))
	for _, q := range c.quotes {
		lines = append(lines, q.String())
	}
	return strings.Join(lines, "\n")
}
