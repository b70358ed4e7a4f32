// Package domain contains core business entities and interfaces.
package domain

import "time"

// Card represents a lead or task on the sales pipeline board.
// Fields are ordered to minimize memory padding.
type Card struct {
	Fields CardFields `json:"fields" yaml:"fields"` // Descriptive attributes (opaque to board logic)
	ID     string     `json:"id" yaml:"id"`         // Stable identifier
	Status string     `json:"status" yaml:"status"` // ID of the owning column
}

// CardFields holds the free-form descriptive attributes of a card.
// Board operations never inspect these fields.
type CardFields struct {
	LastModified time.Time `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	Name         string    `json:"name,omitempty" yaml:"name,omitempty"`
	Contact      string    `json:"contact,omitempty" yaml:"contact,omitempty"`
	Email        string    `json:"email,omitempty" yaml:"email,omitempty"`
	Phone        string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	NextAction   string    `json:"nextAction,omitempty" yaml:"nextAction,omitempty"`
	Notes        string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Placeholder values used when a card is created without details.
const (
	DefaultCardName       = "New Lead"
	DefaultCardNextAction = "Reach out"
)

// DefaultCardFields returns placeholder fields for a freshly added card.
func DefaultCardFields(now time.Time) CardFields {
	return CardFields{
		Name:         DefaultCardName,
		NextAction:   DefaultCardNextAction,
		LastModified: now,
	}
}

// Column is an ordered bucket of cards. Its ID doubles as the status
// value of every card it contains.
type Column struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Cards []Card `json:"cards" yaml:"cards"`
}

// clone returns a copy of the column whose card slice does not alias the original.
func (c Column) clone() Column {
	cards := make([]Card, len(c.Cards))
	copy(cards, c.Cards)
	c.Cards = cards
	return c
}

// DefaultColumns returns the sales pipeline stages used when none are configured.
func DefaultColumns() []Column {
	return []Column{
		{ID: "new", Title: "New Lead"},
		{ID: "contacted", Title: "Contacted"},
		{ID: "replied", Title: "Replied"},
		{ID: "meeting", Title: "Meeting Booked"},
		{ID: "won", Title: "Won"},
		{ID: "lost", Title: "Lost"},
	}
}
