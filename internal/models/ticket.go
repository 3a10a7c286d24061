package models

import "time"

const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Ticket struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customerId"`
	CustomerName string    `json:"customerName"` // denormalized; kept in sync on rename
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`   // Open | In Progress | Closed
	Priority     string    `json:"priority"` // Low | Medium | High
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Comments are append-only; slice order is chronological.
type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
