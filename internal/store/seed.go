package store

import (
	"context"
	"time"

	"resolvewise/internal/models"
	"resolvewise/internal/utils"
)

// Seed credentials for both demo accounts.
const seedPassword = "password"

// EnsureSeeded populates the users and tickets collections with the demo
// data set when they are absent. Each collection is seeded independently, so
// wiping only tickets brings back the demo tickets without touching users.
// Calling it against an already-seeded store is a no-op.
func (s *Store) EnsureSeeded(ctx context.Context) error {
	if ok, err := s.has(ctx, CollUsers); err != nil {
		return err
	} else if !ok {
		users, err := seedUsers()
		if err != nil {
			return err
		}
		if err := s.Put(ctx, CollUsers, users); err != nil {
			return err
		}
		s.log.Info().Int("users", len(users)).Msg("seeded users collection")
	}

	if ok, err := s.has(ctx, CollTickets); err != nil {
		return err
	} else if !ok {
		tickets := seedTickets(time.Now())
		if err := s.Put(ctx, CollTickets, tickets); err != nil {
			return err
		}
		s.log.Info().Int("tickets", len(tickets)).Msg("seeded tickets collection")
	}
	return nil
}

func seedUsers() ([]models.User, error) {
	hash, err := utils.HashPassword(seedPassword)
	if err != nil {
		return nil, err
	}
	return []models.User{
		{ID: 1, Name: "Agent Smith", Email: "agent@resolvewise.com", PasswordHash: hash, Role: models.RoleAgent},
		{ID: 2, Name: "Jane Doe", Email: "customer@resolvewise.com", PasswordHash: hash, Role: models.RoleCustomer},
	}, nil
}

func seedTickets(now time.Time) []models.Ticket {
	return []models.Ticket{
		{
			ID:           1024,
			CustomerID:   2,
			CustomerName: "Jane Doe",
			Title:        "Website Login Issue",
			Description:  "I can't log in! It just reloads the page.",
			Status:       models.StatusInProgress,
			Priority:     models.PriorityHigh,
			CreatedAt:    now.Add(-2 * time.Hour),
			Comments: []models.Comment{
				{ID: 1, UserID: 1, Text: "Hi Jane, I'm looking into this for you.", CreatedAt: now.Add(-time.Hour)},
			},
		},
		{
			ID:           1023,
			CustomerID:   3,
			CustomerName: "John Appleseed",
			Title:        "Billing Inquiry",
			Description:  "There is an extra charge on my latest invoice.",
			Status:       models.StatusClosed,
			Priority:     models.PriorityLow,
			CreatedAt:    now.Add(-48 * time.Hour),
			Comments:     []models.Comment{},
		},
		{
			ID:           1021,
			CustomerID:   2,
			CustomerName: "Jane Doe",
			Title:        "My new order hasn't shipped",
			Description:  "It has been three days, and my order #ABC-123 is still 'processing'.",
			Status:       models.StatusOpen,
			Priority:     models.PriorityMedium,
			CreatedAt:    now.Add(-72 * time.Hour),
			Comments:     []models.Comment{},
		},
	}
}
