package service

import (
	"context"

	"resolvewise/internal/models"
)

// Summary aggregates the tickets visible to the session for the dashboard
// header and the reports endpoint.
type Summary struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	HighOpen int `json:"highOpen"`
	Closed   int `json:"closed"`
}

func (s *Service) Summarize(ctx context.Context, sess *models.Session) (Summary, error) {
	tickets, err := s.VisibleTickets(ctx, sess)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	sum.Total = len(tickets)
	for _, t := range tickets {
		closed := t.Status == models.StatusClosed
		if closed {
			sum.Closed++
			continue
		}
		sum.Open++
		if t.Priority == models.PriorityHigh {
			sum.HighOpen++
		}
	}
	return sum, nil
}
