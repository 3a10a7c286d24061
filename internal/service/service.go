// Package service holds the business logic: authentication, ticket
// visibility, and the mutations that keep the denormalized pieces of the
// data set consistent. All state lives in the store; the service itself is
// stateless apart from the id generator, and the current session is always
// an explicit argument rather than ambient state.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"resolvewise/internal/events"
	"resolvewise/internal/models"
	"resolvewise/internal/store"
	"resolvewise/internal/utils"
)

var (
	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service struct {
	store *store.Store
	bus   *events.Bus
	ids   idGen
	log   zerolog.Logger
}

func New(st *store.Store, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{store: st, bus: bus, log: log}
}

// Bus exposes the comment event bus so transports can subscribe.
func (s *Service) Bus() *events.Bus { return s.bus }

// Authenticate scans the users collection for a matching email and verifies
// the password against the stored hash. On success it returns a copy of the
// user for the caller to turn into a session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	var users []models.User
	if err := s.store.Get(ctx, store.CollUsers, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && utils.CheckPassword(users[i].PasswordHash, password) {
			u := users[i]
			s.log.Debug().Int64("user", u.ID).Msg("authenticated")
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Users returns the full users collection (hashes included; callers that
// render or serialize must strip them).
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.store.Get(ctx, store.CollUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// VisibleTickets returns the tickets the session may see, newest-created
// first (creation prepends, so storage order is already newest-first).
// Agents see everything; customers only their own.
func (s *Service) VisibleTickets(ctx context.Context, sess *models.Session) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.store.Get(ctx, store.CollTickets, &tickets); err != nil {
		return nil, err
	}
	if sess.IsAgent() {
		return tickets, nil
	}
	visible := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.CustomerID == sess.UserID {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

// Ticket returns the ticket with the given id, or nil when absent.
func (s *Service) Ticket(ctx context.Context, id int64) (*models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.store.Get(ctx, store.CollTickets, &tickets); err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			t := tickets[i]
			return &t, nil
		}
	}
	return nil, nil
}

// CanView reports whether the session is allowed to see the ticket.
func (s *Service) CanView(sess *models.Session, t *models.Ticket) bool {
	return sess.IsAgent() || t.CustomerID == sess.UserID
}

// CreateTicket opens a new ticket owned by the session user and prepends it
// to the collection.
func (s *Service) CreateTicket(ctx context.Context, sess *models.Session, title, priority, description string) (*models.Ticket, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, ErrInvalidInput
	}
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		priority = models.PriorityMedium
	}

	var tickets []models.Ticket
	if err := s.store.Get(ctx, store.CollTickets, &tickets); err != nil {
		return nil, err
	}

	t := models.Ticket{
		ID:           s.ids.next(),
		CustomerID:   sess.UserID,
		CustomerName: sess.Name,
		Title:        title,
		Description:  description,
		Status:       models.StatusOpen,
		Priority:     priority,
		Comments:     []models.Comment{},
		CreatedAt:    time.Now(),
	}
	tickets = append([]models.Ticket{t}, tickets...)
	if err := s.store.Put(ctx, store.CollTickets, tickets); err != nil {
		return nil, err
	}
	s.log.Info().Int64("ticket", t.ID).Int64("customer", t.CustomerID).Msg("ticket created")
	return &t, nil
}

// UpdateProfileName renames the session user and cascades the new name onto
// the denormalized CustomerName of every ticket they own. The caller is
// responsible for re-issuing the session with the new name.
func (s *Service) UpdateProfileName(ctx context.Context, sess *models.Session, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidInput
	}

	var users []models.User
	if err := s.store.Get(ctx, store.CollUsers, &users); err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == sess.UserID {
			users[i].Name = newName
		}
	}

	var tickets []models.Ticket
	if err := s.store.Get(ctx, store.CollTickets, &tickets); err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].CustomerID == sess.UserID {
			tickets[i].CustomerName = newName
		}
	}

	if err := s.store.Put(ctx, store.CollUsers, users); err != nil {
		return err
	}
	if err := s.store.Put(ctx, store.CollTickets, tickets); err != nil {
		return err
	}
	s.log.Info().Int64("user", sess.UserID).Msg("profile renamed")
	return nil
}

// AddComment appends a comment to the ticket and publishes a CommentEvent
// to current subscribers before returning.
func (s *Service) AddComment(ctx context.Context, sess *models.Session, ticketID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	var tickets []models.Ticket
	if err := s.store.Get(ctx, store.CollTickets, &tickets); err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID != ticketID {
			continue
		}
		c := models.Comment{
			ID:        s.ids.next(),
			UserID:    sess.UserID,
			Text:      text,
			CreatedAt: time.Now(),
		}
		tickets[i].Comments = append(tickets[i].Comments, c)
		if err := s.store.Put(ctx, store.CollTickets, tickets); err != nil {
			return nil, err
		}
		s.bus.Publish(events.CommentEvent{TicketID: ticketID, NewComment: c})
		s.log.Debug().Int64("ticket", ticketID).Int64("comment", c.ID).Msg("comment added")
		return &c, nil
	}
	return nil, ErrTicketNotFound
}
