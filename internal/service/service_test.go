package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"resolvewise/internal/database"
	"resolvewise/internal/events"
	"resolvewise/internal/models"
	"resolvewise/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	st, err := store.New(db, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := st.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(st, events.NewBus(), zerolog.Nop())
}

func agentSession() *models.Session {
	return &models.Session{UserID: 1, Name: "Agent Smith", Email: "agent@resolvewise.com", Role: models.RoleAgent}
}

func customerSession() *models.Session {
	return &models.Session{UserID: 2, Name: "Jane Doe", Email: "customer@resolvewise.com", Role: models.RoleCustomer}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "customer@resolvewise.com", "password")
	if err != nil {
		t.Fatalf("expected success: %v", err)
	}
	if u.ID != 2 || u.Role != models.RoleCustomer {
		t.Fatalf("wrong user: %+v", u)
	}

	cases := []struct{ email, pw string }{
		{"customer@resolvewise.com", "wrong"},
		{"nobody@resolvewise.com", "password"},
		{"", ""},
	}
	for _, c := range cases {
		if _, err := svc.Authenticate(ctx, c.email, c.pw); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Authenticate(%q, %q): expected ErrInvalidCredentials, got %v", c.email, c.pw, err)
		}
	}
}

func TestVisibleTicketsRoleFiltering(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	all, err := svc.VisibleTickets(ctx, agentSession())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("agent should see all 3 seed tickets, got %d", len(all))
	}

	mine, err := svc.VisibleTickets(ctx, customerSession())
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("customer 2 should see 2 tickets, got %d", len(mine))
	}
	for _, tk := range mine {
		if tk.CustomerID != 2 {
			t.Fatalf("leaked ticket %d owned by %d", tk.ID, tk.CustomerID)
		}
	}
}

func TestGetTicket(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tk, err := svc.Ticket(ctx, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if tk == nil || tk.Title != "Website Login Issue" {
		t.Fatalf("wrong ticket: %+v", tk)
	}

	missing, err := svc.Ticket(ctx, 999999)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent id, got %+v", missing)
	}
}

func TestCreateTicket(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tk, err := svc.CreateTicket(ctx, customerSession(), "T1", models.PriorityHigh, "D1")
	if err != nil {
		t.Fatal(err)
	}
	if tk.Status != models.StatusOpen {
		t.Fatalf("status = %q, want Open", tk.Status)
	}
	if tk.CustomerID != 2 || tk.CustomerName != "Jane Doe" {
		t.Fatalf("owner = %d/%q", tk.CustomerID, tk.CustomerName)
	}
	if tk.Priority != models.PriorityHigh {
		t.Fatalf("priority = %q", tk.Priority)
	}

	all, err := svc.VisibleTickets(ctx, agentSession())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || all[0].ID != tk.ID {
		t.Fatalf("new ticket should be the first element, got %+v", all)
	}

	if _, err := svc.CreateTicket(ctx, customerSession(), "", models.PriorityLow, "D"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty title: expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateTicketDefaultsUnknownPriority(t *testing.T) {
	svc := newTestService(t)

	tk, err := svc.CreateTicket(context.Background(), customerSession(), "T", "Urgent!!", "D")
	if err != nil {
		t.Fatal(err)
	}
	if tk.Priority != models.PriorityMedium {
		t.Fatalf("unknown priority should default to Medium, got %q", tk.Priority)
	}
}

func TestUpdateProfileNameCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.UpdateProfileName(ctx, customerSession(), "Jane R"); err != nil {
		t.Fatal(err)
	}

	users, err := svc.Users(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range users {
		if u.ID == 2 && u.Name != "Jane R" {
			t.Fatalf("user not renamed: %+v", u)
		}
		if u.ID == 1 && u.Name != "Agent Smith" {
			t.Fatalf("other user renamed: %+v", u)
		}
	}

	all, err := svc.VisibleTickets(ctx, agentSession())
	if err != nil {
		t.Fatal(err)
	}
	for _, tk := range all {
		if tk.CustomerID == 2 && tk.CustomerName != "Jane R" {
			t.Fatalf("ticket %d not cascaded: %q", tk.ID, tk.CustomerName)
		}
		if tk.CustomerID != 2 && tk.CustomerName == "Jane R" {
			t.Fatalf("ticket %d wrongly cascaded", tk.ID)
		}
	}
}

func TestAddComment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ch, unsub := svc.Bus().Subscribe()
	defer unsub()

	before, _ := svc.Ticket(ctx, 1024)
	c, err := svc.AddComment(ctx, agentSession(), 1024, "ack")
	if err != nil {
		t.Fatal(err)
	}
	if c.Text != "ack" || c.UserID != 1 || c.ID == 0 {
		t.Fatalf("wrong comment: %+v", c)
	}

	after, _ := svc.Ticket(ctx, 1024)
	if len(after.Comments) != len(before.Comments)+1 {
		t.Fatalf("comment count %d -> %d, want +1", len(before.Comments), len(after.Comments))
	}
	last := after.Comments[len(after.Comments)-1]
	if last.ID != c.ID {
		t.Fatalf("appended comment not last: %+v", after.Comments)
	}

	// The event must already be delivered when AddComment returns.
	select {
	case ev := <-ch:
		if ev.TicketID != 1024 || ev.NewComment.ID != c.ID {
			t.Fatalf("wrong event: %+v", ev)
		}
	default:
		t.Fatal("no event published")
	}
}

func TestAddCommentTicketNotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddComment(context.Background(), agentSession(), 424242, "x"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	svc := newTestService(t)
	sum, err := svc.Summarize(context.Background(), agentSession())
	if err != nil {
		t.Fatal(err)
	}
	// Seed set: 1024 In Progress/High, 1023 Closed/Low, 1021 Open/Medium.
	if sum.Total != 3 || sum.Open != 2 || sum.Closed != 1 || sum.HighOpen != 1 {
		t.Fatalf("wrong summary: %+v", sum)
	}
}
