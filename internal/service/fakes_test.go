package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/opsdesk/helpdesk-service/internal/domain"
	"github.com/opsdesk/helpdesk-service/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository preserving insertion order.
type fakeTicketRepo struct {
	tickets []domain.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{nextID: 1}
}

func (r *fakeTicketRepo) Insert(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = fmt.Sprintf("t-%d", r.nextID)
	r.nextID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	return append([]domain.Ticket{}, r.tickets...), nil
}

func (r *fakeTicketRepo) ListByCreator(_ context.Context, userID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, t := range r.tickets {
		if t.CreatedBy == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListByAssignee(_ context.Context, userID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, t := range r.tickets {
		if t.IsAssignedTo(userID) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) Patch(_ context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets[i] = patch.Apply(r.tickets[i])
			r.tickets[i].UpdatedAt = time.Now()
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) Remove(_ context.Context, id string) error {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  []domain.User
	nextID int
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	return &fakeUserRepo{users: users, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("u-%d", r.nextID)
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			if update.Name != nil {
				r.users[i].Name = *update.Name
			}
			if update.Email != nil {
				r.users[i].Email = *update.Email
			}
			if update.Role != nil {
				r.users[i].Role = *update.Role
			}
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User{}, r.users...), nil
}
