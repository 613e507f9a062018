package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/opsdesk/helpdesk-service/internal/authz"
	"github.com/opsdesk/helpdesk-service/internal/domain"
	"github.com/opsdesk/helpdesk-service/internal/events"
	"github.com/opsdesk/helpdesk-service/internal/repository"
	apperrors "github.com/opsdesk/helpdesk-service/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows around the authorization engine.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	directory  AssigneeDirectory
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Directory  AssigneeDirectory
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketListItem is a ticket plus optional assignee display info resolved
// for admin listings.
type TicketListItem struct {
	Ticket   domain.Ticket
	Assignee *AssigneeInfo
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		directory:  deps.Directory,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new ticket for the caller. Tickets are created by users
// and admins; agents only work tickets, they do not open them.
func (s *TicketService) Create(ctx context.Context, identity domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	switch identity.Role {
	case domain.RoleUser, domain.RoleAdmin:
	case domain.RoleAgent:
		return nil, apperrors.NewForbidden("agents cannot create tickets")
	default:
		return nil, apperrors.NewInvalidRole(string(identity.Role))
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		CreatedBy:   identity.ID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityLow
	}

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actor(identity),
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// List returns the tickets visible to the caller in stored order. Admin
// listings are enriched with assignee display info; enrichment degrades to
// the raw identifier and never fails the listing.
func (s *TicketService) List(ctx context.Context, identity domain.Identity) ([]TicketListItem, error) {
	var (
		tickets []domain.Ticket
		err     error
	)
	switch identity.Role {
	case domain.RoleAdmin:
		tickets, err = s.tickets.ListAll(ctx)
	case domain.RoleUser:
		tickets, err = s.tickets.ListByCreator(ctx, identity.ID)
	case domain.RoleAgent:
		tickets, err = s.tickets.ListByAssignee(ctx, identity.ID)
	default:
		return nil, apperrors.NewInvalidRole(string(identity.Role))
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	// The engine remains the authority on visibility even though the
	// queries above are already scoped.
	visible, err := authz.FilterForListing(tickets, identity)
	if err != nil {
		return nil, err
	}

	items := make([]TicketListItem, 0, len(visible))
	for _, ticket := range visible {
		item := TicketListItem{Ticket: ticket}
		if identity.Role == domain.RoleAdmin && ticket.AssignedTo != nil {
			if info, ok := s.directory.Resolve(ctx, *ticket.AssignedTo); ok {
				item.Assignee = &info
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Get fetches a single ticket. Absence is reported before visibility so
// callers can distinguish "doesn't exist" from "exists but hidden".
func (s *TicketService) Get(ctx context.Context, identity domain.Identity, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanView(ticket, identity) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// Update applies a field patch after the engine's mutation and field-level
// checks. Concurrent updates are last-write-wins.
func (s *TicketService) Update(ctx context.Context, identity domain.Identity, ticketID string, patch domain.TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutate(ticket, identity) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if err := authz.ValidatePatch(identity, patch); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.Patch(ctx, ticketID, patch)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: updated.ID,
		Actor:    actor(identity),
		Payload: events.TicketUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// Delete removes a ticket when the engine permits it.
func (s *TicketService) Delete(ctx context.Context, identity domain.Identity, ticketID string) error {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !authz.CanDelete(ticket, identity) {
		return apperrors.NewForbidden("deletion not permitted")
	}
	if err := s.tickets.Remove(ctx, ticketID); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		Actor:    actor(identity),
		Payload:  events.TicketDeletedPayload{CreatedBy: ticket.CreatedBy},
	})
	return nil
}

// Assign binds a ticket to an agent. Admin-only at the route level; the
// engine enforces the assignee-must-be-agent precondition and forces the
// status to in_progress, even from closed.
func (s *TicketService) Assign(ctx context.Context, identity domain.Identity, ticketID, agentID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": agentID})
		}
		return nil, apperrors.MapError(err)
	}

	assigned, err := authz.Assign(*ticket, assignee)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.Patch(ctx, ticketID, domain.TicketPatch{
		Status:     &assigned.Status,
		AssignedTo: assigned.AssignedTo,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: updated.ID,
		Actor:    actor(identity),
		Payload: events.TicketAssignedPayload{
			AssigneeID: assignee.ID,
			OldStatus:  oldStatus,
		},
	})
	return updated, nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actor(identity domain.Identity) events.Actor {
	return events.Actor{ID: identity.ID, Role: identity.Role}
}
