package dto

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/opsdesk/helpdesk-service/internal/domain"
)

// trimmedLength bounds the rune count of a string after surrounding
// whitespace is stripped. The stored value is trimmed, so padding must not
// be allowed to satisfy a minimum.
func trimmedLength(min, max int) validation.RuleFunc {
	return func(value interface{}) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return nil
		}
		if n := utf8.RuneCountInString(strings.TrimSpace(s)); n < min || n > max {
			return fmt.Errorf("the length must be between %d and %d", min, max)
		}
		return nil
	}
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority,omitempty"`
}

// Validate checks the ticket creation payload shape.
func (r CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(trimmedLength(3, 200))),
		validation.Field(&r.Description, validation.Required, validation.By(trimmedLength(10, 5000))),
		validation.Field(&r.Priority, validation.In(
			domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh)),
	)
}

// UpdateTicketRequest is a partial ticket update payload. The assigned_to
// and created_by fields are accepted here so the engine can reject them
// with a 403 rather than silently dropping them; neither is patchable by
// any role.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *domain.TicketStatus   `json:"status"`
	Priority    *domain.TicketPriority `json:"priority"`
	AssignedTo  *string                `json:"assigned_to"`
	CreatedBy   *string                `json:"created_by"`
}

// Validate checks the ticket update payload shape.
func (r UpdateTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.By(trimmedLength(3, 200))),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.By(trimmedLength(10, 5000))),
		validation.Field(&r.Status, validation.In(
			domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.TicketStatusClosed)),
		validation.Field(&r.Priority, validation.In(
			domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh)),
	)
}

// Patch converts the request into a domain patch.
func (r UpdateTicketRequest) Patch() domain.TicketPatch {
	return domain.TicketPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		CreatedBy:   r.CreatedBy,
	}
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AgentID string `json:"agent_id"`
}

// Validate checks the assignment payload shape.
func (r AssignTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AgentID, validation.Required),
	)
}

// AssigneeResponse is display info for an assigned agent.
type AssigneeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// TicketResponse is the full ticket shape returned to clients.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedBy   string                `json:"created_by"`
	AssignedTo  *string               `json:"assigned_to"`
	Assignee    *AssigneeResponse     `json:"assignee,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket to its response shape.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		CreatedBy:   ticket.CreatedBy,
		AssignedTo:  ticket.AssignedTo,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
