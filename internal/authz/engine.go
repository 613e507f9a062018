// Package authz implements the ticket authorization and lifecycle rules.
//
// Every function here is a pure decision over (ticket, identity, action):
// no I/O, no shared state, safe for concurrent use. Callers resolve ticket
// existence before consulting visibility, so "not found" and "hidden" stay
// distinguishable at the boundary.
package authz

import (
	"github.com/opsdesk/helpdesk-service/internal/domain"
	apperrors "github.com/opsdesk/helpdesk-service/pkg/util/errorutil"
)

// CanView reports whether the identity may read the ticket.
func CanView(ticket *domain.Ticket, identity domain.Identity) bool {
	switch identity.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return ticket.CreatedBy == identity.ID
	case domain.RoleAgent:
		return ticket.IsAssignedTo(identity.ID)
	default:
		return false
	}
}

// FilterForListing returns the subset of tickets the identity may list,
// preserving the stored order. An unrecognized role is a configuration
// fault and fails loudly rather than producing an empty result.
func FilterForListing(tickets []domain.Ticket, identity domain.Identity) ([]domain.Ticket, error) {
	switch identity.Role {
	case domain.RoleAdmin:
		return tickets, nil
	case domain.RoleUser:
		owned := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.CreatedBy == identity.ID {
				owned = append(owned, t)
			}
		}
		return owned, nil
	case domain.RoleAgent:
		assigned := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.IsAssignedTo(identity.ID) {
				assigned = append(assigned, t)
			}
		}
		return assigned, nil
	default:
		return nil, apperrors.NewInvalidRole(string(identity.Role))
	}
}

// CanMutate reports whether the identity may modify the ticket at all.
// Which fields the identity may touch is decided by ValidatePatch.
func CanMutate(ticket *domain.Ticket, identity domain.Identity) bool {
	switch identity.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return ticket.CreatedBy == identity.ID
	case domain.RoleAgent:
		return ticket.IsAssignedTo(identity.ID)
	default:
		return false
	}
}

// CanDelete reports whether the identity may delete the ticket. Agents can
// never delete, regardless of assignment.
func CanDelete(ticket *domain.Ticket, identity domain.Identity) bool {
	switch identity.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return ticket.CreatedBy == identity.ID
	case domain.RoleAgent:
		return false
	default:
		return false
	}
}

// Assign binds the ticket to an agent and unconditionally forces the status
// to in_progress, even when the ticket was previously closed: re-assignment
// always re-opens work. The ticket is returned by value; on error the input
// is untouched.
func Assign(ticket domain.Ticket, assignee *domain.User) (domain.Ticket, error) {
	if assignee == nil || assignee.Role != domain.RoleAgent {
		role := ""
		if assignee != nil {
			role = string(assignee.Role)
		}
		return ticket, apperrors.NewInvalidAssignee("assignment target is not an agent",
			map[string]any{"role": role})
	}
	assigneeID := assignee.ID
	ticket.AssignedTo = &assigneeID
	ticket.Status = domain.TicketStatusInProgress
	return ticket, nil
}
