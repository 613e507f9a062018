package authz

import (
	"github.com/opsdesk/helpdesk-service/internal/domain"
	apperrors "github.com/opsdesk/helpdesk-service/pkg/util/errorutil"
)

// ValidatePatch enforces the per-role field whitelist on a proposed change:
// a user may touch title and description, an agent additionally status and
// priority, and an admin everything except created_by, which no role may
// ever change. Hiding restricted fields in a client is not enforcement, so
// the check lives here.
//
// Assignment is not patchable by anyone. Assign is the only way to bind a
// ticket to an agent; a raw assigned_to write would bypass the agent-role
// precondition and the forced in_progress transition.
func ValidatePatch(identity domain.Identity, patch domain.TicketPatch) error {
	if patch.CreatedBy != nil {
		return apperrors.NewForbidden("created_by is immutable")
	}
	if patch.AssignedTo != nil {
		return apperrors.NewForbidden("assignment changes go through the assign operation")
	}

	switch identity.Role {
	case domain.RoleAdmin, domain.RoleAgent:
		return nil
	case domain.RoleUser:
		if patch.Status != nil || patch.Priority != nil {
			return apperrors.NewForbidden("users may only edit title and description")
		}
		return nil
	default:
		return apperrors.NewInvalidRole(string(identity.Role))
	}
}
