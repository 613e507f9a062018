package authz

import (
	"testing"

	"github.com/opsdesk/helpdesk-service/internal/domain"
	apperrors "github.com/opsdesk/helpdesk-service/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func ticketOwnedBy(owner string) *domain.Ticket {
	return &domain.Ticket{
		ID:          "t-1",
		Title:       "printer on fire",
		Description: "the office printer is actually on fire",
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityLow,
		CreatedBy:   owner,
	}
}

func TestCanView(t *testing.T) {
	ticket := ticketOwnedBy("u-1")
	ticket.AssignedTo = strPtr("a-1")

	tests := []struct {
		name     string
		identity domain.Identity
		want     bool
	}{
		{"admin always", domain.Identity{ID: "x", Role: domain.RoleAdmin}, true},
		{"owner", domain.Identity{ID: "u-1", Role: domain.RoleUser}, true},
		{"other user", domain.Identity{ID: "u-2", Role: domain.RoleUser}, false},
		{"assigned agent", domain.Identity{ID: "a-1", Role: domain.RoleAgent}, true},
		{"other agent", domain.Identity{ID: "a-2", Role: domain.RoleAgent}, false},
		{"unknown role", domain.Identity{ID: "u-1", Role: "superuser"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanView(ticket, tt.identity); got != tt.want {
				t.Errorf("CanView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewUnassignedTicket(t *testing.T) {
	ticket := ticketOwnedBy("u-1")
	agent := domain.Identity{ID: "a-1", Role: domain.RoleAgent}
	if CanView(ticket, agent) {
		t.Error("agent should not see an unassigned ticket")
	}
}

func TestCanMutate(t *testing.T) {
	ticket := ticketOwnedBy("u-1")
	ticket.AssignedTo = strPtr("a-1")

	tests := []struct {
		name     string
		identity domain.Identity
		want     bool
	}{
		{"admin always", domain.Identity{ID: "x", Role: domain.RoleAdmin}, true},
		{"owner", domain.Identity{ID: "u-1", Role: domain.RoleUser}, true},
		{"other user", domain.Identity{ID: "u-2", Role: domain.RoleUser}, false},
		{"assigned agent", domain.Identity{ID: "a-1", Role: domain.RoleAgent}, true},
		{"other agent", domain.Identity{ID: "a-2", Role: domain.RoleAgent}, false},
		{"unknown role", domain.Identity{ID: "u-1", Role: "root"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(ticket, tt.identity); got != tt.want {
				t.Errorf("CanMutate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	ticket := ticketOwnedBy("u-1")
	ticket.AssignedTo = strPtr("a-1")

	tests := []struct {
		name     string
		identity domain.Identity
		want     bool
	}{
		{"admin always", domain.Identity{ID: "x", Role: domain.RoleAdmin}, true},
		{"creator", domain.Identity{ID: "u-1", Role: domain.RoleUser}, true},
		{"other user", domain.Identity{ID: "u-2", Role: domain.RoleUser}, false},
		// Agents never delete, not even their own assignments.
		{"assigned agent", domain.Identity{ID: "a-1", Role: domain.RoleAgent}, false},
		{"other agent", domain.Identity{ID: "a-2", Role: domain.RoleAgent}, false},
		{"unknown role", domain.Identity{ID: "u-1", Role: "owner"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDelete(ticket, tt.identity); got != tt.want {
				t.Errorf("CanDelete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterForListing(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "t-1", CreatedBy: "u-1"},
		{ID: "t-2", CreatedBy: "u-2", AssignedTo: strPtr("a-1")},
		{ID: "t-3", CreatedBy: "u-1", AssignedTo: strPtr("a-2")},
		{ID: "t-4", CreatedBy: "u-3"},
		{ID: "t-5", CreatedBy: "u-1", AssignedTo: strPtr("a-1")},
	}

	tests := []struct {
		name     string
		identity domain.Identity
		wantIDs  []string
	}{
		{"admin gets all in stored order", domain.Identity{ID: "adm", Role: domain.RoleAdmin},
			[]string{"t-1", "t-2", "t-3", "t-4", "t-5"}},
		{"user gets own in stored order", domain.Identity{ID: "u-1", Role: domain.RoleUser},
			[]string{"t-1", "t-3", "t-5"}},
		{"agent gets assigned", domain.Identity{ID: "a-1", Role: domain.RoleAgent},
			[]string{"t-2", "t-5"}},
		{"user with nothing", domain.Identity{ID: "u-9", Role: domain.RoleUser}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterForListing(tickets, tt.identity)
			if err != nil {
				t.Fatalf("FilterForListing() unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterForListing() returned %d tickets, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterForListingUnknownRole(t *testing.T) {
	_, err := FilterForListing(nil, domain.Identity{ID: "x", Role: "moderator"})
	if err == nil {
		t.Fatal("expected error for unrecognized role")
	}
	if code := apperrors.CodeOf(err); code != "INVALID_ROLE" {
		t.Errorf("error code = %s, want INVALID_ROLE", code)
	}
}

func TestAssignForcesInProgress(t *testing.T) {
	agent := &domain.User{ID: "a-1", Role: domain.RoleAgent}

	for _, status := range []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusClosed,
	} {
		t.Run(string(status), func(t *testing.T) {
			ticket := *ticketOwnedBy("u-1")
			ticket.Status = status

			got, err := Assign(ticket, agent)
			if err != nil {
				t.Fatalf("Assign() unexpected error: %v", err)
			}
			if got.Status != domain.TicketStatusInProgress {
				t.Errorf("status = %s, want in_progress", got.Status)
			}
			if !got.IsAssignedTo("a-1") {
				t.Error("ticket not assigned to agent")
			}
		})
	}
}

func TestAssignRejectsNonAgents(t *testing.T) {
	tests := []struct {
		name     string
		assignee *domain.User
	}{
		{"user", &domain.User{ID: "u-2", Role: domain.RoleUser}},
		{"admin", &domain.User{ID: "adm", Role: domain.RoleAdmin}},
		{"unknown role", &domain.User{ID: "z", Role: "bot"}},
		{"nil assignee", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := *ticketOwnedBy("u-1")
			ticket.Status = domain.TicketStatusClosed

			got, err := Assign(ticket, tt.assignee)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.CodeOf(err); code != "INVALID_ASSIGNEE" {
				t.Errorf("error code = %s, want INVALID_ASSIGNEE", code)
			}
			// The returned ticket must be untouched.
			if got.AssignedTo != nil {
				t.Error("ticket assignment changed on failed assign")
			}
			if got.Status != domain.TicketStatusClosed {
				t.Errorf("ticket status changed on failed assign: %s", got.Status)
			}
		})
	}
}

func TestValidatePatchRejectsCreatedBy(t *testing.T) {
	patch := domain.TicketPatch{CreatedBy: strPtr("someone-else")}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAgent, domain.RoleUser} {
		t.Run(string(role), func(t *testing.T) {
			err := ValidatePatch(domain.Identity{ID: "x", Role: role}, patch)
			if err == nil {
				t.Fatal("expected created_by patch to be rejected")
			}
			if code := apperrors.CodeOf(err); code != "FORBIDDEN" {
				t.Errorf("error code = %s, want FORBIDDEN", code)
			}
		})
	}
}

func TestValidatePatchRejectsAssignedTo(t *testing.T) {
	// Assignment must stay on the Assign path; a raw assigned_to patch
	// would skip the agent-role check and the forced in_progress status.
	patch := domain.TicketPatch{AssignedTo: strPtr("u-2")}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAgent, domain.RoleUser} {
		t.Run(string(role), func(t *testing.T) {
			err := ValidatePatch(domain.Identity{ID: "x", Role: role}, patch)
			if err == nil {
				t.Fatal("expected assigned_to patch to be rejected")
			}
			if code := apperrors.CodeOf(err); code != "FORBIDDEN" {
				t.Errorf("error code = %s, want FORBIDDEN", code)
			}
		})
	}
}

func TestValidatePatchFieldWhitelist(t *testing.T) {
	status := domain.TicketStatusClosed
	priority := domain.TicketPriorityHigh

	tests := []struct {
		name    string
		role    domain.Role
		patch   domain.TicketPatch
		wantErr bool
	}{
		{"admin full patch", domain.RoleAdmin,
			domain.TicketPatch{Status: &status, Priority: &priority}, false},
		{"admin reassigns", domain.RoleAdmin,
			domain.TicketPatch{AssignedTo: strPtr("a-1")}, true},
		{"agent edits description", domain.RoleAgent,
			domain.TicketPatch{Description: strPtr("replaced the fuser unit")}, false},
		{"agent edits status", domain.RoleAgent,
			domain.TicketPatch{Status: &status}, false},
		{"agent reassigns", domain.RoleAgent,
			domain.TicketPatch{AssignedTo: strPtr("a-2")}, true},
		{"user edits title", domain.RoleUser,
			domain.TicketPatch{Title: strPtr("printer still on fire")}, false},
		{"user edits status", domain.RoleUser,
			domain.TicketPatch{Status: &status}, true},
		{"user edits priority", domain.RoleUser,
			domain.TicketPatch{Priority: &priority}, true},
		{"user reassigns", domain.RoleUser,
			domain.TicketPatch{AssignedTo: strPtr("a-1")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(domain.Identity{ID: "x", Role: tt.role}, tt.patch)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePatchUnknownRole(t *testing.T) {
	err := ValidatePatch(domain.Identity{ID: "x", Role: "auditor"}, domain.TicketPatch{Title: strPtr("t")})
	if code := apperrors.CodeOf(err); code != "INVALID_ROLE" {
		t.Errorf("error code = %s, want INVALID_ROLE", code)
	}
}
