package dto

import (
	"testing"

	"github.com/opsdesk/helpdesk-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateTicketRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTicketRequest
		wantErr bool
	}{
		{"valid", CreateTicketRequest{Title: "Printer down", Description: "The office printer stopped responding."}, false},
		{"valid with priority", CreateTicketRequest{Title: "Printer down", Description: "The office printer stopped responding.", Priority: domain.TicketPriorityHigh}, false},
		{"missing title", CreateTicketRequest{Description: "The office printer stopped responding."}, true},
		{"title too short", CreateTicketRequest{Title: "ab", Description: "The office printer stopped responding."}, true},
		{"description too short", CreateTicketRequest{Title: "Printer down", Description: "short"}, true},
		// Padding must not satisfy the minimum; the stored value is trimmed.
		{"description padded below minimum", CreateTicketRequest{Title: "Printer down", Description: "    short1    "}, true},
		{"title padded below minimum", CreateTicketRequest{Title: "   ab   ", Description: "The office printer stopped responding."}, true},
		{"bad priority", CreateTicketRequest{Title: "Printer down", Description: "The office printer stopped responding.", Priority: "urgent"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateTicketRequestValidate(t *testing.T) {
	closed := domain.TicketStatusClosed
	badStatus := domain.TicketStatus("resolved")

	tests := []struct {
		name    string
		req     UpdateTicketRequest
		wantErr bool
	}{
		{"empty patch passes shape check", UpdateTicketRequest{}, false},
		{"valid status", UpdateTicketRequest{Status: &closed}, false},
		{"bad status", UpdateTicketRequest{Status: &badStatus}, true},
		{"empty title", UpdateTicketRequest{Title: strPtr("")}, true},
		{"short description", UpdateTicketRequest{Description: strPtr("nope")}, true},
		{"padded short description", UpdateTicketRequest{Description: strPtr("    short1    ")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Name: "Uma", Email: "uma@example.com", Password: "secret1"}, false},
		{"valid with role", RegisterRequest{Name: "Gil", Email: "gil@example.com", Password: "secret1", Role: domain.RoleAgent}, false},
		{"bad email", RegisterRequest{Name: "Uma", Email: "not-an-email", Password: "secret1"}, true},
		{"short password", RegisterRequest{Name: "Uma", Email: "uma@example.com", Password: "abc"}, true},
		{"unknown role", RegisterRequest{Name: "Uma", Email: "uma@example.com", Password: "secret1", Role: "owner"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssignTicketRequestValidate(t *testing.T) {
	if err := (AssignTicketRequest{AgentID: "agt-1"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := (AssignTicketRequest{}).Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing agent_id")
	}
}

func TestUpdateTicketRequestPatchCarriesAllFields(t *testing.T) {
	req := UpdateTicketRequest{
		Title:     strPtr("New title"),
		CreatedBy: strPtr("usr-2"),
	}
	patch := req.Patch()
	if patch.Title == nil || *patch.Title != "New title" {
		t.Error("title not carried into patch")
	}
	// created_by must survive into the patch so the policy layer can
	// reject it explicitly instead of it being dropped here.
	if patch.CreatedBy == nil || *patch.CreatedBy != "usr-2" {
		t.Error("created_by not carried into patch")
	}
}
