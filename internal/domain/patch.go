package domain

// TicketPatch is a partial ticket update. Nil fields are untouched.
//
// CreatedBy is present only so the engine can reject patches that name it;
// it is immutable after creation for every role.
type TicketPatch struct {
	Title       *string
	Description *string
	Status      *TicketStatus
	Priority    *TicketPriority
	AssignedTo  *string
	CreatedBy   *string
}

// Empty reports whether the patch changes nothing.
func (p TicketPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssignedTo == nil && p.CreatedBy == nil
}

// Apply writes the patch onto a ticket copy and returns it.
func (p TicketPatch) Apply(ticket Ticket) Ticket {
	if p.Title != nil {
		ticket.Title = *p.Title
	}
	if p.Description != nil {
		ticket.Description = *p.Description
	}
	if p.Status != nil {
		ticket.Status = *p.Status
	}
	if p.Priority != nil {
		ticket.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		assignee := *p.AssignedTo
		ticket.AssignedTo = &assignee
	}
	return ticket
}
