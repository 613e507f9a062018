package events

import (
	"context"
	"testing"

	"github.com/opsdesk/helpdesk-service/internal/domain"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	event := Event{
		ID:       "e-1",
		Type:     EventTicketCreated,
		TicketID: "t-1",
		Actor:    Actor{ID: "u-1", Role: domain.RoleUser},
	}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}
	if received[0].TicketID != "t-1" {
		t.Errorf("ticket_id = %s, want t-1", received[0].TicketID)
	}
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventTicketDeleted, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if calls != 0 {
		t.Errorf("handler called %d times for non-subscribed type", calls)
	}
}
