// Package events publishes domain events about users and orders.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Subjects published by the services.
const (
	SubjectUserCreated  = "celerix.users.created"
	SubjectUserUpdated  = "celerix.users.updated"
	SubjectUserDeleted  = "celerix.users.deleted"
	SubjectOrderCreated = "celerix.orders.created"
)

const streamName = "CELERIX"

// Envelope wraps every published payload.
type Envelope struct {
	EventID    string    `json:"event_id"`
	Subject    string    `json:"subject"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher emits domain events. Delivery is best-effort: callers log failures
// and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close()
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close()                                     {}

// NATSPublisher writes events to a JetStream stream.
type NATSPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	source string
}

// Connect dials NATS and ensures the event stream exists.
func Connect(ctx context.Context, natsURL, source string) (*NATSPublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name(source),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream: %w", err)
	}

	streamCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(streamCtx, jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"celerix.>"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create %s stream: %w", streamName, err)
	}

	return &NATSPublisher{nc: nc, js: js, source: source}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		Subject:    subject,
		Source:     p.source,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := p.js.Publish(pubCtx, subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}

// Recorder keeps published events in memory (useful for tests).
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
}

func (r *Recorder) Publish(_ context.Context, subject string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Envelope{Subject: subject, Data: data})
	return nil
}

func (r *Recorder) Close() {}

// Subjects returns the subjects recorded so far, in order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Subject
	}
	return out
}
