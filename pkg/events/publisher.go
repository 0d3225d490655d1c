package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	ApplicationCreated     = "application.created"
	ApplicantStatusChanged = "applicant.status_changed"
	InterviewScheduled     = "interview.scheduled"
	ApplicationWithdrawn   = "application.withdrawn"
)

type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	JobID      string            `json:"jobId,omitempty"`
	Email      string            `json:"email,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher delivers pipeline events. Callers treat delivery as best effort.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RedisStreamPublisher appends events to a Redis stream with XADD.
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisStreamPublisher(client *redis.Client, stream string, maxLen int64) (*RedisStreamPublisher, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	stream = strings.TrimSpace(stream)
	if stream == "" {
		return nil, errors.New("events stream required")
	}
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: maxLen}, nil
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, e Event) error {
	if e.Type == "" {
		return errors.New("event type required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"event_id": e.ID,
			"type":     e.Type,
			"payload":  string(payload),
		},
	}).Err()
}
