// Package events publishes review domain events to RabbitMQ.
package events

import (
	"context"
	"time"
)

const (
	TypeReviewWritten = "review.written"
	TypeReviewChanged = "review.changed"
	TypeReviewRemoved = "review.removed"
	TypeReviewLiked   = "review.liked"
)

// ReviewEvent is the JSON body published for every review change.
type ReviewEvent struct {
	Type       string    `json:"type"`
	ReviewID   int64     `json:"review_id"`
	PerfumeID  int64     `json:"perfume_id"`
	MemberID   int64     `json:"member_id"`
	Grade      int       `json:"grade"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers review events. Callers treat failures as best effort.
type Publisher interface {
	Publish(ctx context.Context, event ReviewEvent) error
	Close() error
}

// NopPublisher drops every event. Used when RABBITMQ_URL is empty.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReviewEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
