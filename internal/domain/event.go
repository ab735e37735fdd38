package domain

import (
	"context"
	"time"
)

const EventJobStatusChanged = "job.status_changed"

// JobEvent is published after a confirmed job mutation.
type JobEvent struct {
	Type  string    `json:"type"`
	JobID string    `json:"job_id"`
	From  JobStatus `json:"from,omitempty"`
	To    JobStatus `json:"to,omitempty"`
	At    time.Time `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event JobEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, JobEvent) error { return nil }
