package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"job-tracker-api/internal/domain"
)

const publishTimeout = 2 * time.Second

// RedisPublisher fans job events out over Redis Pub/Sub.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

var _ domain.EventPublisher = (*RedisPublisher)(nil)

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func encode(event domain.JobEvent) ([]byte, error) {
	if event.Type == "" || event.JobID == "" {
		return nil, errors.New("event type and job id are required")
	}
	return json.Marshal(event)
}

// Publish sends event with a short timeout detached from request cancellation.
func (p *RedisPublisher) Publish(ctx context.Context, event domain.JobEvent) error {
	if p.rdb == nil {
		return errors.New("events: redis not configured")
	}
	payload, err := encode(event)
	if err != nil {
		return err
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.rdb.Publish(pctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
