package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gympass/internal/logger"
	"gympass/internal/metrics"
)

const (
	EventNewPendingCheckIn    = "newPendingCheckIn"
	EventCheckInStatusUpdated = "checkInStatusUpdated"
)

// Publisher pushes events to a named channel. Delivery is best-effort:
// implementations log failures and never surface them to callers.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{})
}

// GymChannel is the staff channel for one gym.
func GymChannel(gymID int) string {
	return fmt.Sprintf("gym:%d", gymID)
}

// UserChannel is a member's personal channel.
func UserChannel(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// Service publishes events over Redis PUB/SUB. Subscribing edge nodes
// (websocket gateways) fan messages out to connected clients.
type Service struct {
	redis *redis.Client
}

func New(redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

func (s *Service) Publish(ctx context.Context, channel, event string, payload interface{}) {
	data, err := json.Marshal(envelope{
		Event:   event,
		Payload: payload,
		At:      time.Now(),
	})
	if err != nil {
		logger.Errorf("Failed to marshal %s event for %s: %v", event, channel, err)
		metrics.RecordRealtimePublish(event, "error")
		return
	}

	if err := s.redis.Publish(ctx, channel, string(data)).Err(); err != nil {
		logger.Errorf("Failed to publish %s to %s: %v", event, channel, err)
		metrics.RecordRealtimePublish(event, "error")
		return
	}

	logger.Debug("Realtime event published", "event", event, "channel", channel)
	metrics.RecordRealtimePublish(event, "ok")
}

func (s *Service) Close() error {
	return s.redis.Close()
}
