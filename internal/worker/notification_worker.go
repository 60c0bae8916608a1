package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

const PollTimeout = 1 * time.Second // Must be >= 1s to satisfy Redis

// NotificationWorker drains the feed event queue: each event is persisted
// to the notifications table, then fanned out to live dashboards over the
// Redis pub/sub channel. Producers never write the table directly, so a
// burst of payments cannot stall a request on feed bookkeeping.
type NotificationWorker struct {
	notificationRepo *repository.NotificationRepository
	rdb              *redis.Client
	log              zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(notificationRepo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		notificationRepo: notificationRepo,
		rdb:              rdb,
		log:              log.With().Str("component", "notification_worker").Logger(),
	}
}

type feedEvent struct {
	Kind        model.NotificationKind `json:"kind"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	ActionLabel string                 `json:"action_label,omitempty"`
	ActionURL   string                 `json:"action_url,omitempty"`
}

// Start runs the drain loop until the context is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("NotificationWorker stopped")
			return
		default:
		}

		result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.NotificationQueue).Result()
		if err != nil {
			if err == redis.Nil {
				continue // Queue empty
			}
			if ctx.Err() != nil {
				return
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(3 * time.Second)
			continue
		}
		if len(result) < 2 {
			continue
		}

		var event feedEvent
		if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
			// Malformed JSON cannot be retried. Log and discard.
			w.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed feed event")
			continue
		}

		w.process(ctx, &event, result[1])
	}
}

func (w *NotificationWorker) process(ctx context.Context, event *feedEvent, raw string) {
	notification := &model.Notification{
		Kind:        event.Kind,
		Title:       event.Title,
		Message:     event.Message,
		ActionLabel: event.ActionLabel,
		ActionURL:   event.ActionURL,
	}

	if err := w.notificationRepo.Insert(ctx, notification); err != nil {
		// Requeue so the event survives a database hiccup.
		w.log.Error().Err(err).Msg("Insert failed, requeueing event")
		w.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, raw)
		time.Sleep(time.Second)
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to marshal notification for fan-out")
		return
	}
	if err := w.rdb.Publish(ctx, config.CacheKey.NotificationChannel(), payload).Err(); err != nil {
		// Live fan-out is best effort; the entry is already persisted.
		w.log.Warn().Err(err).Msg("Pub/sub publish failed")
	}
}
