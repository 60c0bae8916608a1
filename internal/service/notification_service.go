package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

// FeedPage is a notification listing plus the unread badge count.
type FeedPage struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// NotificationService reads and mutates the admin notification feed.
// Writing new entries is the worker's job; services enqueue instead.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	rdb              *redis.Client
	log              zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		rdb:              rdb,
		log:              log.With().Str("component", "notification_service").Logger(),
	}
}

// GetFeed returns one page of entries plus the unread badge count and the
// total entry count for pagination. Page and perPage must already be
// normalized by the caller.
func (s *NotificationService) GetFeed(ctx context.Context, page, perPage int) (*FeedPage, int, error) {
	notifications, err := s.notificationRepo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notificationRepo.UnreadCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.notificationRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return &FeedPage{Notifications: notifications, UnreadCount: unread}, total, nil
}

// MarkRead flags one entry as read.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead flags every entry as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.notificationRepo.MarkAllRead(ctx)
}

// Delete removes one entry.
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.Delete(ctx, id)
}

// Publish enqueues a feed event for the background worker. Used by the
// import pipeline and systems that report outside a payment flow.
func (s *NotificationService) Publish(ctx context.Context, kind model.NotificationKind, title, message, actionLabel, actionURL string) {
	event := feedEvent{
		Kind:        kind,
		Title:       title,
		Message:     message,
		ActionLabel: actionLabel,
		ActionURL:   actionURL,
	}
	raw, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal feed event")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).Msg("failed to enqueue feed event")
	}
}
