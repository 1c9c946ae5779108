package domain

import (
	"context"
	"time"
)

type InquiryRepository interface {
	// Write paths
	InsertInquiry(ctx context.Context, q Inquiry) (int64, error)
	UpdateInquiry(ctx context.Context, id int64, u InquiryUpdate) error

	// Read paths
	FindDuplicateSince(ctx context.Context, email, packageID string, since time.Time) (verificationID string, found bool, err error)
	GetInquiry(ctx context.Context, id int64) (Inquiry, error)
	ListInquiries(ctx context.Context, f InquiryFilter) ([]Inquiry, error)

	// Aggregation reads
	CountInquiries(ctx context.Context) (int, error)
	CountInquiriesByStatus(ctx context.Context, status string) (int, error)
	CountInquiriesSince(ctx context.Context, since time.Time) (int, error)
	CountInquiriesBetween(ctx context.Context, from, to time.Time) (int, error)
	ConfirmedQuotes(ctx context.Context) ([]*int64, error)
	RecentInquiries(ctx context.Context, limit int) ([]Inquiry, error)
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, r Review) (Review, error)
	ListApprovedReviews(ctx context.Context, f ReviewFilter) ([]Review, error)
}

type NotificationRepository interface {
	EnqueueNotification(ctx context.Context, n Notification) error
	PendingNotifications(ctx context.Context, limit int) ([]Notification, error)
	MarkNotificationSent(ctx context.Context, id int64) error
	MarkNotificationFailed(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// InquiryNotifier accepts fire-and-forget notifications. Dispatch must never
// block and must never surface delivery failures to the caller.
type InquiryNotifier interface {
	Dispatch(n InquiryNotification)
}
