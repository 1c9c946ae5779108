package domain

import "time"

// Notification queue row statuses.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

const NotificationTypeNewReview = "new_review"

// Notification is a durable admin-notification queue entry. Unlike the
// best-effort inquiry webhook, these rows survive process restarts and are
// drained by the notifier worker.
type Notification struct {
	ID             int64
	Type           string
	RecipientEmail string
	Title          string
	Message        string
	ReviewID       *int64
	Status         string
	Attempts       int
	CreatedAt      time.Time
	SentAt         *time.Time
}

// InquiryNotification is the fire-and-forget payload dispatched to the
// outbound webhook after a new inquiry is created.
type InquiryNotification struct {
	VerificationID  string  `json:"verificationId"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	PackageName     string  `json:"packageName"`
	PackagePrice    float64 `json:"packagePrice"`
	TravelDate      *string `json:"travelDate,omitempty"`
	GroupSize       *int    `json:"groupSize,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}
