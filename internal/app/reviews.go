package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"roamvista/internal/domain"
)

type ReviewService struct {
	reviews       domain.ReviewRepository
	notifications domain.NotificationRepository
	cache         domain.Cache
	cacheTTL      time.Duration
	adminEmail    string
}

func NewReviewService(reviews domain.ReviewRepository, notifications domain.NotificationRepository, cache domain.Cache, ttl time.Duration, adminEmail string) *ReviewService {
	return &ReviewService{
		reviews:       reviews,
		notifications: notifications,
		cache:         cache,
		cacheTTL:      ttl,
		adminEmail:    adminEmail,
	}
}

type SubmitReviewInput struct {
	PackageID        *string `json:"package_id"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerLocation *string `json:"customer_location"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	Rating           int     `json:"rating"`
	TravelDate       *string `json:"travel_date"`
}

// Submit persists a review in the unapproved state and enqueues a durable
// admin notification referencing it. A failed enqueue is logged but does not
// roll back or fail the review creation.
func (s *ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (domain.Review, error) {
	if err := validateSubmitReview(&in); err != nil {
		return domain.Review{}, err
	}

	r := domain.Review{
		PackageID:        in.PackageID,
		CustomerName:     in.CustomerName,
		CustomerEmail:    in.CustomerEmail,
		CustomerLocation: in.CustomerLocation,
		Title:            in.Title,
		Content:          in.Content,
		Rating:           in.Rating,
		TravelDate:       in.TravelDate,
		AdminApproved:    false,
		Verified:         false,
	}
	created, err := s.reviews.InsertReview(ctx, r)
	if err != nil {
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}
	log.Info().Int64("id", created.ID).Int("rating", created.Rating).Msg("review created, pending approval")

	n := domain.Notification{
		Type:           domain.NotificationTypeNewReview,
		RecipientEmail: s.adminEmail,
		Title:          "New Customer Review Submitted",
		Message:        fmt.Sprintf("A new review has been submitted by %s for approval.", created.CustomerName),
		ReviewID:       &created.ID,
	}
	if err := s.notifications.EnqueueNotification(ctx, n); err != nil {
		log.Warn().Err(err).Int64("review_id", created.ID).Msg("enqueue review notification failed")
	}

	return created, nil
}

// ListApproved returns publicly visible reviews, newest first. Results are
// cached briefly; new reviews enter unapproved so the cache cannot leak them.
func (s *ReviewService) ListApproved(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	key := reviewCacheKey(f)
	var cached []domain.Review
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	out, err := s.reviews.ListApprovedReviews(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Review{}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	}
	return out, nil
}

func reviewCacheKey(f domain.ReviewFilter) string {
	pkg := "all"
	if f.PackageID != nil {
		pkg = *f.PackageID
	}
	return fmt.Sprintf("reviews:approved:%s:%t:%d", pkg, f.FeaturedOnly, f.Limit)
}

func validateSubmitReview(in *SubmitReviewInput) error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	switch {
	case in.CustomerName == "":
		return domain.Invalid("customer_name", "is required")
	case in.CustomerEmail == "":
		return domain.Invalid("customer_email", "is required")
	case in.Title == "":
		return domain.Invalid("title", "is required")
	case in.Content == "":
		return domain.Invalid("content", "is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Invalid("rating", "must be between 1 and 5")
	}
	return nil
}
