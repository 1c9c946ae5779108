package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"roamvista/internal/domain"
)

// dedupWindow collapses accidental double-submissions (same email + package)
// into the original inquiry. It is best-effort only: the check and the insert
// are separate statements, so two concurrent submissions can both pass.
const dedupWindow = 15 * time.Minute

var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type InquiryService struct {
	repo     domain.InquiryRepository
	notifier domain.InquiryNotifier
	now      func() time.Time
}

func NewInquiryService(repo domain.InquiryRepository, notifier domain.InquiryNotifier) *InquiryService {
	return &InquiryService{repo: repo, notifier: notifier, now: time.Now}
}

type SubmitInquiryInput struct {
	PackageID       string  `json:"packageId"`
	PackageName     string  `json:"packageName"`
	PackagePrice    float64 `json:"packagePrice"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	TravelDate      *string `json:"travelDate"`
	GroupSize       *string `json:"groupSize"`
	SpecialRequests *string `json:"specialRequests"`
}

type SubmitInquiryResult struct {
	VerificationID string
	Duplicate      bool
}

// Submit validates and persists a new inquiry. Within the dedup window the
// existing verification id is returned and no row is written. The outbound
// notification is dispatched fire-and-forget; its outcome never affects the
// result.
func (s *InquiryService) Submit(ctx context.Context, in SubmitInquiryInput) (SubmitInquiryResult, error) {
	groupSize, err := validateSubmitInquiry(&in)
	if err != nil {
		return SubmitInquiryResult{}, err
	}

	now := s.now()
	since := now.Add(-dedupWindow)
	vid, found, err := s.repo.FindDuplicateSince(ctx, in.Email, in.PackageID, since)
	if err != nil {
		// The dedup check is advisory; a failed lookup must not block intake.
		log.Warn().Err(err).Str("email", in.Email).Msg("duplicate check failed")
	}
	if found {
		log.Info().Str("verification_id", vid).Msg("duplicate inquiry collapsed")
		return SubmitInquiryResult{VerificationID: vid, Duplicate: true}, nil
	}

	q := domain.Inquiry{
		VerificationID:     verificationID(now),
		CustomerName:       in.Name,
		CustomerEmail:      in.Email,
		CustomerPhone:      in.Phone,
		PackageID:          in.PackageID,
		PackageName:        in.PackageName,
		PackagePrice:       in.PackagePrice,
		GroupSize:          groupSize,
		PreferredStartDate: in.TravelDate,
		SpecialRequests:    in.SpecialRequests,
		Status:             domain.StatusPending,
		CreatedAt:          now,
	}
	id, err := s.repo.InsertInquiry(ctx, q)
	if err != nil {
		return SubmitInquiryResult{}, fmt.Errorf("insert inquiry: %w", err)
	}
	log.Info().Int64("id", id).Str("verification_id", q.VerificationID).Msg("inquiry created")

	if s.notifier != nil {
		s.notifier.Dispatch(domain.InquiryNotification{
			VerificationID:  q.VerificationID,
			CustomerName:    in.Name,
			CustomerEmail:   in.Email,
			CustomerPhone:   in.Phone,
			PackageName:     in.PackageName,
			PackagePrice:    in.PackagePrice,
			TravelDate:      in.TravelDate,
			GroupSize:       groupSize,
			SpecialRequests: in.SpecialRequests,
		})
	}

	return SubmitInquiryResult{VerificationID: q.VerificationID}, nil
}

func (s *InquiryService) List(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error) {
	if f.Status != "" && !domain.ValidStatus(f.Status) {
		return nil, domain.Invalid("status", "unknown inquiry status")
	}
	return s.repo.ListInquiries(ctx, f)
}

func (s *InquiryService) Get(ctx context.Context, id int64) (domain.Inquiry, error) {
	return s.repo.GetInquiry(ctx, id)
}

// Update applies admin edits. The status enum and the quoted amount are
// validated before the store is touched.
func (s *InquiryService) Update(ctx context.Context, id int64, u domain.InquiryUpdate) error {
	if u.AdminNotes == nil && u.QuotedAmount == nil && u.Status == nil {
		return domain.Invalid("body", "no updatable fields provided")
	}
	if u.Status != nil && !domain.ValidStatus(*u.Status) {
		return domain.Invalid("inquiry_status", "unknown inquiry status")
	}
	if u.QuotedAmount != nil && *u.QuotedAmount < 0 {
		return domain.Invalid("quoted_amount", "must be a non-negative integer")
	}
	return s.repo.UpdateInquiry(ctx, id, u)
}

// validateSubmitInquiry normalizes the input in place and returns the parsed
// group size, if any.
func validateSubmitInquiry(in *SubmitInquiryInput) (*int, error) {
	in.PackageID = strings.TrimSpace(in.PackageID)
	in.PackageName = strings.TrimSpace(in.PackageName)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if in.PackageID == "" {
		return nil, domain.Invalid("packageId", "is required")
	}
	if in.PackageName == "" {
		return nil, domain.Invalid("packageName", "is required")
	}
	if in.PackagePrice < 0 {
		return nil, domain.Invalid("packagePrice", "must be non-negative")
	}
	if len(in.Name) < 2 {
		return nil, domain.Invalid("name", "must be at least 2 characters")
	}
	if !emailRx.MatchString(in.Email) {
		return nil, domain.Invalid("email", "must be a valid email address")
	}
	if len(in.Phone) < 5 {
		return nil, domain.Invalid("phone", "must be at least 5 characters")
	}

	var groupSize *int
	if in.GroupSize != nil && strings.TrimSpace(*in.GroupSize) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(*in.GroupSize))
		if err != nil || n <= 0 {
			return nil, domain.Invalid("groupSize", "must be a positive integer")
		}
		groupSize = &n
	}
	return groupSize, nil
}

// verificationID builds the customer-facing reference code. The 4-digit
// suffix is not collision-checked; the code is display-only and the store's
// unique index is the backstop.
func verificationID(now time.Time) string {
	return fmt.Sprintf("RVD-%s-%d", now.UTC().Format("20060102"), 1000+rand.IntN(9000))
}
