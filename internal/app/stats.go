package app

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"roamvista/internal/domain"
)

const recentInquiryCount = 5

type StatsService struct {
	repo domain.InquiryRepository
	now  func() time.Time
}

func NewStatsService(repo domain.InquiryRepository) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

// Dashboard recomputes the admin counters from scratch. The individual reads
// are order-independent and run concurrently; any store error fails the whole
// computation, no partial stats are returned.
func (s *StatsService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	now := s.now()
	last30 := now.Add(-30 * 24 * time.Hour)
	prev60 := now.Add(-60 * 24 * time.Hour)

	var (
		total, pending   int
		last30N, prev30N int
		quotes           []*int64
		recent           []domain.Inquiry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.repo.CountInquiries(gctx)
		return
	})
	g.Go(func() (err error) {
		pending, err = s.repo.CountInquiriesByStatus(gctx, domain.StatusPending)
		return
	})
	g.Go(func() (err error) {
		quotes, err = s.repo.ConfirmedQuotes(gctx)
		return
	})
	g.Go(func() (err error) {
		last30N, err = s.repo.CountInquiriesSince(gctx, last30)
		return
	})
	g.Go(func() (err error) {
		prev30N, err = s.repo.CountInquiriesBetween(gctx, prev60, last30)
		return
	})
	g.Go(func() (err error) {
		recent, err = s.repo.RecentInquiries(gctx, recentInquiryCount)
		return
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}

	var revenue int64
	for _, q := range quotes {
		if q != nil {
			revenue += *q
		}
	}

	if recent == nil {
		recent = []domain.Inquiry{}
	}
	return domain.DashboardStats{
		TotalInquiries:    total,
		PendingInquiries:  pending,
		ConfirmedBookings: len(quotes),
		TotalRevenue:      revenue,
		MonthlyGrowth:     monthlyGrowth(last30N, prev30N),
		RecentInquiries:   recent,
	}, nil
}

// monthlyGrowth is the percent change between the trailing 30-day window and
// the 30 days before it, rounded to one decimal. A zero prior window yields 0.
func monthlyGrowth(last30, prev30 int) float64 {
	if prev30 <= 0 {
		return 0
	}
	growth := float64(last30-prev30) / float64(prev30) * 100
	return math.Round(growth*10) / 10
}
