package domain

// DashboardStats is the derived admin-dashboard aggregate. It is recomputed
// on every request; freshness is "as of query time" only.
type DashboardStats struct {
	TotalInquiries    int       `json:"totalInquiries"`
	PendingInquiries  int       `json:"pendingInquiries"`
	ConfirmedBookings int       `json:"confirmedBookings"`
	TotalRevenue      int64     `json:"totalRevenue"`
	MonthlyGrowth     float64   `json:"monthlyGrowth"`
	RecentInquiries   []Inquiry `json:"recentInquiries"`
}
