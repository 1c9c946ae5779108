package domain

import "time"

// Review is a customer-submitted package review. It is created unapproved
// and never shown publicly until an admin flips AdminApproved.
type Review struct {
	ID               int64     `json:"id"`
	PackageID        *string   `json:"package_id,omitempty"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerLocation *string   `json:"customer_location,omitempty"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Rating           int       `json:"rating"`
	TravelDate       *string   `json:"travel_date,omitempty"`
	AdminApproved    bool      `json:"admin_approved"`
	Verified         bool      `json:"verified"`
	Featured         bool      `json:"featured"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReviewFilter narrows the public review listing. Only approved reviews are
// ever returned regardless of filter.
type ReviewFilter struct {
	PackageID    *string
	FeaturedOnly bool
	Limit        int // 0 = no limit
}
