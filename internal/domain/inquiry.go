package domain

import "time"

// Inquiry statuses, admin-driven after creation.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusQuoted    = "quoted"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a recognized inquiry status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusContacted, StatusQuoted, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Inquiry is a customer's request for pricing/availability on a travel
// package. verification_id is the human-readable code shown to the customer
// and is immutable once assigned.
type Inquiry struct {
	ID                 int64     `json:"id"`
	VerificationID     string    `json:"verification_id"`
	CustomerName       string    `json:"customer_name"`
	CustomerEmail      string    `json:"customer_email"`
	CustomerPhone      string    `json:"customer_phone"`
	PackageID          string    `json:"package_id"`
	PackageName        string    `json:"package_name"`
	PackagePrice       float64   `json:"package_price"`
	Adults             int       `json:"adults"`
	Children           int       `json:"children"`
	GroupSize          *int      `json:"group_size,omitempty"`
	PreferredStartDate *string   `json:"preferred_start_date,omitempty"`
	SpecialRequests    *string   `json:"special_requests,omitempty"`
	Status             string    `json:"inquiry_status"`
	QuotedAmount       *int64    `json:"quoted_amount"`
	AdminNotes         *string   `json:"admin_notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// InquiryFilter narrows the admin inquiry listing.
type InquiryFilter struct {
	Status string // empty = all
	Search string // matches name, email, verification id, package name
}

// InquiryUpdate carries the admin-editable fields. Nil means "leave unchanged".
type InquiryUpdate struct {
	AdminNotes   *string
	QuotedAmount *int64
	Status       *string
}
