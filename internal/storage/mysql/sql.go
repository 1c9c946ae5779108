package mysql

const inquiryCols = `
  id,
  verification_id,
  customer_name,
  customer_email,
  customer_phone,
  package_id,
  package_name,
  package_price,
  adults,
  children,
  group_size,
  preferred_start_date,
  special_requests,
  inquiry_status,
  quoted_amount,
  admin_notes,
  created_at`

const insertInquirySQL = `
INSERT INTO inquiries
  (verification_id, customer_name, customer_email, customer_phone,
   package_id, package_name, package_price, group_size,
   preferred_start_date, special_requests, inquiry_status, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const findDuplicateSQL = `
SELECT verification_id
FROM inquiries
WHERE customer_email = ? AND package_id = ? AND created_at >= ?
ORDER BY created_at DESC, id DESC
LIMIT 1
`

const getInquirySQL = `SELECT` + inquiryCols + `
FROM inquiries
WHERE id = ?
`

const recentInquiriesSQL = `SELECT` + inquiryCols + `
FROM inquiries
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const (
	countInquiriesSQL        = `SELECT COUNT(*) FROM inquiries`
	countInquiriesByStatus   = `SELECT COUNT(*) FROM inquiries WHERE inquiry_status = ?`
	countInquiriesSinceSQL   = `SELECT COUNT(*) FROM inquiries WHERE created_at >= ?`
	countInquiriesBetweenSQL = `SELECT COUNT(*) FROM inquiries WHERE created_at >= ? AND created_at < ?`
	confirmedQuotesSQL       = `SELECT quoted_amount FROM inquiries WHERE inquiry_status = 'confirmed'`
	inquiryExistsSQL         = `SELECT 1 FROM inquiries WHERE id = ?`
)

const insertReviewSQL = `
INSERT INTO customer_reviews
  (package_id, customer_name, customer_email, customer_location,
   title, content, rating, travel_date, admin_approved, verified)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const reviewCols = `
  id,
  package_id,
  customer_name,
  customer_email,
  customer_location,
  title,
  content,
  rating,
  travel_date,
  admin_approved,
  verified,
  featured,
  created_at`

const getReviewSQL = `SELECT` + reviewCols + `
FROM customer_reviews
WHERE id = ?
`

// listApprovedReviewsSQL is the base of the public listing; the repo appends
// optional package/featured predicates and a LIMIT.
const listApprovedReviewsSQL = `SELECT` + reviewCols + `
FROM customer_reviews
WHERE admin_approved = 1`

const enqueueNotificationSQL = `
INSERT INTO notification_queue
  (notification_type, recipient_email, title, message, review_id, status)
VALUES
  (?, ?, ?, ?, ?, 'pending')
`

const pendingNotificationsSQL = `
SELECT id, notification_type, recipient_email, title, message, review_id, status, attempts, created_at, sent_at
FROM notification_queue
WHERE status = 'pending'
ORDER BY created_at, id
LIMIT ?
`

const (
	markNotificationSentSQL = `
UPDATE notification_queue
SET status = 'sent', attempts = attempts + 1, sent_at = CURRENT_TIMESTAMP
WHERE id = ?`

	markNotificationFailedSQL = `
UPDATE notification_queue
SET status = 'failed', attempts = attempts + 1
WHERE id = ?`
)
