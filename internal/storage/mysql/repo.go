package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"roamvista/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- inquiries ----

func (r *Repo) InsertInquiry(ctx context.Context, q domain.Inquiry) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertInquirySQL,
		q.VerificationID,
		q.CustomerName,
		q.CustomerEmail,
		q.CustomerPhone,
		q.PackageID,
		q.PackageName,
		q.PackagePrice,
		valInt(q.GroupSize),
		valStr(q.PreferredStartDate),
		valStr(q.SpecialRequests),
		q.Status,
		q.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) FindDuplicateSince(ctx context.Context, email, packageID string, since time.Time) (string, bool, error) {
	var vid string
	err := r.db.QueryRowContext(ctx, findDuplicateSQL, email, packageID, since.UTC()).Scan(&vid)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return vid, true, nil
}

func (r *Repo) GetInquiry(ctx context.Context, id int64) (domain.Inquiry, error) {
	row := r.db.QueryRowContext(ctx, getInquirySQL, id)
	q, err := scanInquiry(row)
	if err == sql.ErrNoRows {
		return domain.Inquiry{}, domain.ErrNotFound
	}
	return q, err
}

func (r *Repo) ListInquiries(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error) {
	query := `SELECT` + inquiryCols + ` FROM inquiries`
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "inquiry_status = ?")
		args = append(args, f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		conds = append(conds, "(customer_name LIKE ? OR customer_email LIKE ? OR verification_id LIKE ? OR package_name LIKE ?)")
		args = append(args, like, like, like, like)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateInquiry(ctx context.Context, id int64, u domain.InquiryUpdate) error {
	var sets []string
	var args []any
	if u.AdminNotes != nil {
		sets = append(sets, "admin_notes = ?")
		args = append(args, *u.AdminNotes)
	}
	if u.QuotedAmount != nil {
		sets = append(sets, "quoted_amount = ?")
		args = append(args, *u.QuotedAmount)
	}
	if u.Status != nil {
		sets = append(sets, "inquiry_status = ?")
		args = append(args, *u.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, "UPDATE inquiries SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	// Zero rows affected is ambiguous in MySQL (missing row vs identical
	// values), so confirm existence before reporting not-found.
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, inquiryExistsSQL, id).Scan(&one); err == sql.ErrNoRows {
			return domain.ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) CountInquiries(ctx context.Context) (int, error) {
	return r.countRow(ctx, countInquiriesSQL)
}

func (r *Repo) CountInquiriesByStatus(ctx context.Context, status string) (int, error) {
	return r.countRow(ctx, countInquiriesByStatus, status)
}

func (r *Repo) CountInquiriesSince(ctx context.Context, since time.Time) (int, error) {
	return r.countRow(ctx, countInquiriesSinceSQL, since.UTC())
}

func (r *Repo) CountInquiriesBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.countRow(ctx, countInquiriesBetweenSQL, from.UTC(), to.UTC())
}

func (r *Repo) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) ConfirmedQuotes(ctx context.Context) ([]*int64, error) {
	rows, err := r.db.QueryContext(ctx, confirmedQuotesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*int64{}
	for rows.Next() {
		var amount sql.NullInt64
		if err := rows.Scan(&amount); err != nil {
			return nil, err
		}
		if amount.Valid {
			a := amount.Int64
			out = append(out, &a)
		} else {
			out = append(out, nil)
		}
	}
	return out, rows.Err()
}

func (r *Repo) RecentInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, recentInquiriesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ---- reviews ----

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		valStr(rv.PackageID),
		rv.CustomerName,
		rv.CustomerEmail,
		valStr(rv.CustomerLocation),
		rv.Title,
		rv.Content,
		rv.Rating,
		valStr(rv.TravelDate),
		rv.AdminApproved,
		rv.Verified,
	)
	if err != nil {
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	return r.getReview(ctx, id)
}

func (r *Repo) getReview(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, getReviewSQL, id))
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, err
}

func (r *Repo) ListApprovedReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	query := listApprovedReviewsSQL
	var args []any
	if f.PackageID != nil {
		query += " AND package_id = ?"
		args = append(args, *f.PackageID)
	}
	if f.FeaturedOnly {
		query += " AND featured = 1"
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ---- notification queue ----

func (r *Repo) EnqueueNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, enqueueNotificationSQL,
		n.Type,
		n.RecipientEmail,
		n.Title,
		n.Message,
		valInt64(n.ReviewID),
	)
	return err
}

func (r *Repo) PendingNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, pendingNotificationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var reviewID sql.NullInt64
		var sentAt sql.NullTime
		if err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.RecipientEmail,
			&n.Title,
			&n.Message,
			&reviewID,
			&n.Status,
			&n.Attempts,
			&n.CreatedAt,
			&sentAt,
		); err != nil {
			return nil, err
		}
		if reviewID.Valid {
			id := reviewID.Int64
			n.ReviewID = &id
		}
		if sentAt.Valid {
			t := sentAt.Time
			n.SentAt = &t
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) MarkNotificationSent(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, markNotificationSentSQL, id)
	return err
}

func (r *Repo) MarkNotificationFailed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, markNotificationFailedSQL, id)
	return err
}

// ---- row scanning ----

type rowScanner interface{ Scan(dst ...any) error }

func scanInquiry(row rowScanner) (domain.Inquiry, error) {
	var q domain.Inquiry
	var (
		groupSize       sql.NullInt64
		startDate       sql.NullString
		specialRequests sql.NullString
		quotedAmount    sql.NullInt64
		adminNotes      sql.NullString
	)
	if err := row.Scan(
		&q.ID,
		&q.VerificationID,
		&q.CustomerName,
		&q.CustomerEmail,
		&q.CustomerPhone,
		&q.PackageID,
		&q.PackageName,
		&q.PackagePrice,
		&q.Adults,
		&q.Children,
		&groupSize,
		&startDate,
		&specialRequests,
		&q.Status,
		&quotedAmount,
		&adminNotes,
		&q.CreatedAt,
	); err != nil {
		return domain.Inquiry{}, err
	}
	if groupSize.Valid {
		n := int(groupSize.Int64)
		q.GroupSize = &n
	}
	if startDate.Valid {
		s := startDate.String
		q.PreferredStartDate = &s
	}
	if specialRequests.Valid {
		s := specialRequests.String
		q.SpecialRequests = &s
	}
	if quotedAmount.Valid {
		a := quotedAmount.Int64
		q.QuotedAmount = &a
	}
	if adminNotes.Valid {
		s := adminNotes.String
		q.AdminNotes = &s
	}
	return q, nil
}

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	var (
		packageID  sql.NullString
		location   sql.NullString
		travelDate sql.NullString
	)
	if err := row.Scan(
		&rv.ID,
		&packageID,
		&rv.CustomerName,
		&rv.CustomerEmail,
		&location,
		&rv.Title,
		&rv.Content,
		&rv.Rating,
		&travelDate,
		&rv.AdminApproved,
		&rv.Verified,
		&rv.Featured,
		&rv.CreatedAt,
	); err != nil {
		return domain.Review{}, err
	}
	if packageID.Valid {
		s := packageID.String
		rv.PackageID = &s
	}
	if location.Valid {
		s := location.String
		rv.CustomerLocation = &s
	}
	if travelDate.Valid {
		s := travelDate.String
		rv.TravelDate = &s
	}
	return rv, nil
}
