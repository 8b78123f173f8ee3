package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxis-platform/praxis-backend/internal/model"
)

// CampaignRepository handles campaign, donation, and comment data access.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new CampaignRepository.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, user_id, title, COALESCE(image, ''), COALESCE(description, ''), COALESCE(story, ''),
	goal_amount, raised_amount, status, starts_at, ends_at,
	organizer_type, organizer_name, COALESCE(organizer_doc, ''), organizer_email, COALESCE(organizer_phone, ''), created_at`

func scanCampaign(row pgx.Row) (*model.Campaign, error) {
	c := &model.Campaign{}
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Image, &c.Description, &c.Story,
		&c.GoalAmount, &c.RaisedAmount, &c.Status, &c.StartsAt, &c.EndsAt,
		&c.OrganizerType, &c.OrganizerName, &c.OrganizerDoc, &c.OrganizerEmail, &c.OrganizerPhone, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// GetByID retrieves a campaign by ID.
func (r *CampaignRepository) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
}

// ListActive retrieves active campaigns that have not yet ended.
func (r *CampaignRepository) ListActive(ctx context.Context, now time.Time) ([]model.Campaign, error) {
	return r.list(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
		 WHERE status = $1 AND ends_at > $2
		 ORDER BY ends_at`, model.CampaignStatusActive, now)
}

// ListByUser retrieves all campaigns owned by a user.
func (r *CampaignRepository) ListByUser(ctx context.Context, userID int) ([]model.Campaign, error) {
	return r.list(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *CampaignRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// Create inserts a campaign in pending status with nothing raised yet.
func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO campaigns
		 (user_id, title, image, description, story, goal_amount, raised_amount, status, starts_at, ends_at,
		  organizer_type, organizer_name, organizer_doc, organizer_email, organizer_phone)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, 0, $7, $8, $9,
		         $10, $11, NULLIF($12, ''), $13, NULLIF($14, ''))
		 RETURNING id, raised_amount, created_at`,
		c.UserID, c.Title, c.Image, c.Description, c.Story, c.GoalAmount, c.Status, c.StartsAt, c.EndsAt,
		c.OrganizerType, c.OrganizerName, c.OrganizerDoc, c.OrganizerEmail, c.OrganizerPhone,
	).Scan(&c.ID, &c.RaisedAmount, &c.CreatedAt)
	return translate(err)
}

// Update overwrites a campaign's owner-editable fields.
func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns
		 SET title = $1, image = NULLIF($2, ''), description = NULLIF($3, ''), story = NULLIF($4, ''),
		     goal_amount = $5, ends_at = $6
		 WHERE id = $7`,
		c.Title, c.Image, c.Description, c.Story, c.GoalAmount, c.EndsAt, c.ID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets a campaign's status.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseExpired marks every non-closed campaign past its end date as closed.
// Returns the number of campaigns transitioned.
func (r *CampaignRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1 WHERE ends_at < $2 AND status <> $1`,
		model.CampaignStatusClosed, now)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

// CreateDonation inserts the donation, its auto-generated comment, and the
// campaign's raised-amount bump in one transaction.
func (r *CampaignRepository) CreateDonation(ctx context.Context, d *model.Donation, comment *model.DonationComment) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO donations
			 (campaign_id, user_id, display_name, amount, currency, payment_method, platform_fee, comment)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
			 RETURNING id, created_at`,
			d.CampaignID, d.UserID, d.DisplayName, d.Amount, d.Currency, d.PaymentMethod, d.PlatformFee, d.Comment,
		).Scan(&d.ID, &d.CreatedAt); err != nil {
			return err
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO donation_comments (campaign_id, user_id, display_name, text, comment)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			 RETURNING id, created_at`,
			comment.CampaignID, comment.UserID, comment.DisplayName, comment.Text, comment.Comment,
		).Scan(&comment.ID, &comment.CreatedAt); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`UPDATE campaigns SET raised_amount = raised_amount + $1 WHERE id = $2`,
			d.Amount, d.CampaignID)
		return err
	})
	return translate(err)
}

// ListDonationsByCampaign retrieves a campaign's donations, newest first.
func (r *CampaignRepository) ListDonationsByCampaign(ctx context.Context, campaignID int) ([]model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, campaign_id, user_id, display_name, amount, currency, payment_method, platform_fee, COALESCE(comment, ''), created_at
		 FROM donations WHERE campaign_id = $1 ORDER BY created_at DESC`, campaignID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	donations := []model.Donation{}
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.UserID, &d.DisplayName, &d.Amount, &d.Currency, &d.PaymentMethod, &d.PlatformFee, &d.Comment, &d.CreatedAt); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// ListDonationsByOwner retrieves donations made to any campaign owned by a user.
func (r *CampaignRepository) ListDonationsByOwner(ctx context.Context, ownerID int) ([]model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.campaign_id, d.user_id, d.display_name, d.amount, d.currency, d.payment_method, d.platform_fee, COALESCE(d.comment, ''), d.created_at
		 FROM donations d
		 JOIN campaigns c ON d.campaign_id = c.id
		 WHERE c.user_id = $1
		 ORDER BY d.created_at DESC`, ownerID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	donations := []model.Donation{}
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.UserID, &d.DisplayName, &d.Amount, &d.Currency, &d.PaymentMethod, &d.PlatformFee, &d.Comment, &d.CreatedAt); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
