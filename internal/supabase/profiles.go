package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
)

func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := d.db.QueryRow(`
		SELECT id, email, full_name, phone_number, company_name, country, timezone, role, member_id, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, userID).Scan(
		&p.ID, &p.Email, &p.FullName, &p.PhoneNumber, &p.CompanyName,
		&p.Country, &p.Timezone, &p.Role, &p.MemberID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (d *DatabaseClient) CreateProfile(p *models.Profile) (*models.Profile, error) {
	var created models.Profile
	err := d.db.QueryRow(`
		INSERT INTO profiles (id, email, full_name, phone_number, company_name, country, timezone, role, member_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, email, full_name, phone_number, company_name, country, timezone, role, member_id, created_at, updated_at
	`, p.ID, p.Email, p.FullName, p.PhoneNumber, p.CompanyName, p.Country, p.Timezone, p.Role, p.MemberID).Scan(
		&created.ID, &created.Email, &created.FullName, &created.PhoneNumber, &created.CompanyName,
		&created.Country, &created.Timezone, &created.Role, &created.MemberID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &created, nil
}

func (d *DatabaseClient) GetBrand(userID uuid.UUID) (*models.Brand, error) {
	var b models.Brand
	err := d.db.QueryRow(`
		SELECT id, user_id, brand_name, brand_summary, tone_of_voice, visual_style, font_preferences, notes, logo_url, primary_colors, created_at, updated_at
		FROM brands
		WHERE user_id = $1
	`, userID).Scan(
		&b.ID, &b.UserID, &b.BrandName, &b.BrandSummary, &b.ToneOfVoice,
		&b.VisualStyle, &b.FontPreferences, &b.Notes, &b.LogoURL,
		pq.Array(&b.PrimaryColors), &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (d *DatabaseClient) GetBillingAccount(userID uuid.UUID) (*models.BillingAccount, error) {
	var b models.BillingAccount
	err := d.db.QueryRow(`
		SELECT id, user_id, plan, credits_balance, created_at, updated_at
		FROM billing_accounts
		WHERE user_id = $1
	`, userID).Scan(&b.ID, &b.UserID, &b.Plan, &b.CreditsBalance, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (d *DatabaseClient) CreateBillingAccount(userID uuid.UUID) (*models.BillingAccount, error) {
	var b models.BillingAccount
	err := d.db.QueryRow(`
		INSERT INTO billing_accounts (id, user_id, credits_balance)
		VALUES ($1, $2, 0)
		RETURNING id, user_id, plan, credits_balance, created_at, updated_at
	`, uuid.New(), userID).Scan(&b.ID, &b.UserID, &b.Plan, &b.CreditsBalance, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create billing account: %w", err)
	}
	return &b, nil
}

func (d *DatabaseClient) ListBillingTransactions(accountID uuid.UUID, limit int) ([]models.BillingTransaction, error) {
	rows, err := d.db.Query(`
		SELECT id, billing_account_id, delta, reason, notes, created_at
		FROM billing_transactions
		WHERE billing_account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.BillingTransaction, 0)
	for rows.Next() {
		var tx models.BillingTransaction
		if err := rows.Scan(&tx.ID, &tx.BillingAccountID, &tx.Delta, &tx.Reason, &tx.Notes, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan billing transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
