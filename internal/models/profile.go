package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber *string   `json:"phone_number"`
	CompanyName *string   `json:"company_name"`
	Country     *string   `json:"country"`
	Timezone    *string   `json:"timezone"`
	Role        *string   `json:"role"`
	MemberID    *string   `json:"member_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Brand struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	BrandName       *string   `json:"brand_name"`
	BrandSummary    *string   `json:"brand_summary"`
	ToneOfVoice     *string   `json:"tone_of_voice"`
	VisualStyle     *string   `json:"visual_style"`
	FontPreferences *string   `json:"font_preferences"`
	Notes           *string   `json:"notes"`
	LogoURL         *string   `json:"logo_url"`
	PrimaryColors   []string  `json:"primary_colors"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BillingAccount struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Plan           *string   `json:"plan"`
	CreditsBalance int       `json:"credits_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BillingTransaction struct {
	ID               uuid.UUID `json:"id"`
	BillingAccountID uuid.UUID `json:"billing_account_id"`
	Delta            int       `json:"delta"`
	Reason           *string   `json:"reason"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}
