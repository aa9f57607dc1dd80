package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/status"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
)

type MeHandler struct {
	store store.Store
}

func NewMeHandler(s store.Store) *MeHandler {
	return &MeHandler{store: s}
}

// GetMe returns the session user's profile, brand, billing summary and usage
// rollup. Profile and billing rows are provisioned on first access so a
// freshly signed-up user gets a complete payload without any setup step.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}
	email := sessionEmail(c)

	profile, err := h.store.GetProfile(userID)
	if errors.Is(err, store.ErrNotFound) {
		profile, err = h.store.CreateProfile(newProfile(userID, email))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile", Details: err.Error()})
		return
	}

	brand, err := h.store.GetBrand(userID)
	if errors.Is(err, store.ErrNotFound) {
		brand = &models.Brand{UserID: userID, PrimaryColors: []string{}}
		err = nil
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load brand", Details: err.Error()})
		return
	}
	if brand.PrimaryColors == nil {
		brand.PrimaryColors = []string{}
	}

	account, err := h.store.GetBillingAccount(userID)
	if errors.Is(err, store.ErrNotFound) {
		account, err = h.store.CreateBillingAccount(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load billing", Details: err.Error()})
		return
	}

	transactions, err := h.store.ListBillingTransactions(account.ID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load billing", Details: err.Error()})
		return
	}
	if transactions == nil {
		transactions = []models.BillingTransaction{}
	}

	projects, err := h.store.ListProjects(userID, "", nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load usage", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MeResponse{
		Profile: *profile,
		Brand:   *brand,
		Billing: models.BillingInfo{
			Plan:               account.Plan,
			CreditsBalance:     account.CreditsBalance,
			RecentTransactions: transactions,
		},
		Usage: usageRollup(projects),
	})
}

// newProfile derives the initial profile from the JWT claims alone. The
// member id is display-only and not guaranteed unique.
func newProfile(userID uuid.UUID, email string) *models.Profile {
	role := "customer"
	memberID := fmt.Sprintf("RV-%d-%04d", time.Now().Year(), 1000+rand.Intn(9000))

	fullName := ""
	if at := strings.Index(email, "@"); at > 0 {
		fullName = email[:at]
	}

	return &models.Profile{
		ID:       userID,
		Email:    email,
		FullName: fullName,
		Role:     &role,
		MemberID: &memberID,
	}
}

func usageRollup(projects []models.Project) models.UsageInfo {
	usage := models.UsageInfo{TotalProjects: len(projects)}
	for _, p := range projects {
		switch p.Status {
		case status.ProjectInReview, status.ProjectInProgress, status.ProjectAwaitingClient:
			usage.ActiveProjects++
		}
		usage.CompletedImages += p.ImagesCount
		if usage.LastActivity == nil || p.UpdatedAt.After(*usage.LastActivity) {
			t := p.UpdatedAt
			usage.LastActivity = &t
		}
	}
	return usage
}
