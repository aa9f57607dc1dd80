package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/mailer"
	"github.com/stevenshelley58-afk/redner-vault/internal/models"
	"github.com/stevenshelley58-afk/redner-vault/internal/ratelimit"
)

type ContactHandler struct {
	limiter *ratelimit.Limiter
	mailer  mailer.Mailer
}

func NewContactHandler(limiter *ratelimit.Limiter, m mailer.Mailer) *ContactHandler {
	return &ContactHandler{limiter: limiter, mailer: m}
}

// SubmitContact handles the public contact form. The rate limit is checked
// before the body is even parsed, validation failures all share one generic
// message, and a filled honeypot field gets the same success response a real
// submission does.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	ip := clientIP(c)
	if !h.limiter.Allow(ip) {
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "Too many requests. Please try again later."})
		return
	}

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input"})
		return
	}

	if strings.TrimSpace(req.Website) != "" {
		c.JSON(http.StatusOK, models.ContactResponse{Success: true})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input"})
		return
	}

	msg := mailer.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Referer: c.GetHeader("Referer"),
		IP:      ip,
	}
	if err := h.mailer.SendContact(msg); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, models.ContactResponse{Success: true})
}

// clientIP prefers the first X-Forwarded-For hop so the limiter keys on the
// caller rather than the proxy in front of the service.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
