package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stevenshelley58-afk/redner-vault/internal/models"
)

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
