package handlers

import (
	"mediabox/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "mediabox",
		"storage": h.storageDriver,
	})
}
