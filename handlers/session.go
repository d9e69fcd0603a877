package handlers

import (
	"net/http"

	"mediabox/logger"
	"mediabox/repositories"
	"mediabox/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashDanger  = "danger"
)

// sessionID returns the caller's session, issuing a signed session cookie when
// the request carries none or a tampered one.
func (h *Handler) sessionID(c *gin.Context) string {
	if raw, err := c.Cookie(h.sessionCookie); err == nil {
		if id, err := utils.ParseSessionToken(h.secretKey, raw); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	token, err := utils.GenerateSessionToken(h.secretKey, id)
	if err != nil {
		logger.Warnf("sign session cookie: %v", err)
		return id
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCookie, token, 0, "/", "", false, true)
	return id
}

// flash queues a message for the next dashboard render. Losing a flash is
// logged and otherwise ignored.
func (h *Handler) flash(c *gin.Context, category string, message string) {
	sid := h.sessionID(c)
	err := h.flashes.Push(c.Request.Context(), sid, repositories.Flash{Category: category, Message: message})
	if err != nil {
		logger.Warnf("push flash for session %s: %v", sid, err)
	}
}

func (h *Handler) popFlashes(c *gin.Context) []repositories.Flash {
	sid := h.sessionID(c)
	flashes, err := h.flashes.Pop(c.Request.Context(), sid)
	if err != nil {
		logger.Warnf("pop flashes for session %s: %v", sid, err)
		return nil
	}
	return flashes
}
