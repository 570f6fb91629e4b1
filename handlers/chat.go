// File: handlers/chat.go
package handlers

import (
	"net/http"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/config"
	"github.com/itelsaia/agente-itelsa-ia/services/engine"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler bridges the webhook transport and the negotiation engine.
type ChatHandler struct {
	Engine engine.Engine
}

func NewChatHandler(eng engine.Engine) *ChatHandler {
	return &ChatHandler{Engine: eng}
}

// InboundMessage is the reduced webhook payload: sender identifier plus the
// raw text. The delivery envelope is unwrapped upstream.
type InboundMessage struct {
	From string `json:"from" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// VerifyWebhookHandler answers the subscription challenge used by the
// messaging platform to confirm webhook ownership.
func (h *ChatHandler) VerifyWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == config.AppConfig.WhatsAppVerifyToken {
		logger.Info("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}

	logger.Warn("webhook verification failed", zap.String("mode", mode))
	c.String(http.StatusForbidden, "Forbidden")
}

// HandleMessageHandler processes one inbound message through the engine and
// returns the conversational reply.
func (h *ChatHandler) HandleMessageHandler(c *gin.Context) {
	var msg InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	reply := h.Engine.HandleTurn(c.Request.Context(), msg.From, msg.Text)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// HealthHandler reports service liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "agente-itelsa-ia",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
