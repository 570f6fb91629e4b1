package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/itelsaia/agente-itelsa-ia/config"

	"github.com/gin-gonic/gin"
)

type echoEngine struct{}

func (echoEngine) HandleTurn(ctx context.Context, userID, text string) string {
	return "eco " + userID + ": " + text
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(echoEngine{})
	r.GET("/webhook", h.VerifyWebhookHandler)
	r.POST("/webhook", h.HandleMessageHandler)
	return r
}

func TestVerifyWebhookAcceptsValidToken(t *testing.T) {
	config.AppConfig.WhatsAppVerifyToken = "secreto"
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secreto&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "12345" {
		t.Errorf("body = %q, want the echoed challenge", w.Body.String())
	}
}

func TestVerifyWebhookRejectsBadToken(t *testing.T) {
	config.AppConfig.WhatsAppVerifyToken = "secreto"
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=equivocado&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestHandleMessageRoundTrip(t *testing.T) {
	r := newTestRouter()

	body := strings.NewReader(`{"from":"573001112233","text":"hola"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "eco 573001112233: hola") {
		t.Errorf("body = %q, want echoed reply", w.Body.String())
	}
}

func TestHandleMessageRejectsMissingFields(t *testing.T) {
	r := newTestRouter()

	body := strings.NewReader(`{"from":"573001112233"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
