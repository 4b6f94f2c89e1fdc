package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/coordination"
	"catalog/internal/domain"
	"catalog/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func webhookRouter(gate EventGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/webhook", WebhookHandler{Gate: gate}.Receive)
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookFreshAndDuplicateBothSucceed(t *testing.T) {
	gate := services.NewWebhookService(coordination.NewLocalStore(), zap.NewNop())
	r := webhookRouter(gate)

	w := postWebhook(r, `{"event_id":"E1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Webhook received"}`, w.Body.String())

	w = postWebhook(r, `{"event_id":"E1"}`)
	assert.Equal(t, http.StatusOK, w.Code, "the producer must still see success")
	assert.JSONEq(t, `{"message":"Duplicate event ignored"}`, w.Body.String())
}

func TestWebhookMissingEventID(t *testing.T) {
	gate := services.NewWebhookService(coordination.NewLocalStore(), zap.NewNop())
	r := webhookRouter(gate)

	for _, body := range []string{`{}`, `{"event_id":""}`, `not json`} {
		w := postWebhook(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func errUpstream() error {
	return domain.UpstreamUnavailableError{Upstream: "coordination store"}
}

type failingGate struct{ err error }

func (g failingGate) AdmitEvent(context.Context, string) (bool, error) { return false, g.err }

func TestWebhookStoreOutage(t *testing.T) {
	r := webhookRouter(failingGate{err: errUpstream()})

	w := postWebhook(r, `{"event_id":"E1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
