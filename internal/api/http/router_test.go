package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/flowbit/helpdesk/internal/api/http"
	"github.com/flowbit/helpdesk/internal/api/http/handlers"
	"github.com/flowbit/helpdesk/internal/auth"
	"github.com/flowbit/helpdesk/internal/config"
	"github.com/flowbit/helpdesk/internal/events"
	"github.com/flowbit/helpdesk/internal/observability"
	"github.com/flowbit/helpdesk/internal/repository/repotest"
	"github.com/flowbit/helpdesk/internal/service"
)

const webhookSecret = "test-webhook-secret"

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	users := repotest.NewUserRepo()
	tenants := repotest.NewTenantRepo()
	tickets := repotest.NewTicketRepo()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, service.AuthDependencies{UserRepo: users, TenantRepo: tenants})

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
		Dispatcher: dispatcher,
	})

	screenService, err := service.NewScreenService("no-registry.json", logger)
	require.NoError(t, err)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Screens:        handlers.NewScreensHandler(screenService),
		Tenants:        handlers.NewTenantsHandler(tenants),
		Webhook:        handlers.NewWebhookHandler(ticketService, webhookSecret),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), users),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email, password, tenantID, role string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": password, "tenantId": tenantID, "role": role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	token := data["auth"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginCreateAndTenantIsolation(t *testing.T) {
	app := newTestServer(t)

	tokenX := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")
	tokenY := registerAndLogin(t, app, "u2@y.com", "pw123456", "RetailGmbH", "")

	// Create with a spoofed tenantId in the body; the server must force the
	// creator's tenant regardless.
	resp, body := doJSON(t, app, http.MethodPost, "/api/tickets", tokenX, map[string]any{
		"title":       "A",
		"description": "B",
		"tenantId":    "RetailGmbH",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticket := body["data"].(map[string]any)
	assert.Equal(t, "LogisticsCo", ticket["tenantId"])
	assert.Equal(t, "pending", ticket["status"])
	ticketID := ticket["id"].(string)

	// The other tenant's listing never includes it.
	resp, body = doJSON(t, app, http.MethodGet, "/api/tickets", tokenY, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])

	// Direct fetch from the other tenant: 404, not 403.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/tickets/"+ticketID, tokenY, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/tickets/"+ticketID, tokenX, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ticketID, body["data"].(map[string]any)["id"])
}

func TestStatusTransitionAndCrossTenantUpdate(t *testing.T) {
	app := newTestServer(t)

	tokenX := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")
	tokenY := registerAndLogin(t, app, "u2@y.com", "pw123456", "RetailGmbH", "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/tickets", tokenX, map[string]any{
		"title": "A", "description": "B",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := body["data"].(map[string]any)
	ticketID := created["id"].(string)
	createdUpdatedAt, err := time.Parse(time.RFC3339Nano, created["updatedAt"].(string))
	require.NoError(t, err)

	// Cross-tenant status update: 404 and record untouched.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/tickets/"+ticketID+"/status", tokenY, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/tickets/"+ticketID, tokenX, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["data"].(map[string]any)["status"])

	// Owner transition succeeds and advances updatedAt.
	resp, body = doJSON(t, app, http.MethodPut, "/api/tickets/"+ticketID+"/status", tokenX, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["data"].(map[string]any)
	assert.Equal(t, "completed", updated["status"])
	updatedAt, err := time.Parse(time.RFC3339Nano, updated["updatedAt"].(string))
	require.NoError(t, err)
	assert.True(t, updatedAt.After(createdUpdatedAt))
}

func TestInvalidStatusRejected(t *testing.T) {
	app := newTestServer(t)
	token := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/tickets", token, map[string]any{
		"title": "A", "description": "B",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticketID := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, http.MethodPut, "/api/tickets/"+ticketID+"/status", token, map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid status")

	resp, body = doJSON(t, app, http.MethodGet, "/api/tickets/"+ticketID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["data"].(map[string]any)["status"])
}

func TestMeAndUnauthenticatedAccess(t *testing.T) {
	app := newTestServer(t)
	token := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]any)
	assert.Equal(t, "u1@x.com", me["email"])
	assert.Equal(t, "LogisticsCo", me["tenantId"])
	assert.NotContains(t, me, "passwordHash")
	assert.NotContains(t, me, "password")

	for _, path := range []string{"/api/auth/me", "/api/tickets", "/api/screens"} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func TestTenantDirectoryRequiresAdmin(t *testing.T) {
	app := newTestServer(t)

	userToken := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")
	adminToken := registerAndLogin(t, app, "admin@x.com", "pw123456", "LogisticsCo", "admin")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/tenants", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/tenants", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 3)
}

func TestTicketDeletion(t *testing.T) {
	app := newTestServer(t)

	tokenX := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")
	tokenY := registerAndLogin(t, app, "u2@y.com", "pw123456", "RetailGmbH", "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/tickets", tokenX, map[string]any{
		"title": "A", "description": "B",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticketID := body["data"].(map[string]any)["id"].(string)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/tickets/"+ticketID, tokenY, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/tickets/"+ticketID, tokenX, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/tickets/"+ticketID, tokenX, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWorkflowWebhook(t *testing.T) {
	app := newTestServer(t)
	token := registerAndLogin(t, app, "u1@x.com", "pw123456", "LogisticsCo", "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/tickets", token, map[string]any{
		"title": "A", "description": "B",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticketID := body["data"].(map[string]any)["id"].(string)

	// Wrong secret is rejected before any lookup.
	req := httptest.NewRequest(http.MethodPost, "/webhook/ticket-done", bytes.NewReader([]byte(`{"ticketId":"`+ticketID+`"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "wrong")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/webhook/ticket-done", bytes.NewReader([]byte(`{"ticketId":"`+ticketID+`"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", webhookSecret)
	raw, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, raw.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/tickets/"+ticketID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", body["data"].(map[string]any)["status"])
}
