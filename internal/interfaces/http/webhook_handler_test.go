package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatrax/spatrax-api/internal/application/usecase"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	apphttp "github.com/spatrax/spatrax-api/internal/interfaces/http"
	"github.com/spatrax/spatrax-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos para el flujo de onboarding
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	created []*entity.User
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(r.created) + 1)
	r.created = append(r.created, u)
	return nil
}
func (r *stubUserRepo) GetByID(context.Context, int64) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) GetByAuthSubject(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(context.Context, *entity.User) error               { return nil }
func (r *stubUserRepo) ListByEstablishment(context.Context, int64) ([]*entity.User, error) {
	return nil, nil
}

type stubInviteRepo struct{}

var _ repository.InviteRepository = (*stubInviteRepo)(nil)

func (stubInviteRepo) Create(context.Context, *entity.Invite) error           { return nil }
func (stubInviteRepo) GetByID(context.Context, int64) (*entity.Invite, error) { return nil, nil }
func (stubInviteRepo) MarkAccepted(context.Context, int64) error              { return nil }

type stubEmail struct {
	welcomes int
	fail     bool
}

var _ usecase.EmailSender = (*stubEmail)(nil)

func (s *stubEmail) SendWelcome(context.Context, string, string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("proveedor caído")
	}
	s.welcomes++
	return "msg_1", nil
}
func (s *stubEmail) SendInvite(context.Context, usecase.InviteEmail) (string, error) {
	return "msg_2", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de firma Svix
// ──────────────────────────────────────────────────────────────────────────────

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func testSigningSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString(testSigningKey)
}

// signPayload calcula la firma v1 como lo hace el proveedor:
// HMAC-SHA256 sobre "{id}.{timestamp}.{payload}" con la clave decodificada.
func signPayload(msgID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, testSigningKey)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func buildWebhookApp(t *testing.T, userRepo *stubUserRepo, email *stubEmail) *fiber.App {
	t.Helper()
	onboarding := usecase.NewOnboardingUseCase(userRepo, stubInviteRepo{}, email, logger.Nop())
	handler, err := apphttp.NewWebhookHandler(testSigningSecret(), onboarding, logger.Nop())
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/api/webhooks/identity", handler.HandleIdentityEvent)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, payload []byte, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_SinHeadersSvixRetorna400(t *testing.T) {
	app := buildWebhookApp(t, &stubUserRepo{}, &stubEmail{})
	resp := postWebhook(t, app, []byte(`{}`), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhook_FirmaInvalidaRetorna400(t *testing.T) {
	app := buildWebhookApp(t, &stubUserRepo{}, &stubEmail{})
	resp := postWebhook(t, app, []byte(`{"type":"user.created"}`), map[string]string{
		"svix-id":        "msg_1",
		"svix-timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"svix-signature": "v1," + base64.StdEncoding.EncodeToString([]byte("firma-invalida-de-32-bytes-00000")),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_SIGNATURE")
}

func TestWebhook_UserCreatedValidoCreaUsuario(t *testing.T) {
	userRepo := &stubUserRepo{}
	email := &stubEmail{}
	app := buildWebhookApp(t, userRepo, email)

	payload := []byte(`{
		"type": "user.created",
		"data": {
			"id": "user_2abc",
			"first_name": "Ana",
			"last_name": "Ruiz",
			"email_addresses": [{"email_address": "ana@spa.com"}]
		}
	}`)
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	resp := postWebhook(t, app, payload, map[string]string{
		"svix-id":        "msg_1",
		"svix-timestamp": timestamp,
		"svix-signature": signPayload("msg_1", timestamp, payload),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, userRepo.created, 1)
	assert.Equal(t, "user_2abc", userRepo.created[0].AuthSubject)
	assert.Equal(t, "ana@spa.com", userRepo.created[0].Email)
	assert.Equal(t, 1, email.welcomes)
}

func TestWebhook_OtroTipoDeEventoSeIgnora(t *testing.T) {
	userRepo := &stubUserRepo{}
	app := buildWebhookApp(t, userRepo, &stubEmail{})

	payload := []byte(`{"type":"user.updated","data":{"id":"user_2abc"}}`)
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	resp := postWebhook(t, app, payload, map[string]string{
		"svix-id":        "msg_2",
		"svix-timestamp": timestamp,
		"svix-signature": signPayload("msg_2", timestamp, payload),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, userRepo.created)
}

func TestWebhook_FalloDownstreamRetorna500(t *testing.T) {
	app := buildWebhookApp(t, &stubUserRepo{}, &stubEmail{fail: true})

	payload := []byte(`{
		"type": "user.created",
		"data": {
			"id": "user_2abc",
			"first_name": "Ana",
			"email_addresses": [{"email_address": "ana@spa.com"}]
		}
	}`)
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	resp := postWebhook(t, app, payload, map[string]string{
		"svix-id":        "msg_3",
		"svix-timestamp": timestamp,
		"svix-signature": signPayload("msg_3", timestamp, payload),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
