package http

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/application/usecase"
	"github.com/spatrax/spatrax-api/pkg/logger"
)

// WebhookHandler recibe los eventos firmados del proveedor de identidad
// (público, autenticado por firma Svix en lugar de Bearer token).
type WebhookHandler struct {
	verifier   *svix.Webhook
	onboarding *usecase.OnboardingUseCase
	log        *logger.Logger
}

// NewWebhookHandler construye el handler. Falla si el signing secret no tiene
// el formato esperado por Svix (prefijo whsec_ + base64).
func NewWebhookHandler(signingSecret string, onboarding *usecase.OnboardingUseCase, log *logger.Logger) (*WebhookHandler, error) {
	verifier, err := svix.NewWebhook(signingSecret)
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{verifier: verifier, onboarding: onboarding, log: log}, nil
}

// HandleIdentityEvent godoc
// @Summary      Webhook del proveedor de identidad
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/webhooks/identity [post]
func (h *WebhookHandler) HandleIdentityEvent(c *fiber.Ctx) error {
	svixID := c.Get("svix-id")
	svixTimestamp := c.Get("svix-timestamp")
	svixSignature := c.Get("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_HEADERS", Message: "headers svix requeridos"})
	}

	headers := nethttp.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	payload := c.Body()
	if err := h.verifier.Verify(payload, headers); err != nil {
		h.log.Warn().Err(err).Str("svix_id", svixID).Msg("firma de webhook inválida")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	var event dto.IdentityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "payload inválido"})
	}

	if event.Type == "user.created" {
		if _, err := h.onboarding.HandleUserCreated(c.Context(), event.Data); err != nil {
			h.log.Error().Err(err).Str("svix_id", svixID).Msg("error procesando user.created")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error procesando el evento"})
		}
	}

	return c.SendString("Webhook received")
}
