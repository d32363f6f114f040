// Package email implementa el envío de emails transaccionales vía Resend.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"github.com/spatrax/spatrax-api/internal/application/usecase"
	"github.com/spatrax/spatrax-api/pkg/config"
	"github.com/spatrax/spatrax-api/pkg/logger"
)

// ── Plantillas ────────────────────────────────────────────────────────────────

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Helvetica, Arial, sans-serif; max-width: 560px; margin: 0 auto; color: #1f2933;">
  <h2 style="color: #0d6e6e;">Welcome to SpaTrax, {{.FirstName}}!</h2>
  <p>
    Thanks for joining SpaTrax, the cleaning log platform that helps you remove
    the headache of massive paper trails.
  </p>
  <p>
    Log in any time to record cleanings, manage your team and export audit-ready
    reports in seconds.
  </p>
  <p style="color: #6b7280; font-size: 13px;">— The SpaTrax Team</p>
</div>
`))

var inviteTmpl = template.Must(template.New("invite").Parse(`
<div style="font-family: Helvetica, Arial, sans-serif; max-width: 560px; margin: 0 auto; color: #1f2933;">
  <h2 style="color: #0d6e6e;">{{.InviterName}} invited you to join {{.TeamName}}</h2>
  <p>Hi {{.InvitedName}},</p>
  <p>
    {{.InviterName}} ({{.InviterEmail}}) has invited you to join the
    <strong>{{.TeamName}}</strong> team on SpaTrax, the cleaning log platform
    that helps you remove the headache of massive paper trails.
  </p>
  <p style="text-align: center; margin: 28px 0;">
    <a href="{{.SignUpURL}}"
       style="background: #0d6e6e; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">
      Accept invitation
    </a>
  </p>
  <p style="color: #6b7280; font-size: 13px;">
    If you weren't expecting this invitation you can safely ignore this email.
  </p>
</div>
`))

// ── Sender ────────────────────────────────────────────────────────────────────

// ResendSender implementa usecase.EmailSender sobre la API de Resend.
type ResendSender struct {
	client  *resend.Client
	from    string
	baseURL string
	log     *logger.Logger
}

// NewResendSender construye el sender a partir de la configuración de email.
func NewResendSender(cfg config.EmailConfig, log *logger.Logger) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(cfg.ResendAPIKey),
		from:    cfg.From,
		baseURL: cfg.BaseURL,
		log:     log,
	}
}

// SendWelcome envía el email de bienvenida tras un sign-up exitoso.
func (s *ResendSender) SendWelcome(ctx context.Context, toEmail, firstName string) (string, error) {
	html, err := render(welcomeTmpl, map[string]string{"FirstName": firstName})
	if err != nil {
		return "", err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Welcome to SpaTrax!",
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("email: enviar bienvenida: %w", err)
	}

	s.log.Info().Str("to", toEmail).Str("message_id", sent.Id).Msg("email de bienvenida enviado")
	return sent.Id, nil
}

// SendInvite envía la invitación con el link de sign-up que enlaza la identidad
// nueva con el miembro pre-creado del equipo.
func (s *ResendSender) SendInvite(ctx context.Context, in usecase.InviteEmail) (string, error) {
	html, err := render(inviteTmpl, map[string]string{
		"InvitedName":  in.InvitedName,
		"InviterName":  in.InviterName,
		"InviterEmail": in.InviterEmail,
		"TeamName":     in.TeamName,
		"SignUpURL":    fmt.Sprintf("%s/sign-up?inviteId=%d", s.baseURL, in.InviteID),
	})
	if err != nil {
		return "", err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{in.ToEmail},
		Subject: fmt.Sprintf("%s invited you to join %s on SpaTrax", in.InviterName, in.TeamName),
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("email: enviar invitación: %w", err)
	}

	s.log.Info().Str("to", in.ToEmail).Str("message_id", sent.Id).Msg("email de invitación enviado")
	return sent.Id, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: renderizar plantilla %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
