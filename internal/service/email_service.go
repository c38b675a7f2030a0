package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/config"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

const contactSubject = "New contact message from %s"

// Mailer delivers contact form messages.
type Mailer interface {
	SendContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// sendFunc sends a prepared message through SendGrid.
type sendFunc func(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error)

// EmailService forwards contact messages through SendGrid.
type EmailService struct {
	from      *mail.Email
	recipient *mail.Email
	send      sendFunc
}

// NewEmailService creates a new EmailService.
//
// Returns:
//   - an error when no API key or recipient is configured
func NewEmailService(cfg *config.ContactSettings) (*EmailService, error) {
	if !cfg.DeliveryEnabled() {
		return nil, fmt.Errorf("contact delivery requires a SendGrid API key and a recipient")
	}
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	return &EmailService{
		from:      mail.NewEmail(cfg.FromName, cfg.FromAddress),
		recipient: mail.NewEmail("", cfg.Recipient),
		send:      client.SendWithContext,
	}, nil
}

// SendContactMessage forwards msg to the configured recipient. Replies go
// to the sender of the message.
func (s *EmailService) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	subject := fmt.Sprintf(contactSubject, msg.Name)
	plainTextContent := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	htmlContent := fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)

	message := mail.NewSingleEmail(s.from, subject, s.recipient, plainTextContent, htmlContent)
	message.SetReplyTo(mail.NewEmail(msg.Name, msg.Email))

	response, err := s.send(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("category", constants.LogCategoryContact).Msg("Failed to send contact message")
		return err
	}
	if response.StatusCode >= 300 {
		log.Error().
			Int("status_code", response.StatusCode).
			Str("category", constants.LogCategoryContact).
			Msg("Contact message rejected by mail provider")
		return fmt.Errorf("mail provider returned status %d", response.StatusCode)
	}

	log.Info().
		Int("status_code", response.StatusCode).
		Str("category", constants.LogCategoryContact).
		Str("reply_to", utils.MaskEmail(msg.Email)).
		Msg("Contact message sent")
	return nil
}
