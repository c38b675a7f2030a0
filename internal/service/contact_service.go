package service

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// ContactService accepts contact form messages and forwards them through a
// Mailer. Without a mailer messages are only logged.
type ContactService struct {
	mailer Mailer
}

// NewContactService creates a new ContactService. mailer may be nil.
func NewContactService(mailer Mailer) *ContactService {
	return &ContactService{mailer: mailer}
}

// Submit validates and delivers a contact message.
func (s *ContactService) Submit(ctx context.Context, msg *models.ContactMessage) (models.Notification, error) {
	if isBlank(msg.Name, msg.Email, msg.Message) {
		return models.Notification{}, utils.NewValidationError("form", constants.MsgFillAllFields)
	}
	if err := utils.ValidateStruct(msg); err != nil {
		return models.Notification{}, err
	}

	log.Info().
		Str("category", constants.LogCategoryContact).
		Str("name", msg.Name).
		Str("email", utils.MaskEmail(msg.Email)).
		Int("message_length", utf8.RuneCountInString(msg.Message)).
		Bool("forwarded", s.mailer != nil).
		Msg("Contact message received")

	if s.mailer != nil {
		if err := s.mailer.SendContactMessage(ctx, msg); err != nil {
			return models.Notification{}, utils.NewWithDevInfo(utils.ErrInternalServer, constants.StatusInternalServerError, constants.MsgContactFailed, err.Error())
		}
	}

	return models.Success(constants.MsgContactSent), nil
}
