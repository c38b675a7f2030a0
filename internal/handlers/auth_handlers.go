package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// AccountResponse carries the signed-in user and the notification to show.
type AccountResponse struct {
	User         *models.CurrentUser `json:"user,omitempty"`
	Notification models.Notification `json:"notification"`
}

// AuthHandler handles the simulated account routes
type AuthHandler struct {
	authService    AuthServiceInterface
	contactService ContactServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface, contactService ContactServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		contactService: contactService,
	}
}

// SignIn signs a user in.
//
// HTTP Method:
//   - POST
//
// URL Path:
//   - /api/auth/signin
//
// Responses:
//   - 200 OK: The signed-in user
//   - 400 Bad Request: Incomplete or malformed form
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, notification, err := h.authService.SignIn(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, AccountResponse{User: user, Notification: notification})
}

// SignUp creates an account and signs it in.
//
// Responses:
//   - 201 Created: The signed-in user
//   - 400 Bad Request: Incomplete form, mismatched or short password
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, notification, err := h.authService.SignUp(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, AccountResponse{User: user, Notification: notification})
}

// SignOut signs the current user out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	notification, err := h.authService.SignOut(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, AccountResponse{Notification: notification})
}

// GetCurrentUser returns the signed-in user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, user)
}

// SubmitContact accepts a contact form message
func (h *AuthHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := utils.DecodeJSON(r, &msg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	notification, err := h.contactService.Submit(r.Context(), &msg)
	if err != nil {
		if !utils.IsValidationError(err) {
			log.Warn().Err(err).Str("category", constants.LogCategoryContact).Msg("Contact message not delivered")
		}
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, notification)
}
