package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// AuthService simulates account sign-in locally. No credentials are checked
// against a backend and no password is stored.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// SignIn records the user of the given email as signed in. The display name
// is the local part of the email.
//
// Returns:
//   - The signed-in user and a success notification
//   - A validation error for blank fields or a malformed email
func (s *AuthService) SignIn(ctx context.Context, req *models.SignInRequest) (*models.CurrentUser, models.Notification, error) {
	if isBlank(req.Email, req.Password) {
		utils.LogAuth(constants.LogEventSignIn, req.Email, false, "missing fields")
		return nil, models.Notification{}, utils.NewValidationError("form", constants.MsgFillAllFields)
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.LogAuth(constants.LogEventSignIn, req.Email, false, "invalid input")
		return nil, models.Notification{}, err
	}

	email := strings.TrimSpace(req.Email)
	user := &models.CurrentUser{Email: email, Name: utils.EmailLocalPart(email)}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, models.Notification{}, err
	}

	utils.LogAuth(constants.LogEventSignIn, user.Email, true, "")
	return user, models.Success(constants.MsgSignedIn), nil
}

// SignUp records a new user as signed in.
//
// Returns:
//   - The signed-in user and a success notification
//   - A validation error for blank fields, mismatched passwords, a password
//     shorter than the minimum or a malformed email, checked in that order
func (s *AuthService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.CurrentUser, models.Notification, error) {
	if isBlank(req.Name, req.Email, req.Password, req.ConfirmPassword) {
		utils.LogAuth(constants.LogEventSignUp, req.Email, false, "missing fields")
		return nil, models.Notification{}, utils.NewValidationError("form", constants.MsgFillAllFields)
	}
	if req.Password != req.ConfirmPassword {
		utils.LogAuth(constants.LogEventSignUp, req.Email, false, "password mismatch")
		return nil, models.Notification{}, utils.NewValidationError("confirmPassword", constants.MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(req.Password) < constants.MinPasswordLength {
		utils.LogAuth(constants.LogEventSignUp, req.Email, false, "password too short")
		return nil, models.Notification{}, utils.NewValidationError("password", constants.MsgPasswordTooShort)
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.LogAuth(constants.LogEventSignUp, req.Email, false, "invalid input")
		return nil, models.Notification{}, err
	}

	user := &models.CurrentUser{
		Email: strings.TrimSpace(req.Email),
		Name:  strings.TrimSpace(req.Name),
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, models.Notification{}, err
	}

	utils.LogAuth(constants.LogEventSignUp, user.Email, true, "")
	return user, models.Success(constants.MsgAccountCreated), nil
}

// SignOut forgets the signed-in user.
func (s *AuthService) SignOut(ctx context.Context) (models.Notification, error) {
	user, _ := s.userRepo.Load(ctx)
	if err := s.userRepo.Clear(ctx); err != nil {
		return models.Notification{}, err
	}

	email := ""
	if user != nil {
		email = user.Email
	}
	utils.LogAuth(constants.LogEventSignOut, email, true, "")
	return models.Info(constants.MsgSignedOut), nil
}

// CurrentUser returns the signed-in user.
//
// Returns:
//   - A not-found error when nobody is signed in
func (s *AuthService) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	user, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.New(utils.ErrNotFound, constants.StatusNotFound, constants.MsgNotSignedIn)
	}
	return user, nil
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
