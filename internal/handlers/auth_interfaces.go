package handlers

import (
	"context"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
)

// AuthServiceInterface defines methods required from the account service.
// Sign-in is simulated locally; no credentials leave the process.
type AuthServiceInterface interface {
	// SignIn records the user of the given email as signed in.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - req: The sign-in form
	//
	// Returns:
	//   - The signed-in user and the notification to show
	//   - A validation error if the form is incomplete or malformed
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.CurrentUser, models.Notification, error)

	// SignUp records a new user as signed in.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - req: The sign-up form
	//
	// Returns:
	//   - The signed-in user and the notification to show
	//   - A validation error if the form is incomplete, the passwords differ
	//     or the password is too short
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.CurrentUser, models.Notification, error)

	// SignOut forgets the signed-in user.
	SignOut(ctx context.Context) (models.Notification, error)

	// CurrentUser returns the signed-in user.
	//
	// Returns:
	//   - A not-found error when nobody is signed in
	CurrentUser(ctx context.Context) (*models.CurrentUser, error)
}

// ContactServiceInterface defines methods required from the contact service.
type ContactServiceInterface interface {
	// Submit validates and records a contact message.
	Submit(ctx context.Context, msg *models.ContactMessage) (models.Notification, error)
}
