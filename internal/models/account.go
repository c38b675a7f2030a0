package models

// CurrentUser is the locally signed-in profile. No password is ever stored.
type CurrentUser struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name"`
}

// SignInRequest is the sign-in form. The password is checked for presence
// only; sign-in is simulated.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest is the sign-up form.
type SignUpRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ContactMessage is the contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}
