package auth

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
	Company    string `json:"company" validate:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Phone      string `json:"phone" validate:"required,phone"`
}

// LoginRequest is the password-check payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyCodeRequest carries the 6-digit SMS code
type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// RefreshRequest exchanges a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest rotates the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UpdateProfileRequest overwrites the editable profile fields
type UpdateProfileRequest struct {
	Name       string `json:"name" validate:"required"`
	Company    string `json:"company" validate:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Phone      string `json:"phone" validate:"required,phone"`
}
