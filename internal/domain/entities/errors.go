package entities

import "errors"

// Conversation errors
var (
	ErrEmptyConversation = errors.New("conversation has no turns")
	ErrInvalidTurnRole   = errors.New("turn role must be user or assistant")
	ErrEmptyTurnContent  = errors.New("turn content is empty")
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserNotActive    = errors.New("user is not active")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

// Two-factor errors
var (
	ErrTwoFactorCodeMissing  = errors.New("no verification code outstanding")
	ErrTwoFactorCodeExpired  = errors.New("verification code expired")
	ErrTwoFactorCodeMismatch = errors.New("verification code mismatch")
)

// Tenant errors
var (
	ErrTenantNotFound = errors.New("tenant not found")
)
