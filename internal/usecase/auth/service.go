package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
	"github.com/salescoach-dev/sales-coach/pkg/jwt"
	"github.com/salescoach-dev/sales-coach/pkg/sms"
)

const (
	bcryptCost      = 12
	twoFactorWindow = 5 * time.Minute
)

// CodeSender delivers a 2FA verification code to a phone number
type CodeSender interface {
	SendVerificationCode(ctx context.Context, phone, code string) error
}

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Service handles registration, login and the SMS two-factor step. Login
// issues a provisional token; coaching endpoints require the verified token
// issued after the code check.
type Service struct {
	userRepo   repositories.UserRepository
	jwtManager *jwt.Manager
	sender     CodeSender
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(userRepo repositories.UserRepository, jwtManager *jwt.Manager, sender CodeSender, logger *zap.Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		sender:     sender,
		logger:     logger,
	}
}

// RegisterInput holds the fields collected at signup
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Company    string
	Department string
	Position   string
	Phone      string
}

// Register creates a new account with a hashed password
func (s *Service) Register(ctx context.Context, input RegisterInput) (*entities.PublicUser, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists(input.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	user := entities.NewUser(input.Email, string(hash), input.Name, input.Company, input.Department, input.Position, input.Phone)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailAlreadyUsed) {
			return nil, apperrors.ErrUserAlreadyExists(input.Email)
		}
		return nil, apperrors.ErrInternal(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user.ToPublic(), nil
}

// LoginResult is the outcome of a password check: a provisional token plus
// whether a 2FA code was sent.
type LoginResult struct {
	ProvisionalToken string `json:"provisional_token"`
	TwoFactorSent    bool   `json:"two_factor_sent"`
	MaskedPhone      string `json:"masked_phone"`
}

// Login verifies the password and sends a fresh 2FA code. The returned
// token is not two-factor verified and only grants access to the verify
// endpoint.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden("Account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}

	sent, err := s.issueTwoFactorCode(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, false)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	return &LoginResult{
		ProvisionalToken: token,
		TwoFactorSent:    sent,
		MaskedPhone:      sms.MaskPhone(user.Phone),
	}, nil
}

// ResendTwoFactorCode issues a fresh code, invalidating the prior one
func (s *Service) ResendTwoFactorCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrUserNotFound()
	}
	_, err = s.issueTwoFactorCode(ctx, user)
	return err
}

// VerifyTwoFactorCode checks the submitted code and, on success, issues the
// fully verified token pair.
func (s *Service) VerifyTwoFactorCode(ctx context.Context, userID uuid.UUID, code string) (*TokenPair, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound()
	}

	if err := user.ConsumeTwoFactorCode(code, time.Now()); err != nil {
		switch {
		case errors.Is(err, entities.ErrTwoFactorCodeExpired):
			return nil, apperrors.ErrTwoFactorCodeExpired()
		default:
			return nil, apperrors.ErrTwoFactorCodeInvalid()
		}
	}

	user.UpdateLastLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	return s.issueTokenPair(user)
}

// RefreshTokens exchanges a valid refresh token for a new pair
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound()
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden("Account is disabled")
	}

	return s.issueTokenPair(user)
}

// ChangePassword verifies the current password before storing a new hash
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrUserNotFound()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.ErrInvalidCredentials()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return apperrors.ErrInternal(err)
	}

	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.ErrInternal(err)
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

// GetProfile returns the public view of a user
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound()
	}
	return user.ToPublic(), nil
}

// ProfileInput holds the editable profile fields
type ProfileInput struct {
	Name       string
	Company    string
	Department string
	Position   string
	Phone      string
}

// UpdateProfile overwrites the editable profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*entities.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound()
	}

	user.Name = input.Name
	user.Company = input.Company
	user.Department = input.Department
	user.Position = input.Position
	user.Phone = input.Phone

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return user.ToPublic(), nil
}

// issueTwoFactorCode generates, stores and sends a fresh code. A send
// failure is reported but the code stays stored so a resend can recover.
func (s *Service) issueTwoFactorCode(ctx context.Context, user *entities.User) (bool, error) {
	code, err := sms.GenerateCode()
	if err != nil {
		return false, apperrors.ErrInternal(err)
	}

	user.SetTwoFactorCode(code, time.Now().Add(twoFactorWindow))
	if err := s.userRepo.Update(ctx, user); err != nil {
		return false, apperrors.ErrInternal(err)
	}

	if err := s.sender.SendVerificationCode(ctx, user.Phone, code); err != nil {
		s.logger.Error("failed to send 2FA code",
			zap.String("user_id", user.ID.String()),
			zap.String("phone", sms.MaskPhone(user.Phone)),
			zap.Error(err))
		return false, apperrors.ErrTwoFactorSendFailed(err)
	}

	return true, nil
}

func (s *Service) issueTokenPair(user *entities.User) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, true)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}
