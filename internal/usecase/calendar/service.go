package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	apperrors "github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/external/googlecal"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/external/oauth"
)

// EventLister is the calendar API boundary
type EventLister interface {
	ListTodayEvents(ctx context.Context, source oauth2.TokenSource, day time.Time) ([]googlecal.Event, error)
}

// TokenRefresher exchanges and refreshes OAuth tokens
type TokenRefresher interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
}

// TodayResult is the calendar view for the session screen. Connected is
// false when the user never linked a calendar or the lookup failed; the
// events list is empty in that case, never nil.
type TodayResult struct {
	Events    []googlecal.Event `json:"events"`
	Connected bool              `json:"connected"`
}

// Service looks up today's meetings for the session screen. Calendar
// access is best-effort: any failure degrades to "not connected" rather
// than failing the caller.
type Service struct {
	userRepo repositories.UserRepository
	provider TokenRefresher
	states   *oauth.StateManager
	lister   EventLister
	logger   *zap.Logger
}

// NewService creates a new calendar service
func NewService(userRepo repositories.UserRepository, provider TokenRefresher, states *oauth.StateManager, lister EventLister, logger *zap.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		provider: provider,
		states:   states,
		lister:   lister,
		logger:   logger,
	}
}

// ConnectStart begins the OAuth flow and returns the authorization URL
func (s *Service) ConnectStart(ctx context.Context, userID uuid.UUID) (string, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return "", apperrors.ErrUserNotFound()
	}

	state, err := s.states.GenerateState(userID.String())
	if err != nil {
		return "", apperrors.ErrInternal(err)
	}
	return s.provider.GetAuthURL(state), nil
}

// ConnectCallback completes the OAuth flow: the state identifies the user,
// the code is exchanged and the tokens stored on the user row.
func (s *Service) ConnectCallback(ctx context.Context, state, code string) error {
	userIDStr, ok := s.states.ConsumeState(state)
	if !ok {
		return apperrors.ErrOAuthFailed("google", nil)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return apperrors.ErrOAuthFailed("google", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrUserNotFound()
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return apperrors.ErrOAuthFailed("google", err)
	}

	var expiry *time.Time
	if !token.Expiry.IsZero() {
		expiry = &token.Expiry
	}
	user.ConnectGoogleCalendar(token.AccessToken, token.RefreshToken, expiry)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.ErrInternal(err)
	}

	s.logger.Info("calendar connected", zap.String("user_id", userID.String()))
	return nil
}

// Disconnect removes the stored calendar connection
func (s *Service) Disconnect(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrUserNotFound()
	}

	user.CalendarEnabled = false
	user.GoogleAccessToken = nil
	user.GoogleRefreshToken = nil
	user.GoogleTokenExpiry = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.ErrInternal(err)
	}
	return nil
}

// TodayEvents returns today's calendar events. The result always carries a
// non-nil events list; lookup failures are logged and reported as "not
// connected" so the session screen keeps working without a calendar.
func (s *Service) TodayEvents(ctx context.Context, userID uuid.UUID) *TodayResult {
	empty := &TodayResult{Events: []googlecal.Event{}, Connected: false}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return empty
	}
	if !user.CalendarEnabled || user.GoogleAccessToken == nil {
		return empty
	}

	token := &oauth2.Token{AccessToken: *user.GoogleAccessToken}
	if user.GoogleRefreshToken != nil {
		token.RefreshToken = *user.GoogleRefreshToken
	}
	if user.GoogleTokenExpiry != nil {
		token.Expiry = *user.GoogleTokenExpiry
	}

	events, err := s.lister.ListTodayEvents(ctx, s.provider.TokenSource(ctx, token), time.Now())
	if err != nil {
		s.logger.Warn("calendar lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return empty
	}
	if events == nil {
		events = []googlecal.Event{}
	}

	return &TodayResult{Events: events, Connected: true}
}
