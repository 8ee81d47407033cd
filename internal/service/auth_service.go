package service

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/avatar"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// SignupInput carries the fields required to register.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	Address     string
	PhoneNumber string
	Age         int
}

// Validate checks every field is present. An age of zero counts as missing.
func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.Address, validation.Required),
		validation.Field(&in.PhoneNumber, validation.Required),
		validation.Field(&in.Age, validation.Required),
	)
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks both credentials are present.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users   repository.UserRepository
	hasher  *auth.Hasher
	tokens  *auth.TokenManager
	avatars avatar.Provider
	events  events.Dispatcher
	logger  *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.Hasher
	Tokens     *auth.TokenManager
	Avatars    avatar.Provider
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		users:   deps.UserRepo,
		hasher:  deps.Hasher,
		tokens:  deps.Tokens,
		avatars: deps.Avatars,
		events:  deps.Dispatcher,
		logger:  deps.Logger,
	}
	if s.avatars == nil {
		s.avatars = avatar.Noop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Signup registers a new account. No token is issued.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) error {
	if err := in.Validate(); err != nil {
		return apperrors.NewValidationError(MsgSignupRequired)
	}

	var hash, image string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hash, err = s.hasher.Hash(gctx, in.Password)
		return err
	})
	g.Go(func() error {
		image = s.lookupAvatar(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return apperrors.NewInternalErrorWithMessage(MsgSignupFailed, err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Image:        image,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		Age:          in.Age,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return apperrors.NewPersistenceError(err, MsgSignupFailed)
	}

	s.publish(ctx, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.UserRegisteredPayload{
			Email:     user.Email,
			HasAvatar: user.Image != "",
		},
	})
	return nil
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, time.Time, error) {
	if err := in.Validate(); err != nil {
		return "", time.Time{}, apperrors.NewValidationError(MsgLoginRequired)
	}

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", time.Time{}, apperrors.NewNotFound(MsgUserNotFound)
	}
	if err != nil {
		return "", time.Time{}, apperrors.NewStoreFailure(msgLookupByEmailFailed(in.Email), err)
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	if !ok {
		return "", time.Time{}, apperrors.NewInvalidCredential(MsgInvalidPassword, nil)
	}

	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalErrorWithMessage(MsgTokenIssueFailed, err)
	}
	return token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) lookupAvatar(ctx context.Context) string {
	url, err := s.avatars.RandomImageURL(ctx)
	if errors.Is(err, avatar.ErrNotConfigured) {
		return ""
	}
	if err != nil {
		s.logger.Warn("avatar lookup failed; continuing without image", zap.Error(err))
		return ""
	}
	return url
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
