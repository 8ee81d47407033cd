package service

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// CreateUserInput carries an administrative create. Password may be plain
// or already a bcrypt hash.
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	Image       string
	Address     string
	PhoneNumber string
	Age         int
}

// Validate checks every field is present.
func (in CreateUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.Image, validation.Required),
		validation.Field(&in.Address, validation.Required),
		validation.Field(&in.PhoneNumber, validation.Required),
		validation.Field(&in.Age, validation.Required),
	)
}

// UpdateUserInput carries a partial update. A non-empty Password rotates the credential.
type UpdateUserInput struct {
	Name        *string
	Email       *string
	Password    *string
	Image       *string
	Address     *string
	PhoneNumber *string
	Age         *int
}

// UserService implements the gated administration operations.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	events events.Dispatcher
	logger *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, hasher *auth.Hasher, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, hasher: hasher, events: dispatcher, logger: logger}
}

// Create stores a new user and returns it.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, apperrors.NewValidationError(MsgContentEmpty)
	}

	hash, err := s.credential(ctx, in.Password)
	if err != nil {
		return nil, apperrors.NewInternalErrorWithMessage(MsgCreateFailed, err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Image:        in.Image,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		Age:          in.Age,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewPersistenceError(err, MsgCreateFailed)
	}

	s.publish(ctx, events.Event{Type: events.EventUserCreated, UserID: user.ID})
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err, MsgListFailed)
	}
	return users, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound(msgCannotFindUser(id))
	}
	if err != nil {
		return nil, apperrors.NewStoreFailure(msgLookupByIDFailed(id), err)
	}
	return user, nil
}

// Update applies a partial update and reports whether a user changed.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (bool, error) {
	patch := domain.UserPatch{
		Name:        in.Name,
		Image:       in.Image,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Age:         in.Age,
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		patch.Email = &email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.credential(ctx, *in.Password)
		if err != nil {
			return false, apperrors.NewInternalErrorWithMessage(msgUpdateFailed(id), err)
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.users.UpdateByID(ctx, id, patch)
	if err != nil {
		return false, apperrors.NewStoreFailure(msgUpdateFailed(id), err)
	}
	if updated {
		s.publish(ctx, events.Event{
			Type:    events.EventUserUpdated,
			UserID:  id,
			Payload: events.UserUpdatedPayload{Fields: patchFields(patch)},
		})
	}
	return updated, nil
}

// Delete removes one user and reports whether it existed.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.users.DeleteByID(ctx, id)
	if err != nil {
		return false, apperrors.NewStoreFailure(msgDeleteFailed(id), err)
	}
	if deleted {
		s.publish(ctx, events.Event{Type: events.EventUserDeleted, UserID: id})
	}
	return deleted, nil
}

// DeleteAll removes every user and returns how many were removed.
func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.users.DeleteAll(ctx)
	if err != nil {
		return 0, apperrors.NewPersistenceError(err, MsgDeleteAllFailed)
	}
	s.publish(ctx, events.Event{Type: events.EventUsersPurged, Payload: events.UsersPurgedPayload{Count: n}})
	return n, nil
}

func (s *UserService) credential(ctx context.Context, password string) (string, error) {
	if auth.IsHash(password) {
		return password, nil
	}
	return s.hasher.Hash(ctx, password)
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if principal, ok := auth.PrincipalFromContext(ctx); ok {
		event.ActorID = principal.ID
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func patchFields(p domain.UserPatch) []string {
	fields := make([]string, 0, 7)
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Email != nil {
		fields = append(fields, "email")
	}
	if p.PasswordHash != nil {
		fields = append(fields, "password")
	}
	if p.Image != nil {
		fields = append(fields, "image")
	}
	if p.Address != nil {
		fields = append(fields, "address")
	}
	if p.PhoneNumber != nil {
		fields = append(fields, "phoneNumber")
	}
	if p.Age != nil {
		fields = append(fields, "age")
	}
	return fields
}
