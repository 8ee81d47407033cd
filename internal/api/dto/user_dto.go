package dto

import (
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

// SignupRequest payload for self-registration.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Age         int    `json:"age"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest payload for administrative create.
type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Image       string `json:"image"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Age         int    `json:"age"`
}

// UpdateUserRequest carries only the fields present in the body.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Image       *string `json:"image"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	Age         *int    `json:"age"`
}

// UserResponse is the public view of a user. The credential never leaves the service.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Image       string    `json:"image"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	Age         int       `json:"age"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MessageResponse wraps a plain status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Image:       u.Image,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		Age:         u.Age,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of users, never returning nil.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
