package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/service"
)

// UsersHandler exposes the gated user administration endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, service.MsgContentEmpty)
	}

	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Image:       req.Image,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /api/users/:id. A miss is reported with 200, not 404.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))

	var req dto.UpdateUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, service.MsgContentEmpty)
		}
	}

	updated, err := h.users.Update(c.UserContext(), id, service.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Image:       req.Image,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
	})
	if err != nil {
		return err
	}
	if !updated {
		return c.JSON(dto.MessageResponse{Message: service.MsgUpdateMissed(id)})
	}
	return c.JSON(dto.MessageResponse{Message: service.MsgUserUpdated})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	deleted, err := h.users.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return c.JSON(dto.MessageResponse{Message: service.MsgDeleteMissed(id)})
	}
	return c.JSON(dto.MessageResponse{Message: service.MsgUserDeleted})
}

// DeleteAll handles DELETE /api/users.
func (h *UsersHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.users.DeleteAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: service.MsgUsersDeleted(n)})
}
