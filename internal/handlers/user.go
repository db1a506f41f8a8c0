package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adrianlee69dev/advantage-survey/internal/middleware"
	"github.com/adrianlee69dev/advantage-survey/internal/models"
	"github.com/adrianlee69dev/advantage-survey/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Email string      `json:"email" binding:"required,email" example:"ada@example.com"`
	Name  string      `json:"name" binding:"required" example:"Ada"`
	Role  models.Role `json:"role" binding:"required" example:"admin"`
}

// CreateUser godoc
// @Summary      Register a user
// @Description  Create a user with a fixed role (admin or answerer)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User data"
// @Success      201 {object} User
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Create(req.Email, req.Name, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200 {array} User
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetMe godoc
// @Summary      Get the current user
// @Description  Returns the user resolved from the X-User-ID header
// @Tags         users
// @Produce      json
// @Param        X-User-ID header string true "User ID"
// @Success      200 {object} User
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
