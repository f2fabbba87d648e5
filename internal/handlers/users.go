package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canteen-system/internal/database/models"
	"canteen-system/internal/repository"
)

type UserHandler struct {
	users *repository.UserRepository
	cache *SummaryCache
}

func NewUserHandler(users *repository.UserRepository, cache *SummaryCache) *UserHandler {
	return &UserHandler{users: users, cache: cache}
}

type CreateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	EmployeeID int64  `json:"employee_id" binding:"required,gt=0"`
}

type UpdateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	EmployeeID int64  `json:"employee_id" binding:"required,gt=0"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	user := &models.User{Name: req.Name, EmployeeID: req.EmployeeID}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmployeeID) {
			c.JSON(http.StatusConflict, errorResponse("This employee ID is already in use"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create user"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, successResponse("User added", user))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list users"))
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("OK", users, gin.H{"total": len(users)}))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid user id"))
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get user"))
		return
	}
	c.JSON(http.StatusOK, successResponse("OK", user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid user id"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req.Name, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, errorResponse("User not found"))
		case errors.Is(err, repository.ErrDuplicateEmployeeID):
			c.JSON(http.StatusConflict, errorResponse("This employee ID is already in use"))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to update user"))
		}
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("User updated", user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid user id"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete user"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("User removed", nil))
}
