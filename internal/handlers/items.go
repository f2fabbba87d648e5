package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canteen-system/internal/database/models"
	"canteen-system/internal/repository"
)

type ItemHandler struct {
	items *repository.ItemRepository
	cache *SummaryCache
}

func NewItemHandler(items *repository.ItemRepository, cache *SummaryCache) *ItemHandler {
	return &ItemHandler{items: items, cache: cache}
}

type CreateItemRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

type UpdateItemRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

type CompleteItemRequest struct {
	Date      string `json:"date" binding:"required"`
	Completed bool   `json:"completed"`
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	item := &models.Item{Name: req.Name, Amount: req.Amount}
	if err := h.items.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create item"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, successResponse("Item added", item))
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list items"))
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("OK", items, gin.H{"total": len(items)}))
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid item id"))
		return
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get item"))
		return
	}
	c.JSON(http.StatusOK, successResponse("OK", item))
}

// Update edits the item's name and current price. Past orders keep the price
// snapshotted in their line items.
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid item id"))
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, req.Name, req.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update item"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Item updated", item))
}

// Complete marks the item fulfilled (or not) for one date, as the item
// summary screen toggle does.
func (h *ItemHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid item id"))
		return
	}

	var req CompleteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	var date *string
	if req.Completed {
		date = &req.Date
	}

	if err := h.items.SetCompletedDate(c.Request.Context(), id, date); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update item"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Item completion updated", nil))
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid item id"))
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete item"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Item removed", nil))
}
