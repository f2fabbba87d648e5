package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"canteen-system/internal/repository"
)

const (
	DATE_FORMAT = "2006-01-02"
	TIME_FORMAT = "15:04:05"
)

type OrderHandler struct {
	orders *repository.OrderRepository
	cache  *SummaryCache
}

func NewOrderHandler(orders *repository.OrderRepository, cache *SummaryCache) *OrderHandler {
	return &OrderHandler{orders: orders, cache: cache}
}

type OrderLineRequest struct {
	ItemID   int64 `json:"item_id" binding:"required,gt=0"`
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	UserID     int64              `json:"user_id" binding:"required,gt=0"`
	PaidAmount int64              `json:"paid_amount" binding:"gte=0"`
	Items      []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	PaidAmount int64              `json:"paid_amount" binding:"gte=0"`
	Items      []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

func toOrderLines(reqs []OrderLineRequest) []repository.OrderLine {
	lines := make([]repository.OrderLine, len(reqs))
	for i, r := range reqs {
		lines[i] = repository.OrderLine{ItemID: r.ItemID, Quantity: r.Quantity}
	}
	return lines
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	now := time.Now()
	order, err := h.orders.Create(c.Request.Context(), req.UserID,
		now.Format(DATE_FORMAT), now.Format(TIME_FORMAT),
		req.PaidAmount, toOrderLines(req.Items))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, errorResponse("User or item not found"))
		case errors.Is(err, repository.ErrEmptyOrder), errors.Is(err, repository.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to save order"))
		}
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, successResponse("Order saved", order))
}

// Update replaces the order's line items and paid amount; the stored total is
// recomputed from the new snapshot prices.
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid order id"))
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	order, err := h.orders.ReplaceItems(c.Request.Context(), id, req.PaidAmount, toOrderLines(req.Items))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, errorResponse("Order or item not found"))
		case errors.Is(err, repository.ErrEmptyOrder), errors.Is(err, repository.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to update order"))
		}
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Order updated", order))
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid order id"))
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete order"))
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Order removed", nil))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid order id"))
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get order"))
		return
	}
	c.JSON(http.StatusOK, successResponse("OK", order))
}

// List returns the day's orders with user names; defaults to today.
func (h *OrderHandler) List(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format(DATE_FORMAT))
	if _, err := time.Parse(DATE_FORMAT, date); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid date, expected YYYY-MM-DD"))
		return
	}

	orders, err := h.orders.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, successWithMetaResponse("OK", orders, gin.H{"date": date, "total": len(orders)}))
}
