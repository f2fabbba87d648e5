package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"canteen-system/internal/repository"
	"canteen-system/internal/summary"
)

type SummaryHandler struct {
	summaries *repository.SummaryRepository
	cache     *SummaryCache
}

func NewSummaryHandler(summaries *repository.SummaryRepository, cache *SummaryCache) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, cache: cache}
}

func employeeKey(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}

func parseEmployeeID(c *gin.Context) (*int64, error) {
	raw := c.Query("employee_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid employee_id")
	}
	return &id, nil
}

// Orders returns the nested per-user order summaries for a date or a date
// range. The employee filter is applied at the row source, never by
// discarding grouped summaries.
func (h *SummaryHandler) Orders(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if date := c.Query("date"); date != "" {
		start, end = date, date
	}
	if start == "" && end == "" {
		today := time.Now().Format(DATE_FORMAT)
		start, end = today, today
	}
	for _, d := range []string{start, end} {
		if _, err := time.Parse(DATE_FORMAT, d); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid date, expected YYYY-MM-DD"))
			return
		}
	}

	employeeID, err := parseEmployeeID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	orderByName := c.Query("order_by") == "name"

	filter := repository.RowFilter{
		StartDate:   start,
		EndDate:     end,
		EmployeeID:  employeeID,
		OrderByName: orderByName,
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%v", SUMMARY_ORDERS_CACHE_PREFIX, start, end, employeeKey(employeeID), orderByName)

	var cached []*summary.UserDaySummary
	if h.cache.Get(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, successWithMetaResponse("OK", cached, gin.H{"start": start, "end": end, "cached": true}))
		return
	}

	rows, err := h.summaries.OrderRows(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch order rows"))
		return
	}

	users, err := summary.Aggregate(rows)
	if err != nil {
		// Malformed rows mean a broken row source, not a client error.
		c.JSON(http.StatusInternalServerError, errorResponse("Inconsistent order data: "+err.Error()))
		return
	}

	h.cache.Set(c.Request.Context(), cacheKey, users)
	c.JSON(http.StatusOK, successWithMetaResponse("OK", users, gin.H{"start": start, "end": end, "users": len(users)}))
}

// Balances returns per-user lifetime totals with status, optionally filtered
// by employee and by status (pending, settled, advance).
func (h *SummaryHandler) Balances(c *gin.Context) {
	employeeID, err := parseEmployeeID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	statusFilter := c.DefaultQuery("status", "all")
	switch statusFilter {
	case "all", string(summary.StatusPending), string(summary.StatusSettled), string(summary.StatusAdvance):
	default:
		c.JSON(http.StatusBadRequest, errorResponse("Invalid status filter"))
		return
	}

	cacheKey := fmt.Sprintf("%s%s:%s", SUMMARY_BALANCE_CACHE_PREFIX, employeeKey(employeeID), statusFilter)

	var cached []repository.UserBalance
	if h.cache.Get(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, successWithMetaResponse("OK", cached, gin.H{"cached": true}))
		return
	}

	balances, err := h.summaries.UserBalances(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch balances"))
		return
	}

	if statusFilter != "all" {
		filtered := balances[:0]
		for _, b := range balances {
			if string(b.Balance.Status) == statusFilter {
				filtered = append(filtered, b)
			}
		}
		balances = filtered
	}

	h.cache.Set(c.Request.Context(), cacheKey, balances)
	c.JSON(http.StatusOK, successWithMetaResponse("OK", balances, gin.H{"total": len(balances)}))
}

// Items returns per-item ordered quantities for one day with the completed
// flag; defaults to today.
func (h *SummaryHandler) Items(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format(DATE_FORMAT))
	if _, err := time.Parse(DATE_FORMAT, date); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid date, expected YYYY-MM-DD"))
		return
	}

	cacheKey := SUMMARY_ITEMS_CACHE_PREFIX + date

	var cached []repository.ItemDayTotal
	if h.cache.Get(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, successWithMetaResponse("OK", cached, gin.H{"date": date, "cached": true}))
		return
	}

	totals, err := h.summaries.ItemTotals(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to fetch item totals"))
		return
	}

	h.cache.Set(c.Request.Context(), cacheKey, totals)
	c.JSON(http.StatusOK, successWithMetaResponse("OK", totals, gin.H{"date": date, "total": len(totals)}))
}
