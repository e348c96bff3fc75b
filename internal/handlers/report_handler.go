package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"inventory-backend/internal/middleware"
	"inventory-backend/internal/redisx"
	"inventory-backend/internal/reports"
)

type ReportHandler struct {
	service *reports.Service
	redis   *redis.Client // nil disables the dashboard cache
}

func NewReportHandler(service *reports.Service, redis *redis.Client) *ReportHandler {
	return &ReportHandler{service: service, redis: redis}
}

// SalesReport serves the per-product sales report.
func (h *ReportHandler) SalesReport(c *gin.Context) {
	win, err := reports.ParseWindow(c.Query("start_date"), c.Query("end_date"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sortBy := c.DefaultQuery("sort_by", "revenue")

	report, err := h.service.SalesReport(c.Request.Context(), middleware.Owner(c), win, sortBy, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"report":     "sales",
		"date_range": report.DateRange,
		"summary":    report.Summary,
		"data":       report.Data,
	})
}

// CustomerReport serves the per-customer report.
func (h *ReportHandler) CustomerReport(c *gin.Context) {
	win, err := reports.ParseWindow(c.Query("start_date"), c.Query("end_date"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	sortBy := c.DefaultQuery("sort_by", "revenue")

	report, err := h.service.CustomerReport(c.Request.Context(), middleware.Owner(c), win, sortBy, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"report":     "customers",
		"date_range": report.DateRange,
		"summary":    report.Summary,
		"data":       report.Data,
	})
}

// Dashboard serves the owner's summary snapshot, cached briefly in redis.
// The cache is best-effort on both sides; the aggregator itself always
// reads the store.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	ownerID := middleware.Owner(c)
	key := fmt.Sprintf(redisx.KeyDashboard, ownerID)

	if h.redis != nil {
		if cached, err := h.redis.Get(c.Request.Context(), key).Result(); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	summary, err := h.service.DashboardSummary(c.Request.Context(), ownerID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"success": true, "report": "dashboard", "summary": summary}
	if h.redis != nil {
		if b, err := json.Marshal(body); err == nil {
			_ = h.redis.Set(c.Request.Context(), key, b, redisx.TTLDashboard).Err()
		}
	}
	c.JSON(http.StatusOK, body)
}
