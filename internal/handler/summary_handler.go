package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/middleware"
	"github.com/okalns/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// SummaryHandler handles aggregation HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
	now            func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		now:            time.Now,
	}
}

// MonthlySummaryResponse represents one month's totals in API responses
type MonthlySummaryResponse struct {
	Month         string `json:"month"`
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	NetBalance    string `json:"netBalance"`
}

// CategorySummaryResponse represents one category's totals in API
// responses. Category is null for uncategorized transactions.
type CategorySummaryResponse struct {
	Category      *string `json:"category"`
	TotalIncome   string  `json:"totalIncome"`
	TotalExpenses string  `json:"totalExpenses"`
	NetBalance    string  `json:"netBalance"`
}

// AnnualSummaryResponse represents a year's totals in API responses
type AnnualSummaryResponse struct {
	Year          int                       `json:"year"`
	Categories    []CategorySummaryResponse `json:"categories"`
	TotalIncome   string                    `json:"totalIncome"`
	TotalExpenses string                    `json:"totalExpenses"`
	NetBalance    string                    `json:"netBalance"`
}

// GetMonthlySummary handles GET /api/v1/summary/monthly
func (h *SummaryHandler) GetMonthlySummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summaries, err := h.summaryService.MonthlySummary(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get monthly summary")
		return NewInternalError(c, "Failed to get monthly summary")
	}

	response := make([]MonthlySummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = MonthlySummaryResponse{
			Month:         fmt.Sprintf("%04d-%02d", summary.Year, summary.Month),
			TotalIncome:   summary.TotalIncome.StringFixed(2),
			TotalExpenses: summary.TotalExpenses.StringFixed(2),
			NetBalance:    summary.NetBalance.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetAnnualSummary handles GET /api/v1/summary/annual
func (h *SummaryHandler) GetAnnualSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year := h.now().Year()
	if s := c.QueryParam("year"); s != "" {
		var parsed int32
		if ok, err := parseIntParam(s, &parsed); !ok || err != nil || parsed < 1 {
			return NewValidationError(c, "Invalid year (must be positive integer)", nil)
		}
		year = int(parsed)
	}

	summary, err := h.summaryService.AnnualSummary(userID, year)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Int("year", year).Msg("Failed to get annual summary")
		return NewInternalError(c, "Failed to get annual summary")
	}

	return c.JSON(http.StatusOK, toAnnualSummaryResponse(summary))
}

func toAnnualSummaryResponse(summary *domain.AnnualSummary) AnnualSummaryResponse {
	categories := make([]CategorySummaryResponse, len(summary.Categories))
	for i, category := range summary.Categories {
		categories[i] = CategorySummaryResponse{
			Category:      category.Category,
			TotalIncome:   category.TotalIncome.StringFixed(2),
			TotalExpenses: category.TotalExpenses.StringFixed(2),
			NetBalance:    category.NetBalance.StringFixed(2),
		}
	}
	return AnnualSummaryResponse{
		Year:          summary.Year,
		Categories:    categories,
		TotalIncome:   summary.TotalIncome.StringFixed(2),
		TotalExpenses: summary.TotalExpenses.StringFixed(2),
		NetBalance:    summary.NetBalance.StringFixed(2),
	}
}
