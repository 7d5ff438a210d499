package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/okalns/ledgerly-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes. The rate limiter runs after
// authentication on protected groups so it keys by user ID; the public
// auth endpoints carry it route-level, keyed by client IP.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit echo.MiddlewareFunc, authHandler *AuthHandler, profileHandler *ProfileHandler, categoryHandler *CategoryHandler, transactionHandler *TransactionHandler, calendarHandler *CalendarHandler, billHandler *BillHandler, summaryHandler *SummaryHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	api.POST("/signup", authHandler.SignUp, rateLimit)
	api.POST("/signin", authHandler.SignIn, rateLimit)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate(), rateLimit)
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("/update", profileHandler.UpdateProfile)

	profiles := api.Group("/profiles")
	profiles.Use(authMiddleware.Authenticate(), rateLimit)
	profiles.GET("", profileHandler.ListProfiles)

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate(), rateLimit)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate(), rateLimit)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/total-expenses", transactionHandler.GetTotalExpenses)

	// Calendar routes (protected)
	calendar := api.Group("/calendar")
	calendar.Use(authMiddleware.Authenticate(), rateLimit)
	calendar.POST("", calendarHandler.CreateCalendar)
	calendar.GET("", calendarHandler.GetCalendars)
	calendar.GET("/:id/day/:date", calendarHandler.GetDayView)
	calendar.POST("/:id/day/:date/recompute", calendarHandler.RecomputeDay)

	// Bill routes (protected)
	bills := api.Group("/bills")
	bills.Use(authMiddleware.Authenticate(), rateLimit)
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.PATCH("/:id/paid", billHandler.TogglePaid)

	// Summary routes (protected)
	summary := api.Group("/summary")
	summary.Use(authMiddleware.Authenticate(), rateLimit)
	summary.GET("/monthly", summaryHandler.GetMonthlySummary)
	summary.GET("/annual", summaryHandler.GetAnnualSummary)
}
