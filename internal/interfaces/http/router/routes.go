package router

import (
	"github.com/gin-gonic/gin"

	"finpin-api/internal/interfaces/http/handler"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	tripHandler *handler.TripHandler,
	suggestionHandler *handler.SuggestionHandler,
) {
	// 行程管理
	trips := v1.Group("/trips")
	{
		trips.GET("", tripHandler.ListTrips)
		trips.POST("", tripHandler.CreateTrip)
		trips.GET("/:tid", tripHandler.GetTrip)
		trips.DELETE("/:tid", tripHandler.DeleteTrip)
		trips.GET("/:tid/summary", tripHandler.GetSummary)

		// 支出
		trips.POST("/:tid/expenses", tripHandler.AddExpense)
		trips.PUT("/:tid/expenses/:eid", tripHandler.UpdateExpense)
		trips.DELETE("/:tid/expenses/:eid", tripHandler.DeleteExpense)

		// 地图标记
		trips.POST("/:tid/pins", tripHandler.AddPin)
		trips.DELETE("/:tid/pins/:pid", tripHandler.DeletePin)

		// AI 建议
		trips.POST("/:tid/budget-advice", tripHandler.GetBudgetAdvice)
		trips.POST("/:tid/insights", tripHandler.GetInsights)
	}

	suggestions := v1.Group("/suggestions")
	{
		suggestions.POST("/location", suggestionHandler.GetLocationDetails)
		suggestions.POST("/budget-advice", suggestionHandler.GetBudgetAdvice)
		suggestions.POST("/expense", suggestionHandler.SuggestExpense)
	}
}
