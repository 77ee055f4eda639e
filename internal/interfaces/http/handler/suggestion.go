package handler

import (
	"github.com/gin-gonic/gin"

	"finpin-api/internal/application/suggestion"
	"finpin-api/internal/interfaces/http/dto"
)

// SuggestionHandler 无状态建议处理器
type SuggestionHandler struct {
	suggestions *suggestion.Service
}

// NewSuggestionHandler 创建建议处理器
func NewSuggestionHandler(suggestions *suggestion.Service) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// GetLocationDetails 坐标地点花费估算
// @Summary 地点花费估算
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param body body dto.LocationDetailsRequest true "坐标"
// @Success 200 {object} dto.Response[entity.LocationDetails]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/suggestions/location [post]
func (h *SuggestionHandler) GetLocationDetails(c *gin.Context) {
	var req dto.LocationDetailsRequest
	if !bindJSON(c, &req) {
		return
	}

	details, err := h.suggestions.GetLocationDetails(c.Request.Context(), req.Coordinate())
	if err != nil {
		respondError(c, "get location details", err)
		return
	}
	dto.Success(c, details)
}

// GetBudgetAdvice 预算建议
// @Summary 预算建议
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param body body dto.BudgetAdviceRequest true "预算快照"
// @Success 200 {object} dto.Response[entity.BudgetAdvice]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/suggestions/budget-advice [post]
func (h *SuggestionHandler) GetBudgetAdvice(c *gin.Context) {
	var req dto.BudgetAdviceRequest
	if !bindJSON(c, &req) {
		return
	}

	advice, err := h.suggestions.GetBudgetAdvice(c.Request.Context(), req.ToSnapshot())
	if err != nil {
		respondError(c, "get budget advice", err)
		return
	}
	dto.Success(c, advice)
}

// SuggestExpense 支出分类与价格区间建议
// @Summary 支出分类建议
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param body body dto.ExpenseSuggestionRequest true "支出标题"
// @Success 200 {object} dto.Response[entity.ExpenseSuggestion]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/suggestions/expense [post]
func (h *SuggestionHandler) SuggestExpense(c *gin.Context) {
	var req dto.ExpenseSuggestionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.suggestions.SuggestExpenseDetails(c.Request.Context(), req.Title, req.Location)
	if err != nil {
		respondError(c, "suggest expense", err)
		return
	}
	dto.Success(c, result)
}
