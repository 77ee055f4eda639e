package handler

import (
	"github.com/gin-gonic/gin"

	"finpin-api/internal/application/suggestion"
	"finpin-api/internal/application/trip"
	"finpin-api/internal/domain/repository"
	"finpin-api/internal/interfaces/http/dto"
	"finpin-api/pkg/logger"
)

// TripHandler 行程处理器
type TripHandler struct {
	trips       *trip.Service
	suggestions *suggestion.Service
}

// NewTripHandler 创建行程处理器
func NewTripHandler(trips *trip.Service, suggestions *suggestion.Service) *TripHandler {
	return &TripHandler{
		trips:       trips,
		suggestions: suggestions,
	}
}

// ListTrips 获取行程列表
// @Summary 获取行程列表
// @Tags Trips
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.TripListResponse]
// @Router /v1/trips [get]
func (h *TripHandler) ListTrips(c *gin.Context) {
	pageReq := dto.BindPage(c)

	result, err := h.trips.ListTrips(c.Request.Context(), repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "list trips", err)
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, dto.ToTripListResponse(result.Items), meta)
}

// CreateTrip 创建行程
// @Summary 创建行程
// @Tags Trips
// @Accept json
// @Produce json
// @Param body body dto.CreateTripRequest true "行程信息"
// @Success 201 {object} dto.Response[dto.TripResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/trips [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req dto.CreateTripRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.trips.CreateTrip(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, "create trip", err)
		return
	}
	dto.Created(c, dto.ToTripResponse(t))
}

// GetTrip 获取行程详情
// @Summary 获取行程详情
// @Tags Trips
// @Produce json
// @Param tid path string true "行程 ID"
// @Success 200 {object} dto.Response[dto.TripResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/trips/{tid} [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	t, err := h.trips.GetTrip(c.Request.Context(), dto.BindTripID(c))
	if err != nil {
		respondError(c, "get trip", err)
		return
	}
	dto.Success(c, dto.ToTripResponse(t))
}

// DeleteTrip 删除行程
// @Summary 删除行程
// @Tags Trips
// @Param tid path string true "行程 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/trips/{tid} [delete]
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.trips.DeleteTrip(c.Request.Context(), dto.BindTripID(c)); err != nil {
		respondError(c, "delete trip", err)
		return
	}
	dto.NoContent(c)
}

// GetSummary 获取预算汇总
// @Summary 获取预算汇总
// @Tags Trips
// @Produce json
// @Param tid path string true "行程 ID"
// @Success 200 {object} dto.Response[trip.BudgetSummary]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/trips/{tid}/summary [get]
func (h *TripHandler) GetSummary(c *gin.Context) {
	summary, err := h.trips.Summary(c.Request.Context(), dto.BindTripID(c))
	if err != nil {
		respondError(c, "get trip summary", err)
		return
	}
	dto.Success(c, summary)
}

// AddExpense 新增支出
// @Summary 新增支出
// @Tags Expenses
// @Accept json
// @Produce json
// @Param tid path string true "行程 ID"
// @Param body body dto.ExpenseRequest true "支出信息"
// @Success 201 {object} dto.Response[entity.Expense]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/trips/{tid}/expenses [post]
func (h *TripHandler) AddExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.trips.AddExpense(c.Request.Context(), dto.BindTripID(c), req.ToInput())
	if err != nil {
		respondError(c, "add expense", err)
		return
	}
	dto.Created(c, expense)
}

// UpdateExpense 更新支出
// @Summary 更新支出
// @Tags Expenses
// @Accept json
// @Produce json
// @Param tid path string true "行程 ID"
// @Param eid path string true "支出 ID"
// @Param body body dto.ExpenseRequest true "支出信息"
// @Success 200 {object} dto.Response[entity.Expense]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/trips/{tid}/expenses/{eid} [put]
func (h *TripHandler) UpdateExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.trips.UpdateExpense(c.Request.Context(), dto.BindTripID(c), dto.BindExpenseID(c), req.ToInput())
	if err != nil {
		respondError(c, "update expense", err)
		return
	}
	dto.Success(c, expense)
}

// DeleteExpense 删除支出
// @Summary 删除支出
// @Tags Expenses
// @Param tid path string true "行程 ID"
// @Param eid path string true "支出 ID"
// @Success 204
// @Router /v1/trips/{tid}/expenses/{eid} [delete]
func (h *TripHandler) DeleteExpense(c *gin.Context) {
	if err := h.trips.DeleteExpense(c.Request.Context(), dto.BindTripID(c), dto.BindExpenseID(c)); err != nil {
		respondError(c, "delete expense", err)
		return
	}
	dto.NoContent(c)
}

// AddPin 新增地图标记
// @Summary 新增地图标记
// @Tags Pins
// @Accept json
// @Produce json
// @Param tid path string true "行程 ID"
// @Param body body dto.PinRequest true "标记信息"
// @Success 201 {object} dto.Response[entity.TripPin]
// @Router /v1/trips/{tid}/pins [post]
func (h *TripHandler) AddPin(c *gin.Context) {
	var req dto.PinRequest
	if !bindJSON(c, &req) {
		return
	}

	pin, err := h.trips.AddPin(c.Request.Context(), dto.BindTripID(c), req.ToInput())
	if err != nil {
		respondError(c, "add pin", err)
		return
	}
	dto.Created(c, pin)
}

// DeletePin 删除地图标记
// @Summary 删除地图标记
// @Tags Pins
// @Param tid path string true "行程 ID"
// @Param pid path string true "标记 ID"
// @Success 204
// @Router /v1/trips/{tid}/pins/{pid} [delete]
func (h *TripHandler) DeletePin(c *gin.Context) {
	if err := h.trips.DeletePin(c.Request.Context(), dto.BindTripID(c), dto.BindPinID(c)); err != nil {
		respondError(c, "delete pin", err)
		return
	}
	dto.NoContent(c)
}

// GetBudgetAdvice 根据行程当前花费获取预算建议
// @Summary 行程预算建议
// @Tags Suggestions
// @Produce json
// @Param tid path string true "行程 ID"
// @Success 200 {object} dto.Response[entity.BudgetAdvice]
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/trips/{tid}/budget-advice [post]
func (h *TripHandler) GetBudgetAdvice(c *gin.Context) {
	ctx := c.Request.Context()
	tripID := dto.BindTripID(c)

	snapshot, err := h.trips.BudgetSnapshot(ctx, tripID)
	if err != nil {
		respondError(c, "get budget advice", err)
		return
	}

	ctx = logger.WithContext(ctx, logger.TripIDKey, tripID)
	advice, err := h.suggestions.GetBudgetAdvice(ctx, snapshot)
	if err != nil {
		respondError(c, "get budget advice", err)
		return
	}
	dto.Success(c, advice)
}

// GetInsights 获取行程洞察
// @Summary 行程洞察
// @Tags Suggestions
// @Produce json
// @Param tid path string true "行程 ID"
// @Success 200 {object} dto.Response[entity.TripInsights]
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/trips/{tid}/insights [post]
func (h *TripHandler) GetInsights(c *gin.Context) {
	ctx := c.Request.Context()

	t, err := h.trips.GetTrip(ctx, dto.BindTripID(c))
	if err != nil {
		respondError(c, "get trip insights", err)
		return
	}

	insights, err := h.suggestions.GetTripInsights(ctx, t)
	if err != nil {
		respondError(c, "get trip insights", err)
		return
	}
	dto.Success(c, insights)
}
