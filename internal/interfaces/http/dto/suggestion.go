package dto

import (
	"finpin-api/internal/application/suggestion"
	"finpin-api/internal/domain/entity"
)

// LocationDetailsRequest 地点花费估算请求
type LocationDetailsRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// Coordinate 请求坐标
func (r *LocationDetailsRequest) Coordinate() entity.Coordinate {
	return entity.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// RecentExpense 预算建议中的近期支出
type RecentExpense struct {
	Title    string  `json:"title,omitempty"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category" binding:"required"`
}

// BudgetAdviceRequest 预算建议请求
type BudgetAdviceRequest struct {
	Spent          *float64        `json:"spent" binding:"required"`
	Total          *float64        `json:"total" binding:"required"`
	Remaining      *float64        `json:"remaining" binding:"required"`
	RecentExpenses []RecentExpense `json:"recent_expenses" binding:"dive"`
}

// ToSnapshot 转换为预算快照
func (r *BudgetAdviceRequest) ToSnapshot() suggestion.BudgetSnapshot {
	expenses := make([]entity.Expense, 0, len(r.RecentExpenses))
	for _, e := range r.RecentExpenses {
		expenses = append(expenses, entity.Expense{
			Title:    e.Title,
			Amount:   e.Amount,
			Category: e.Category,
		})
	}
	return suggestion.BudgetSnapshot{
		Spent:          *r.Spent,
		Total:          *r.Total,
		Remaining:      *r.Remaining,
		RecentExpenses: expenses,
	}
}

// ExpenseSuggestionRequest 支出分类建议请求
type ExpenseSuggestionRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Location string `json:"location,omitempty" binding:"max=200"`
}
