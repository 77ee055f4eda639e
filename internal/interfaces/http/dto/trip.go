package dto

import (
	"time"

	"finpin-api/internal/application/trip"
	"finpin-api/internal/domain/entity"
)

// CreateTripRequest 创建行程请求
type CreateTripRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	TotalBudget float64   `json:"total_budget" binding:"gt=0"`
}

// ToInput 转换为服务层参数
func (r *CreateTripRequest) ToInput() trip.CreateTripInput {
	return trip.CreateTripInput{
		Name:        r.Name,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TotalBudget: r.TotalBudget,
	}
}

// ExpenseRequest 新增或更新支出请求
type ExpenseRequest struct {
	Title    string     `json:"title" binding:"required,max=200"`
	Amount   *float64   `json:"amount" binding:"required,gte=0"`
	Category string     `json:"category,omitempty" binding:"omitempty,oneof=Food Transport Accommodation Activity Shopping Other"`
	Date     *time.Time `json:"date,omitempty"`
}

// ToInput 转换为服务层参数
func (r *ExpenseRequest) ToInput() trip.ExpenseInput {
	in := trip.ExpenseInput{
		Title:    r.Title,
		Category: r.Category,
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}

// PinRequest 新增地图标记请求
type PinRequest struct {
	Name         string   `json:"name" binding:"required,max=200"`
	Latitude     *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	CostEstimate float64  `json:"cost_estimate" binding:"gte=0"`
	Notes        string   `json:"notes,omitempty" binding:"max=2000"`
}

// ToInput 转换为服务层参数
func (r *PinRequest) ToInput() trip.PinInput {
	in := trip.PinInput{
		Name:         r.Name,
		CostEstimate: r.CostEstimate,
		Notes:        r.Notes,
	}
	if r.Latitude != nil {
		in.Coordinate.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		in.Coordinate.Longitude = *r.Longitude
	}
	return in
}

// TripResponse 行程响应
type TripResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	DurationDays int              `json:"duration_days"`
	TotalBudget  float64          `json:"total_budget"`
	Spent        float64          `json:"spent"`
	Remaining    float64          `json:"remaining"`
	Expenses     []entity.Expense `json:"expenses"`
	Pins         []entity.TripPin `json:"pins"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TripListResponse 行程列表响应
type TripListResponse struct {
	Trips []*TripResponse `json:"trips"`
}

// ToTripResponse 转换行程响应
func ToTripResponse(t *entity.Trip) *TripResponse {
	if t == nil {
		return nil
	}
	return &TripResponse{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		DurationDays: t.DurationDays(),
		TotalBudget:  t.TotalBudget,
		Spent:        t.Spent(),
		Remaining:    t.Remaining(),
		Expenses:     t.Expenses,
		Pins:         t.Pins,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToTripListResponse 转换行程列表响应
func ToTripListResponse(trips []*entity.Trip) *TripListResponse {
	out := make([]*TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, ToTripResponse(t))
	}
	return &TripListResponse{Trips: out}
}
