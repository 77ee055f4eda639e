// Package entity 定义领域实体
package entity

import (
	"math"
	"time"
)

// 支出分类
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryAccommodation = "Accommodation"
	CategoryActivity      = "Activity"
	CategoryShopping      = "Shopping"
	CategoryOther         = "Other"
)

// ExpenseCategories 可选的支出分类（顺序即展示顺序）
var ExpenseCategories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryActivity,
	CategoryShopping,
	CategoryOther,
}

// IsValidCategory 判断分类是否在可选范围内
func IsValidCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Coordinate 经纬度坐标
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid 判断坐标是否在合法范围内
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Expense 支出记录
type Expense struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// TripPin 行程地图标记
type TripPin struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Coordinate   Coordinate `json:"coordinate"`
	CostEstimate float64    `json:"cost_estimate"`
	Notes        string     `json:"notes,omitempty"`
}

// Trip 行程实体
type Trip struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalBudget float64   `json:"total_budget"`
	Expenses    []Expense `json:"expenses"`
	Pins        []TripPin `json:"pins"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTrip 创建新行程
func NewTrip(name string, start, end time.Time, totalBudget float64) *Trip {
	now := time.Now()
	return &Trip{
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		TotalBudget: totalBudget,
		Expenses:    []Expense{},
		Pins:        []TripPin{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Spent 已花费金额
func (t *Trip) Spent() float64 {
	var sum float64
	for _, e := range t.Expenses {
		sum += e.Amount
	}
	return sum
}

// Remaining 剩余预算
func (t *Trip) Remaining() float64 {
	return t.TotalBudget - t.Spent()
}

// DurationDays 行程天数（首尾两天都计入），按各自日期的日历日计算
func (t *Trip) DurationDays() int {
	days := int(calendarDay(t.EndDate).Sub(calendarDay(t.StartDate)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days + 1
}

func calendarDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CategoryTotal 分类汇总
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryTotals 按分类汇总金额，顺序为分类首次出现的顺序
func (t *Trip) CategoryTotals() []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	for _, e := range t.Expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].Amount += e.Amount
	}
	return totals
}

// DominantCategory 花费最多的分类；金额相同时取先出现的分类，无支出时返回 "General"
func (t *Trip) DominantCategory() string {
	top := "General"
	best := math.Inf(-1)
	for _, ct := range t.CategoryTotals() {
		if ct.Amount > best {
			best = ct.Amount
			top = ct.Category
		}
	}
	return top
}

// Clone 深拷贝行程，避免调用方修改共享切片
func (t *Trip) Clone() *Trip {
	cp := *t
	cp.Expenses = append([]Expense(nil), t.Expenses...)
	cp.Pins = append([]TripPin(nil), t.Pins...)
	if cp.Expenses == nil {
		cp.Expenses = []Expense{}
	}
	if cp.Pins == nil {
		cp.Pins = []TripPin{}
	}
	return &cp
}
