// Package trip 提供行程、支出与地图标记管理
package trip

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"finpin-api/internal/application/suggestion"
	"finpin-api/internal/domain/entity"
	"finpin-api/internal/domain/repository"
	apperrors "finpin-api/pkg/errors"
	"finpin-api/pkg/logger"
)

// CreateTripInput 创建行程参数
type CreateTripInput struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	TotalBudget float64
}

// ExpenseInput 支出参数，Category 为空时记为 Other，Date 为空时取当前时间
type ExpenseInput struct {
	Title    string
	Amount   float64
	Category string
	Date     time.Time
}

// PinInput 地图标记参数
type PinInput struct {
	Name         string
	Coordinate   entity.Coordinate
	CostEstimate float64
	Notes        string
}

// BudgetSummary 行程预算汇总
type BudgetSummary struct {
	TripID       string                 `json:"trip_id"`
	TotalBudget  float64                `json:"total_budget"`
	Spent        float64                `json:"spent"`
	Remaining    float64                `json:"remaining"`
	PercentSpent float64                `json:"percent_spent"`
	DurationDays int                    `json:"duration_days"`
	PinCount     int                    `json:"pin_count"`
	Categories   []entity.CategoryTotal `json:"categories"`
}

// Service 行程服务
type Service struct {
	repo repository.TripRepository
	// mu 串行化读改写，避免并发追加支出时丢失更新
	mu sync.Mutex
}

// NewService 创建行程服务
func NewService(repo repository.TripRepository) *Service {
	return &Service{repo: repo}
}

// CreateTrip 创建行程
func (s *Service) CreateTrip(ctx context.Context, in CreateTripInput) (*entity.Trip, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.ErrValidationFailed.WithDetail("name is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, apperrors.ErrValidationFailed.WithDetail("start_date and end_date are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, apperrors.ErrValidationFailed.WithDetail("end_date must not be before start_date")
	}
	if !validAmount(in.TotalBudget) || in.TotalBudget <= 0 {
		return nil, apperrors.ErrValidationFailed.WithDetail("total_budget must be greater than 0")
	}

	trip := entity.NewTrip(name, in.StartDate, in.EndDate, in.TotalBudget)
	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}
	logger.Info(ctx, "trip created", "trip_id", trip.ID, "budget", trip.TotalBudget)
	return trip, nil
}

// GetTrip 获取行程
func (s *Service) GetTrip(ctx context.Context, id string) (*entity.Trip, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTrips 分页获取行程
func (s *Service) ListTrips(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Trip], error) {
	return s.repo.List(ctx, pagination)
}

// DeleteTrip 删除行程
func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "trip deleted", "trip_id", id)
	return nil
}

// AddExpense 追加支出
func (s *Service) AddExpense(ctx context.Context, tripID string, in ExpenseInput) (*entity.Expense, error) {
	expense, err := newExpense(in)
	if err != nil {
		return nil, err
	}
	expense.ID = uuid.New().String()

	err = s.mutate(ctx, tripID, func(t *entity.Trip) error {
		t.Expenses = append(t.Expenses, *expense)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense 原位替换支出，保留 ID 与顺序
func (s *Service) UpdateExpense(ctx context.Context, tripID, expenseID string, in ExpenseInput) (*entity.Expense, error) {
	expense, err := newExpense(in)
	if err != nil {
		return nil, err
	}
	expense.ID = expenseID

	err = s.mutate(ctx, tripID, func(t *entity.Trip) error {
		for i := range t.Expenses {
			if t.Expenses[i].ID == expenseID {
				t.Expenses[i] = *expense
				return nil
			}
		}
		return apperrors.ErrExpenseNotFound
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense 删除支出
func (s *Service) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	return s.mutate(ctx, tripID, func(t *entity.Trip) error {
		for i := range t.Expenses {
			if t.Expenses[i].ID == expenseID {
				t.Expenses = append(t.Expenses[:i], t.Expenses[i+1:]...)
				return nil
			}
		}
		return apperrors.ErrExpenseNotFound
	})
}

// AddPin 添加地图标记
func (s *Service) AddPin(ctx context.Context, tripID string, in PinInput) (*entity.TripPin, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.ErrValidationFailed.WithDetail("pin name is required")
	}
	if !in.Coordinate.Valid() {
		return nil, apperrors.ErrValidationFailed.WithDetail("coordinate out of range")
	}
	if !validAmount(in.CostEstimate) || in.CostEstimate < 0 {
		return nil, apperrors.ErrValidationFailed.WithDetail("cost_estimate must not be negative")
	}

	pin := &entity.TripPin{
		ID:           uuid.New().String(),
		Name:         name,
		Coordinate:   in.Coordinate,
		CostEstimate: in.CostEstimate,
		Notes:        in.Notes,
	}
	err := s.mutate(ctx, tripID, func(t *entity.Trip) error {
		t.Pins = append(t.Pins, *pin)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pin, nil
}

// DeletePin 删除地图标记
func (s *Service) DeletePin(ctx context.Context, tripID, pinID string) error {
	return s.mutate(ctx, tripID, func(t *entity.Trip) error {
		for i := range t.Pins {
			if t.Pins[i].ID == pinID {
				t.Pins = append(t.Pins[:i], t.Pins[i+1:]...)
				return nil
			}
		}
		return apperrors.ErrPinNotFound
	})
}

// Summary 预算汇总
func (s *Service) Summary(ctx context.Context, tripID string) (*BudgetSummary, error) {
	t, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	spent := t.Spent()
	return &BudgetSummary{
		TripID:       t.ID,
		TotalBudget:  t.TotalBudget,
		Spent:        spent,
		Remaining:    t.Remaining(),
		PercentSpent: spent / t.TotalBudget * 100,
		DurationDays: t.DurationDays(),
		PinCount:     len(t.Pins),
		Categories:   t.CategoryTotals(),
	}, nil
}

// BudgetSnapshot 由行程生成预算建议输入，支出按记录顺序
func (s *Service) BudgetSnapshot(ctx context.Context, tripID string) (suggestion.BudgetSnapshot, error) {
	t, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return suggestion.BudgetSnapshot{}, err
	}
	return suggestion.BudgetSnapshot{
		Spent:          t.Spent(),
		Total:          t.TotalBudget,
		Remaining:      t.Remaining(),
		RecentExpenses: t.Expenses,
	}, nil
}

// SeedDemoTrip 写入示例行程
func (s *Service) SeedDemoTrip(ctx context.Context) (*entity.Trip, error) {
	now := time.Now().UTC()
	t := entity.NewTrip("NYC Adventure", now, now.AddDate(0, 0, 3), 2500)
	for _, e := range []struct {
		title    string
		amount   float64
		category string
	}{
		{"Hotel Booking", 600, entity.CategoryAccommodation},
		{"Flight Tickets", 450, entity.CategoryTransport},
		{"Dinner at Times Square", 120, entity.CategoryFood},
		{"Broadway Show", 250, entity.CategoryActivity},
		{"Museum Tickets", 50, entity.CategoryActivity},
	} {
		t.Expenses = append(t.Expenses, entity.Expense{
			ID:       uuid.New().String(),
			Title:    e.title,
			Amount:   e.amount,
			Category: e.category,
			Date:     now,
		})
	}
	for _, p := range []struct {
		name     string
		lat, lng float64
		cost     float64
	}{
		{"Times Square", 40.7580, -73.9855, 200},
		{"Central Park", 40.7829, -73.9654, 0},
		{"Statue of Liberty", 40.6892, -74.0445, 50},
	} {
		t.Pins = append(t.Pins, entity.TripPin{
			ID:           uuid.New().String(),
			Name:         p.name,
			Coordinate:   entity.Coordinate{Latitude: p.lat, Longitude: p.lng},
			CostEstimate: p.cost,
		})
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	logger.Info(ctx, "demo trip seeded", "trip_id", t.ID)
	return t, nil
}

func (s *Service) mutate(ctx context.Context, tripID string, fn func(*entity.Trip) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

func newExpense(in ExpenseInput) (*entity.Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrValidationFailed.WithDetail("title is required")
	}
	if !validAmount(in.Amount) || in.Amount < 0 {
		return nil, apperrors.ErrValidationFailed.WithDetail("amount must not be negative")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.CategoryOther
	}
	if !entity.IsValidCategory(category) {
		return nil, apperrors.ErrValidationFailed.WithDetail("unknown category: " + category)
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	return &entity.Expense{
		Title:    title,
		Amount:   in.Amount,
		Category: category,
		Date:     date,
	}, nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
