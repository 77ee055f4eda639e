// Package suggestion 提供基于生成式模型的行程预算建议
package suggestion

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finpin-api/internal/domain/entity"
	apperrors "finpin-api/pkg/errors"
	"finpin-api/pkg/logger"
	"finpin-api/pkg/metrics"
	"finpin-api/pkg/tracer"
)

const (
	kindLocation = "location"
	kindBudget   = "budget_advice"
	kindExpense  = "expense"
	kindInsights = "trip_insights"
)

// TextGenerator 生成式文本接口
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ReverseGeocoder 逆地理编码接口
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coord entity.Coordinate) (*entity.PlaceInfo, error)
}

// Service 建议服务。无可变状态，可并发使用
type Service struct {
	generator TextGenerator
	geocoder  ReverseGeocoder
}

// NewService 创建建议服务
func NewService(generator TextGenerator, geocoder ReverseGeocoder) *Service {
	return &Service{
		generator: generator,
		geocoder:  geocoder,
	}
}

// GetLocationDetails 逆地理编码后估算地点花费
func (s *Service) GetLocationDetails(ctx context.Context, coord entity.Coordinate) (result *entity.LocationDetails, err error) {
	ctx, span := tracer.Start(ctx, "suggestion.GetLocationDetails", trace.WithAttributes(
		attribute.Float64("geo.lat", coord.Latitude),
		attribute.Float64("geo.lng", coord.Longitude),
	))
	defer func() { tracer.Finish(span, err) }()

	if !coord.Valid() {
		return nil, apperrors.ErrInvalidParam.WithDetail("coordinate out of range")
	}

	place, err := s.geocoder.ReverseGeocode(ctx, coord)
	if err != nil {
		return nil, err
	}

	reply, err := s.generator.GenerateText(ctx, BuildLocationPrompt(place))
	if err != nil {
		return nil, err
	}

	details, perr := parseLocationDetails(reply, place)
	if perr != nil {
		s.defaulted(ctx, kindLocation, perr)
		return fallbackLocationDetails(place), nil
	}
	s.parsed(kindLocation)
	return details, nil
}

// GetBudgetAdvice 根据预算快照给出建议，Total 必须大于 0
func (s *Service) GetBudgetAdvice(ctx context.Context, snapshot BudgetSnapshot) (result *entity.BudgetAdvice, err error) {
	ctx, span := tracer.Start(ctx, "suggestion.GetBudgetAdvice", trace.WithAttributes(
		attribute.Float64("budget.total", snapshot.Total),
		attribute.Int("budget.recent_expenses", len(snapshot.RecentExpenses)),
	))
	defer func() { tracer.Finish(span, err) }()

	if !(snapshot.Total > 0) || math.IsInf(snapshot.Total, 0) {
		return nil, apperrors.ErrInvalidParam.WithDetail("total budget must be greater than 0")
	}

	reply, err := s.generator.GenerateText(ctx, BuildBudgetAdvicePrompt(snapshot))
	if err != nil {
		return nil, err
	}

	advice, perr := parseBudgetAdvice(reply)
	if perr != nil {
		s.defaulted(ctx, kindBudget, perr)
		return fallbackBudgetAdvice(), nil
	}
	s.parsed(kindBudget)
	return advice, nil
}

// SuggestExpenseDetails 根据标题猜测支出分类与价格区间，location 可为空
func (s *Service) SuggestExpenseDetails(ctx context.Context, title, location string) (result *entity.ExpenseSuggestion, err error) {
	ctx, span := tracer.Start(ctx, "suggestion.SuggestExpenseDetails", trace.WithAttributes(
		attribute.Bool("expense.has_location", location != ""),
	))
	defer func() { tracer.Finish(span, err) }()

	reply, err := s.generator.GenerateText(ctx, BuildExpensePrompt(title, location))
	if err != nil {
		return nil, err
	}

	suggestion, perr := parseExpenseSuggestion(reply)
	if perr != nil {
		s.defaulted(ctx, kindExpense, perr)
		return fallbackExpenseSuggestion(), nil
	}
	s.parsed(kindExpense)
	return suggestion, nil
}

// GetTripInsights 行程整体花费洞察
func (s *Service) GetTripInsights(ctx context.Context, trip *entity.Trip) (result *entity.TripInsights, err error) {
	if trip == nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("trip is required")
	}
	ctx = logger.WithContext(ctx, logger.TripIDKey, trip.ID)
	ctx, span := tracer.Start(ctx, "suggestion.GetTripInsights", trace.WithAttributes(
		attribute.String("trip.id", trip.ID),
		attribute.Int("trip.expenses", len(trip.Expenses)),
	))
	defer func() { tracer.Finish(span, err) }()

	reply, err := s.generator.GenerateText(ctx, BuildTripInsightsPrompt(trip))
	if err != nil {
		return nil, err
	}

	insights, perr := parseTripInsights(reply)
	if perr != nil {
		s.defaulted(ctx, kindInsights, perr)
		return fallbackTripInsights(), nil
	}
	s.parsed(kindInsights)
	return insights, nil
}

func (s *Service) parsed(kind string) {
	metrics.SuggestionTotal.WithLabelValues(kind, string(entity.OutcomeParsed)).Inc()
}

// defaulted 回复无法解析时记录并改用兜底结果
func (s *Service) defaulted(ctx context.Context, kind string, cause error) {
	logger.Warn(ctx, "model reply unparseable, using fallback",
		"kind", kind,
		"error", cause.Error(),
	)
	metrics.SuggestionTotal.WithLabelValues(kind, string(entity.OutcomeDefaulted)).Inc()
}
