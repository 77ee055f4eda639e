package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"finpin-api/internal/domain/entity"
	apperrors "finpin-api/pkg/errors"
)

// extractJSONObject 截取第一个 '{' 到最后一个 '}' 之间的内容。
// 模型回复中 JSON 前后的说明文字会被丢弃；出现多个并列对象时截取结果不是合法 JSON。
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end < start {
		return "", apperrors.ErrParsing.WithDetail("no json object in reply")
	}
	return text[start : end+1], nil
}

// decodeObject 提取并解析模型回复中的 JSON 对象
func decodeObject(text string) (fields, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, apperrors.ErrParsing.WithError(fmt.Errorf("invalid json object: %w", err))
	}
	return fields(obj), nil
}

// fields 模型回复字段，类型不符时返回调用方给定的默认值
type fields map[string]any

func (f fields) str(key, def string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return def
}

func (f fields) num(key string, def float64) float64 {
	if v, ok := f[key].(float64); ok {
		return v
	}
	return def
}

func (f fields) strs(key string) []string {
	arr, ok := f[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

func parseLocationDetails(reply string, place *entity.PlaceInfo) (*entity.LocationDetails, error) {
	f, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	return &entity.LocationDetails{
		Name:          place.Name,
		EstimatedCost: f.num("estimatedCost", 0),
		Duration:      f.str("duration", "2-3 hours"),
		BestTime:      f.str("bestTime", "Morning"),
		FunTip:        f.str("funTip", "Enjoy your visit!"),
		City:          place.City,
		Country:       place.Country,
		Outcome:       entity.OutcomeParsed,
	}, nil
}

func fallbackLocationDetails(place *entity.PlaceInfo) *entity.LocationDetails {
	return &entity.LocationDetails{
		Name:          place.Name,
		EstimatedCost: 50,
		Duration:      "2-3 hours",
		BestTime:      "Anytime",
		FunTip:        "Have a great time!",
		City:          place.City,
		Country:       place.Country,
		Outcome:       entity.OutcomeDefaulted,
	}
}

func parseBudgetAdvice(reply string) (*entity.BudgetAdvice, error) {
	f, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	return &entity.BudgetAdvice{
		Message:         f.str("message", "Keep tracking your expenses!"),
		Suggestions:     f.strs("suggestions"),
		WatchCategories: f.strs("watchCategories"),
		Outcome:         entity.OutcomeParsed,
	}, nil
}

func fallbackBudgetAdvice() *entity.BudgetAdvice {
	return &entity.BudgetAdvice{
		Message:         "You're doing great! Keep monitoring your spending.",
		Suggestions:     []string{},
		WatchCategories: []string{},
		Outcome:         entity.OutcomeDefaulted,
	}
}

func parseExpenseSuggestion(reply string) (*entity.ExpenseSuggestion, error) {
	f, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	return &entity.ExpenseSuggestion{
		Category: f.str("category", entity.CategoryOther),
		MinPrice: f.num("minPrice", 0),
		MaxPrice: f.num("maxPrice", 100),
		Outcome:  entity.OutcomeParsed,
	}, nil
}

func fallbackExpenseSuggestion() *entity.ExpenseSuggestion {
	return &entity.ExpenseSuggestion{
		Category: entity.CategoryOther,
		MinPrice: 0,
		MaxPrice: 100,
		Outcome:  entity.OutcomeDefaulted,
	}
}

func parseTripInsights(reply string) (*entity.TripInsights, error) {
	f, err := decodeObject(reply)
	if err != nil {
		return nil, err
	}
	return &entity.TripInsights{
		Pattern:   f.str("pattern", "You're managing well!"),
		SavingTip: f.str("savingTip", "Consider local markets for meals"),
		Challenge: f.str("challenge", "Try to discover one hidden gem!"),
		Outcome:   entity.OutcomeParsed,
	}, nil
}

func fallbackTripInsights() *entity.TripInsights {
	return &entity.TripInsights{
		Pattern:   "Interesting spending pattern!",
		SavingTip: "Look for free activities",
		Challenge: "Explore like a local!",
		Outcome:   entity.OutcomeDefaulted,
	}
}
