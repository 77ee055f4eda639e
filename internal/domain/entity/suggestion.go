package entity

// Outcome 建议结果来源
type Outcome string

const (
	// OutcomeParsed 结果来自模型回复（缺失字段使用字段级默认值）
	OutcomeParsed Outcome = "parsed"
	// OutcomeDefaulted 模型回复无法解析，整体使用兜底结果
	OutcomeDefaulted Outcome = "defaulted"
)

// UnknownLocationName 逆地理编码无结果时的地点名称
const UnknownLocationName = "Unknown Location"

// PlaceInfo 逆地理编码结果
type PlaceInfo struct {
	Name    string  `json:"name"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}

// UnknownPlace 返回无结果时的兜底地点
func UnknownPlace() *PlaceInfo {
	return &PlaceInfo{Name: UnknownLocationName}
}

// LocationDetails 地点花费估算
type LocationDetails struct {
	Name          string  `json:"name"`
	EstimatedCost float64 `json:"estimated_cost"`
	Duration      string  `json:"duration"`
	BestTime      string  `json:"best_time"`
	FunTip        string  `json:"fun_tip"`
	City          *string `json:"city,omitempty"`
	Country       *string `json:"country,omitempty"`
	Outcome       Outcome `json:"outcome"`
}

// BudgetAdvice 预算建议
type BudgetAdvice struct {
	Message         string   `json:"message"`
	Suggestions     []string `json:"suggestions"`
	WatchCategories []string `json:"watch_categories"`
	Outcome         Outcome  `json:"outcome"`
}

// ExpenseSuggestion 支出分类与价格区间建议
type ExpenseSuggestion struct {
	Category string  `json:"category"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	Outcome  Outcome `json:"outcome"`
}

// TripInsights 行程洞察
type TripInsights struct {
	Pattern   string  `json:"pattern"`
	SavingTip string  `json:"saving_tip"`
	Challenge string  `json:"challenge"`
	Outcome   Outcome `json:"outcome"`
}
