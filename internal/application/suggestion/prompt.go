package suggestion

import (
	"math"
	"strconv"
	"strings"

	"finpin-api/internal/domain/entity"
)

// maxRecentExpenses 预算提示词中最多列出的近期支出条数
const maxRecentExpenses = 5

// overspendPercent 超过该比例时在提示词中追加提醒
const overspendPercent = 75

const overspendClause = "I'm getting close to my limit! 😅"

// BudgetSnapshot 预算建议的输入
type BudgetSnapshot struct {
	Spent          float64
	Total          float64
	Remaining      float64
	RecentExpenses []entity.Expense
}

// PercentSpent 已花费占比，Total 必须大于 0
func (s BudgetSnapshot) PercentSpent() float64 {
	return s.Spent / s.Total * 100
}

// BuildLocationPrompt 地点花费估算提示词
func BuildLocationPrompt(place *entity.PlaceInfo) string {
	city := "this location"
	if place.City != nil {
		city = *place.City
	}

	var b strings.Builder
	b.WriteString("You're my friendly travel buddy helping me plan my trip! 🎒\n")
	b.WriteString("\n")
	b.WriteString("I'm visiting " + place.Name + " in " + city + ".\n")
	b.WriteString("\n")
	b.WriteString("Can you tell me:\n")
	b.WriteString("1. Typical cost to visit this place (entry fees, activities)\n")
	b.WriteString("2. Average time people spend here\n")
	b.WriteString("3. Best time of day to visit\n")
	b.WriteString("4. One fun tip or must-do thing here\n")
	b.WriteString("\n")
	b.WriteString("Keep it short and friendly, like you're texting a friend!\n")
	b.WriteString("Format the response as JSON with keys: estimatedCost, duration, bestTime, funTip")
	return b.String()
}

// BuildBudgetAdvicePrompt 预算建议提示词
func BuildBudgetAdvicePrompt(s BudgetSnapshot) string {
	percent := s.PercentSpent()
	clause := ""
	if percent > overspendPercent {
		clause = overspendClause
	}

	var b strings.Builder
	b.WriteString("Hey! You're my friendly budget buddy helping me stay on track during my trip! 💰\n")
	b.WriteString("\n")
	b.WriteString("Here's my situation:\n")
	b.WriteString("- Total budget: $" + truncate(s.Total) + "\n")
	b.WriteString("- Already spent: $" + truncate(s.Spent) + " (" + truncate(percent) + "%)\n")
	b.WriteString("- Remaining: $" + truncate(s.Remaining) + "\n")
	b.WriteString("- Recent expenses: " + recentExpenseList(s.RecentExpenses) + "\n")
	b.WriteString("\n")
	b.WriteString(clause + "\n")
	b.WriteString("\n")
	b.WriteString("Can you:\n")
	b.WriteString("1. Give me a friendly heads up about my spending\n")
	b.WriteString("2. If I'm overspending, suggest 2-3 practical ways to save\n")
	b.WriteString("3. Recommend what categories I should watch out for\n")
	b.WriteString("\n")
	b.WriteString("Talk to me like a friend who cares but isn't judgy! Keep it real and helpful.\n")
	b.WriteString("Format as JSON with keys: message, suggestions (array), watchCategories (array)")
	return b.String()
}

// BuildExpensePrompt 支出分类提示词，location 为空表示未提供
func BuildExpensePrompt(title, location string) string {
	locationLine := ""
	if location != "" {
		locationLine = "Location: " + location
	}

	var b strings.Builder
	b.WriteString("Quick help! I just made a purchase: \"" + title + "\"\n")
	b.WriteString(locationLine + "\n")
	b.WriteString("\n")
	b.WriteString("Can you guess:\n")
	b.WriteString("1. What category this belongs to (Food/Transport/Accommodation/Activity/Shopping/Other)\n")
	b.WriteString("2. Typical price range for this\n")
	b.WriteString("\n")
	b.WriteString("Just give me your best guess!\n")
	b.WriteString("Format as JSON with keys: category, minPrice, maxPrice")
	return b.String()
}

// BuildTripInsightsPrompt 行程洞察提示词
func BuildTripInsightsPrompt(trip *entity.Trip) string {
	var b strings.Builder
	b.WriteString("Hey travel friend! 🌍 Quick check-in on my " + trip.Name + " trip:\n")
	b.WriteString("\n")
	b.WriteString("- Days: " + strconv.Itoa(trip.DurationDays()) + "\n")
	b.WriteString("- Budget: $" + truncate(trip.TotalBudget) + "\n")
	b.WriteString("- Spent so far: $" + truncate(trip.Spent()) + "\n")
	b.WriteString("- Mostly spending on: " + trip.DominantCategory() + "\n")
	b.WriteString("- Places pinned: " + strconv.Itoa(len(trip.Pins)) + "\n")
	b.WriteString("\n")
	b.WriteString("Give me:\n")
	b.WriteString("1. A friendly one-liner about my spending pattern\n")
	b.WriteString("2. One money-saving tip based on what you see\n")
	b.WriteString("3. A fun challenge or goal for the rest of my trip\n")
	b.WriteString("\n")
	b.WriteString("Keep it encouraging and fun!\n")
	b.WriteString("Format as JSON with keys: pattern, savingTip, challenge")
	return b.String()
}

func recentExpenseList(expenses []entity.Expense) string {
	if len(expenses) > maxRecentExpenses {
		expenses = expenses[:maxRecentExpenses]
	}
	items := make([]string, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, e.Category+": $"+formatAmount(e.Amount))
	}
	return strings.Join(items, ", ")
}

// truncate 向零取整后格式化
func truncate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatInt(int64(v), 10)
}

// formatAmount 整数金额保留一位小数（120.0），其余按最短表示输出
func formatAmount(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
