package trip

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"finpin-api/internal/domain/entity"
	"finpin-api/internal/domain/repository"
	"finpin-api/internal/infrastructure/persistence/memory"
	apperrors "finpin-api/pkg/errors"
)

var day = time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)

func newService() *Service {
	return NewService(memory.NewTripRepository())
}

func mustCreate(t *testing.T, s *Service) *entity.Trip {
	t.Helper()
	trip, err := s.CreateTrip(context.Background(), CreateTripInput{
		Name: "Lisbon", StartDate: day, EndDate: day.AddDate(0, 0, 4), TotalBudget: 1000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return trip
}

func TestCreateTripValidation(t *testing.T) {
	s := newService()
	cases := map[string]CreateTripInput{
		"empty name":      {Name: "  ", StartDate: day, EndDate: day, TotalBudget: 1},
		"end before":      {Name: "x", StartDate: day, EndDate: day.AddDate(0, 0, -1), TotalBudget: 1},
		"zero budget":     {Name: "x", StartDate: day, EndDate: day, TotalBudget: 0},
		"negative budget": {Name: "x", StartDate: day, EndDate: day, TotalBudget: -5},
		"nan budget":      {Name: "x", StartDate: day, EndDate: day, TotalBudget: math.NaN()},
		"missing dates":   {Name: "x", TotalBudget: 10},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.CreateTrip(context.Background(), in); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestExpenseLifecycle(t *testing.T) {
	s := newService()
	ctx := context.Background()
	trip := mustCreate(t, s)

	first, err := s.AddExpense(ctx, trip.ID, ExpenseInput{Title: "Tram", Amount: 3, Category: "Transport"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	second, err := s.AddExpense(ctx, trip.ID, ExpenseInput{Title: "Pastel de nata", Amount: 1.5})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if second.Category != entity.CategoryOther {
		t.Fatalf("empty category should default to Other, got %s", second.Category)
	}
	if second.Date.IsZero() {
		t.Fatalf("date should default to now")
	}

	updated, err := s.UpdateExpense(ctx, trip.ID, first.ID, ExpenseInput{Title: "Tram 28", Amount: 3.2, Category: "Transport"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != first.ID {
		t.Fatalf("update must keep id")
	}

	got, _ := s.GetTrip(ctx, trip.ID)
	if len(got.Expenses) != 2 || got.Expenses[0].Title != "Tram 28" || got.Expenses[1].ID != second.ID {
		t.Fatalf("unexpected expenses %+v", got.Expenses)
	}

	if err := s.DeleteExpense(ctx, trip.ID, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.DeleteExpense(ctx, trip.ID, first.ID); !errors.Is(err, apperrors.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
	if _, err := s.UpdateExpense(ctx, trip.ID, "missing", ExpenseInput{Title: "x"}); !errors.Is(err, apperrors.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestExpenseValidation(t *testing.T) {
	s := newService()
	trip := mustCreate(t, s)
	ctx := context.Background()

	for name, in := range map[string]ExpenseInput{
		"empty title":    {Title: "", Amount: 1},
		"negative":       {Title: "x", Amount: -1},
		"bad category":   {Title: "x", Amount: 1, Category: "Gifts"},
		"infinite price": {Title: "x", Amount: math.Inf(1)},
	} {
		if _, err := s.AddExpense(ctx, trip.ID, in); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("%s: expected ErrValidationFailed, got %v", name, err)
		}
	}
	if _, err := s.AddExpense(ctx, "missing", ExpenseInput{Title: "x", Amount: 1}); !errors.Is(err, apperrors.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestPins(t *testing.T) {
	s := newService()
	trip := mustCreate(t, s)
	ctx := context.Background()

	if _, err := s.AddPin(ctx, trip.ID, PinInput{Name: "Bad", Coordinate: entity.Coordinate{Latitude: 100}}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if _, err := s.AddPin(ctx, trip.ID, PinInput{Coordinate: entity.Coordinate{}}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for empty name, got %v", err)
	}

	pin, err := s.AddPin(ctx, trip.ID, PinInput{Name: "Belém Tower", Coordinate: entity.Coordinate{Latitude: 38.6916, Longitude: -9.2160}, CostEstimate: 10})
	if err != nil {
		t.Fatalf("add pin failed: %v", err)
	}
	if err := s.DeletePin(ctx, trip.ID, pin.ID); err != nil {
		t.Fatalf("delete pin failed: %v", err)
	}
	if err := s.DeletePin(ctx, trip.ID, pin.ID); !errors.Is(err, apperrors.ErrPinNotFound) {
		t.Fatalf("expected ErrPinNotFound, got %v", err)
	}
}

func TestSummaryAndSnapshot(t *testing.T) {
	s := newService()
	ctx := context.Background()
	trip, err := s.SeedDemoTrip(ctx)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sum, err := s.Summary(ctx, trip.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if sum.Spent != 1470 || sum.Remaining != 1030 || sum.PinCount != 3 || sum.DurationDays != 4 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if math.Abs(sum.PercentSpent-58.8) > 1e-9 {
		t.Fatalf("unexpected percent %v", sum.PercentSpent)
	}
	wantOrder := []string{"Accommodation", "Transport", "Food", "Activity"}
	if len(sum.Categories) != len(wantOrder) {
		t.Fatalf("unexpected categories %+v", sum.Categories)
	}
	for i, c := range wantOrder {
		if sum.Categories[i].Category != c {
			t.Fatalf("category %d: want %s, got %s", i, c, sum.Categories[i].Category)
		}
	}
	if sum.Categories[3].Amount != 300 {
		t.Fatalf("activity total should be 300, got %v", sum.Categories[3].Amount)
	}

	snap, err := s.BudgetSnapshot(ctx, trip.ID)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.Total != 2500 || snap.Spent != 1470 || len(snap.RecentExpenses) != 5 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.RecentExpenses[0].Title != "Hotel Booking" {
		t.Fatalf("expenses should keep insertion order")
	}
}

func TestListAndDelete(t *testing.T) {
	s := newService()
	ctx := context.Background()
	a := mustCreate(t, s)
	mustCreate(t, s)

	page, err := s.ListTrips(ctx, repository.NewPagination(1, 10))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 trips, got %d", page.Total)
	}
	if err := s.DeleteTrip(ctx, a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.GetTrip(ctx, a.ID); !errors.Is(err, apperrors.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestConcurrentAddExpenseKeepsAll(t *testing.T) {
	s := newService()
	trip := mustCreate(t, s)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddExpense(context.Background(), trip.ID, ExpenseInput{Title: "Coffee", Amount: 2, Category: "Food"}); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := s.GetTrip(context.Background(), trip.ID)
	if len(got.Expenses) != 20 {
		t.Fatalf("expected 20 expenses, got %d", len(got.Expenses))
	}
}
