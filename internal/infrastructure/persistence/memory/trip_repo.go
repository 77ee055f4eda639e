// Package memory 提供进程内存 Repository 实现（重启后数据丢失）
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"finpin-api/internal/domain/entity"
	"finpin-api/internal/domain/repository"
	apperrors "finpin-api/pkg/errors"
)

var tracer = otel.Tracer("memory")

// TripRepository 行程仓储实现
type TripRepository struct {
	mu    sync.RWMutex
	trips map[string]*entity.Trip
}

// NewTripRepository 创建行程仓储
func NewTripRepository() *TripRepository {
	return &TripRepository{
		trips: make(map[string]*entity.Trip),
	}
}

// Create 创建行程，ID 为空时自动生成
func (r *TripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	_, span := tracer.Start(ctx, "memory.TripRepository.Create")
	defer span.End()

	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	now := time.Now()
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trips[trip.ID]; exists {
		return apperrors.ErrConflict.WithDetail("trip already exists: " + trip.ID)
	}
	r.trips[trip.ID] = trip.Clone()
	return nil
}

// GetByID 根据 ID 获取行程
func (r *TripRepository) GetByID(ctx context.Context, id string) (*entity.Trip, error) {
	_, span := tracer.Start(ctx, "memory.TripRepository.GetByID")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, apperrors.ErrTripNotFound
	}
	return trip.Clone(), nil
}

// Update 覆盖更新行程
func (r *TripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	_, span := tracer.Start(ctx, "memory.TripRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[trip.ID]; !ok {
		return apperrors.ErrTripNotFound
	}
	trip.UpdatedAt = time.Now()
	r.trips[trip.ID] = trip.Clone()
	return nil
}

// Delete 删除行程
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "memory.TripRepository.Delete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return apperrors.ErrTripNotFound
	}
	delete(r.trips, id)
	return nil
}

// List 按创建时间升序分页获取行程
func (r *TripRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Trip], error) {
	_, span := tracer.Start(ctx, "memory.TripRepository.List")
	defer span.End()

	r.mu.RLock()
	all := make([]*entity.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		all = append(all, t.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := len(all)
	start := pagination.Offset()
	if start > total {
		start = total
	}
	end := start + pagination.Limit()
	if end > total {
		end = total
	}

	return repository.NewPagedResult(all[start:end], int64(total), pagination), nil
}
