package repository

import (
	"context"

	"finpin-api/internal/domain/entity"
)

// TripRepository 行程仓储接口
// 返回值均为副本，调用方修改后需通过 Update 写回
type TripRepository interface {
	// Create 创建行程
	Create(ctx context.Context, trip *entity.Trip) error

	// GetByID 根据 ID 获取行程
	GetByID(ctx context.Context, id string) (*entity.Trip, error)

	// Update 覆盖更新行程
	Update(ctx context.Context, trip *entity.Trip) error

	// Delete 删除行程
	Delete(ctx context.Context, id string) error

	// List 按创建时间升序分页获取行程
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.Trip], error)
}
