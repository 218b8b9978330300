package mirrorrepo

import (
	"context"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"

	"gorm.io/gorm"
)

// GormMirrorRepository implements ports.MirrorRepository using GORM.
type GormMirrorRepository struct {
	db *gorm.DB
}

var _ ports.MirrorRepository = (*GormMirrorRepository)(nil)

// NewGormMirrorRepository creates a new GORM mirror repository.
func NewGormMirrorRepository(db *gorm.DB) *GormMirrorRepository {
	return &GormMirrorRepository{db: db}
}

// ReplaceAll atomically replaces the persisted mirror with the given set.
// Replacement runs in one transaction so a reader never observes a half
// written snapshot.
func (r *GormMirrorRepository) ReplaceAll(ctx context.Context, orders []*order.Order) error {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(o))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&OrderDTO{}).Error; err != nil {
			return err
		}
		if len(dtos) == 0 {
			return nil
		}
		return tx.Create(&dtos).Error
	})
}

// LoadAll returns the persisted mirror, possibly empty.
func (r *GormMirrorRepository) LoadAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
