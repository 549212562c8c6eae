package order

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Order, error)
	Update(ctx context.Context, order *Order) error
}
