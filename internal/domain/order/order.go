// Package order models the storefront order as seen by the payment core.
// The core only reads an order's amount context and flips its status to
// paid after successful verification; everything else about orders belongs
// to the storefront subsystem.
package order

import (
	"fmt"
	"time"

	vo "github.com/adepa-shop/adepa/internal/domain/payment/valueobjects"
	"github.com/adepa-shop/adepa/internal/shared/biztime"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

type Order struct {
	id            uint
	orderNumber   string
	customerEmail string
	total         vo.Money
	status        Status

	createdAt time.Time
	updatedAt time.Time
}

// MarkAsPaid flips the order to paid. Idempotent on already-paid orders so
// duplicate verification deliveries stay safe.
func (o *Order) MarkAsPaid() error {
	if o.status == StatusPaid {
		return nil
	}
	if o.status == StatusCancelled {
		return fmt.Errorf("cannot mark cancelled order as paid")
	}

	o.status = StatusPaid
	o.updatedAt = biztime.NowUTC()

	return nil
}

func (o *Order) ID() uint {
	return o.id
}

func (o *Order) OrderNumber() string {
	return o.orderNumber
}

func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

func (o *Order) Total() vo.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

type ReconstructParams struct {
	ID            uint
	OrderNumber   string
	CustomerEmail string
	Total         vo.Money
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Reconstruct(params ReconstructParams) *Order {
	return &Order{
		id:            params.ID,
		orderNumber:   params.OrderNumber,
		customerEmail: params.CustomerEmail,
		total:         params.Total,
		status:        params.Status,
		createdAt:     params.CreatedAt,
		updatedAt:     params.UpdatedAt,
	}
}
