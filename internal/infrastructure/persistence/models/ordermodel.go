package models

import "time"

type OrderModel struct {
	ID            uint   `gorm:"primaryKey"`
	OrderNumber   string `gorm:"uniqueIndex;size:64;not null"`
	CustomerEmail string `gorm:"size:255;not null;index"`
	Total         int64  `gorm:"not null"`
	Currency      string `gorm:"size:10;not null"`
	Status        string `gorm:"size:20;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
