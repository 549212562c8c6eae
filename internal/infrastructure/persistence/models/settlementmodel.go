package models

import "time"

type SettlementModel struct {
	ID              uint   `gorm:"primaryKey"`
	SID             string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	// One settlement per intent, enforced at the storage layer.
	PaymentIntentID       uint   `gorm:"uniqueIndex;not null"`
	OrderID               *uint  `gorm:"index"`
	Provider              string `gorm:"size:32;not null"`
	ProviderTransactionID string `gorm:"size:128;not null"`
	Amount                int64  `gorm:"not null"`
	Currency              string `gorm:"size:10;not null"`
	Status                string `gorm:"size:20;not null"`
	CreatedAt             time.Time
}

func (SettlementModel) TableName() string {
	return "settlements"
}
