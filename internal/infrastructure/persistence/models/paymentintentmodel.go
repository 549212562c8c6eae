package models

import "time"

type PaymentIntentModel struct {
	ID                uint    `gorm:"primaryKey"`
	SID               string  `gorm:"column:sid;uniqueIndex;size:32;not null"`
	OrderID           *uint   `gorm:"index"`
	Provider          string  `gorm:"size:32;not null;index:idx_payment_intents_provider_ref"`
	ProviderReference *string `gorm:"size:128;index:idx_payment_intents_provider_ref"`
	Amount            int64   `gorm:"not null"`
	Currency          string  `gorm:"size:10;not null"`
	Status            string  `gorm:"size:20;not null;index"`
	RedirectURL       *string `gorm:"type:text"`
	CallbackURL       string  `gorm:"type:text"`
	IdempotencyKey    *string `gorm:"uniqueIndex;size:128"`
	Metadata          JSONB   `gorm:"type:json"`
	Version           int     `gorm:"default:0"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (PaymentIntentModel) TableName() string {
	return "payment_intents"
}
