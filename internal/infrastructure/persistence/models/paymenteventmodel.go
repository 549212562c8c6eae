package models

import "time"

type PaymentEventModel struct {
	ID              uint    `gorm:"primaryKey"`
	SID             string  `gorm:"column:sid;uniqueIndex;size:32;not null"`
	PaymentIntentID uint    `gorm:"index;not null"`
	Provider        string  `gorm:"size:32;not null"`
	EventType       string  `gorm:"size:64;not null"`
	Payload         JSONB   `gorm:"type:json"`
	Processed       bool    `gorm:"not null;default:false"`
	ErrorMessage    *string `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"index"`
}

func (PaymentEventModel) TableName() string {
	return "payment_events"
}
