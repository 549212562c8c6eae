package models

import "time"

type ProviderConfigModel struct {
	ID          uint       `gorm:"primaryKey"`
	Key         string     `gorm:"column:provider_key;uniqueIndex;size:32;not null"`
	DisplayName string     `gorm:"size:64;not null"`
	Enabled     bool       `gorm:"not null;default:false;index"`
	IsPrimary   bool       `gorm:"column:is_primary;not null;default:false"`
	TestMode    bool       `gorm:"not null;default:true"`
	Priority    int        `gorm:"not null;default:0"`
	Currencies  StringList `gorm:"type:json"`
	Credentials StringMap  `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProviderConfigModel) TableName() string {
	return "payment_providers"
}
