package migration

import (
	"github.com/adepa-shop/adepa/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OrderModel{},
		&models.PaymentIntentModel{},
		&models.SettlementModel{},
		&models.PaymentEventModel{},
		&models.ProviderConfigModel{},
	}
}
