package postgres

import (
	"log"

	"github.com/cherriedy/brewaco/internal/config"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.AppConfig) *gorm.DB {
	dsn := cfg.StoreDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.ProductModel{},
		&models.CartItemModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.PaymentModel{},
	)

	return db
}
