package database

import (
	"fmt"

	"viralWallet/domain"
	"viralWallet/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Service{},
		&domain.Order{},
		&domain.WalletRequest{},
		&domain.SupportTicket{},
	)
}

// SeedServices loads the default catalog when the services table is empty.
// Prices are naira per 1000 units.
func SeedServices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	services := []domain.Service{
		{Platform: "Instagram", ServiceType: "Followers", PricePer1000: 2500, Min: 100, Max: 50000},
		{Platform: "Instagram", ServiceType: "Likes", PricePer1000: 800, Min: 50, Max: 20000},
		{Platform: "Instagram", ServiceType: "Video Views", PricePer1000: 500, Min: 100, Max: 100000},
		{Platform: "TikTok", ServiceType: "Followers", PricePer1000: 2000, Min: 100, Max: 50000},
		{Platform: "TikTok", ServiceType: "Video Views", PricePer1000: 400, Min: 100, Max: 100000},
		{Platform: "TikTok", ServiceType: "Likes", PricePer1000: 700, Min: 50, Max: 20000},
		{Platform: "YouTube", ServiceType: "Subscribers", PricePer1000: 3500, Min: 50, Max: 5000},
		{Platform: "YouTube", ServiceType: "Video Likes", PricePer1000: 1000, Min: 50, Max: 5000},
		{Platform: "YouTube", ServiceType: "Video Views", PricePer1000: 700, Min: 100, Max: 50000},
		{Platform: "Twitter", ServiceType: "Followers", PricePer1000: 2000, Min: 50, Max: 10000},
		{Platform: "Twitter", ServiceType: "Retweets", PricePer1000: 800, Min: 50, Max: 5000},
		{Platform: "Twitter", ServiceType: "Likes", PricePer1000: 800, Min: 50, Max: 5000},
		{Platform: "Telegram", ServiceType: "Channel Members", PricePer1000: 1800, Min: 50, Max: 20000},
		{Platform: "Telegram", ServiceType: "Post Views", PricePer1000: 300, Min: 100, Max: 50000},
		{Platform: "Facebook", ServiceType: "Page Likes", PricePer1000: 2200, Min: 50, Max: 10000},
		{Platform: "Facebook", ServiceType: "Post Likes", PricePer1000: 800, Min: 50, Max: 5000},
	}

	for i := range services {
		services[i].Status = domain.ServiceStatusActive
	}

	return db.Create(&services).Error
}
