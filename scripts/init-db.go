package main

import (
	"fmt"
	"log"

	"pathxpress/internal/config"
	"pathxpress/internal/database"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.ClientAccount{},
		&models.RateTier{},
		&models.Shipment{},
		&models.TrackingEvent{},
		&models.CODRecord{},
		&models.CODRemittance{},
		&models.CODRemittanceItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.NumberSequence{},
		&models.ServiceSetting{},
		&models.Driver{},
		&models.Route{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.ClientAccount{},
		&models.RateTier{},
		&models.Shipment{},
		&models.TrackingEvent{},
		&models.CODRecord{},
		&models.CODRemittance{},
		&models.CODRemittanceItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.NumberSequence{},
		&models.ServiceSetting{},
		&models.Driver{},
		&models.Route{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create default admin user
	fmt.Println("Creating default admin user...")
	userRepo := repository.NewUserRepository(db)
	if existing, err := userRepo.GetByUsername("admin"); err == nil && existing != nil {
		fmt.Println("Admin user already exists")
	} else {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}
		admin := &models.User{
			Username:     "admin",
			Email:        "ops@pathxpress.ae",
			PasswordHash: string(passwordHash),
			Role:         string(models.RoleAdmin),
			IsActive:     true,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			fmt.Println("Admin user created successfully")
			fmt.Println("Username: admin")
			fmt.Println("Password: admin123")
		}
	}

	// Seed the platform fee schedule
	fmt.Println("Creating default service settings...")
	settingsRepo := repository.NewSettingsRepository(db)
	defaults := models.DefaultServiceConfig()
	settings := []*models.ServiceSetting{
		{SettingName: models.SettingCODFeePercent, NumericValue: defaults.CODFeePercent, IsActive: true, UpdatedBy: 1},
		{SettingName: models.SettingCODMinFee, NumericValue: defaults.CODMinFee, IsActive: true, UpdatedBy: 1},
		{SettingName: models.SettingCODMaxFee, NumericValue: defaults.CODMaxFee, IsActive: true, UpdatedBy: 1},
		{SettingName: models.SettingVolumetricDivisor, NumericValue: defaults.VolumetricDivisor, IsActive: true, UpdatedBy: 1},
		{SettingName: models.SettingSDDCutoff, TextValue: defaults.SDDCutoff, IsActive: true, UpdatedBy: 1},
		{SettingName: models.SettingDefaultTaxPercent, NumericValue: defaults.DefaultTaxPercent, IsActive: true, UpdatedBy: 1},
	}
	for _, setting := range settings {
		if err := settingsRepo.Upsert(setting); err != nil {
			log.Printf("Warning: Failed to seed setting %s: %v", setting.SettingName, err)
		}
	}

	// Seed starter volume tiers for both services
	fmt.Println("Creating default rate tiers...")
	tierRepo := repository.NewRateTierRepository(db)
	cap200 := 200
	cap1000 := 1000
	tiers := []*models.RateTier{
		{Name: "DOM Starter", ServiceType: models.ServiceDOM, MinVolume: 0, MaxVolume: &cap200, BaseRate: 16, AdditionalKgRate: 2, MaxWeight: 5, IsActive: true},
		{Name: "DOM Growth", ServiceType: models.ServiceDOM, MinVolume: 201, MaxVolume: &cap1000, BaseRate: 14, AdditionalKgRate: 2, MaxWeight: 5, IsActive: true},
		{Name: "DOM Enterprise", ServiceType: models.ServiceDOM, MinVolume: 1001, BaseRate: 12, AdditionalKgRate: 1.5, MaxWeight: 5, IsActive: true},
		{Name: "SDD Starter", ServiceType: models.ServiceSDD, MinVolume: 0, MaxVolume: &cap200, BaseRate: 25, AdditionalKgRate: 3, MaxWeight: 5, IsActive: true},
		{Name: "SDD Growth", ServiceType: models.ServiceSDD, MinVolume: 201, BaseRate: 22, AdditionalKgRate: 3, MaxWeight: 5, IsActive: true},
	}
	for _, tier := range tiers {
		if err := tierRepo.Create(tier); err != nil {
			log.Printf("Warning: Failed to seed rate tier %s: %v", tier.Name, err)
		}
	}

	fmt.Println("Database initialization complete")
}
