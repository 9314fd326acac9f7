package database

import (
	"errors"
	"log"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUsers(db)
	SeedLocations(db)
}

func SeedUsers(db *gorm.DB) {
	users := []models.User{
		{Username: "admin", Name: "Administrator", Email: "admin@wms.local", Role: models.RoleAdmin},
		{Username: "manager", Name: "Warehouse Manager", Email: "manager@wms.local", Role: models.RoleManager},
		{Username: "picker", Name: "Floor Picker", Email: "picker@wms.local", Role: models.RolePicker},
		{Username: "packer", Name: "Floor Packer", Email: "packer@wms.local", Role: models.RolePacker},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("username = ?", user.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Unexpected DB error: %v", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user.Password = string(hashed)
		user.IsActive = true

		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", user.Username, err)
		}
	}
}

func SeedLocations(db *gorm.DB) {
	locations := []models.Location{
		{Code: "A-01-01", Zone: "A", Aisle: "01", Shelf: "01"},
		{Code: "A-01-02", Zone: "A", Aisle: "01", Shelf: "02"},
		{Code: "B-01-01", Zone: "B", Aisle: "01", Shelf: "01"},
		{Code: "RECV", Zone: "DOCK", Aisle: "00", Shelf: "00"},
	}

	for _, location := range locations {
		var existing models.Location
		err := db.Where("code = ?", location.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Unexpected DB error: %v", err)
		}

		location.IsActive = true
		if err := db.Create(&location).Error; err != nil {
			log.Fatalf("Failed to seed location %s: %v", location.Code, err)
		}
	}
}
