package migrations

import (
	"errors"
	"log"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"
	"fruitstore/internal/services"
)

// SeedDefaultData creates the default admin account and a starter catalog so
// a fresh install is usable right away. Existing data is left untouched.
func SeedDefaultData(authService services.AuthService, fruitRepo repository.FruitRepository) error {
	log.Println("Seeding default data...")

	_, err := authService.Register("Store Admin", "admin@fruitstore.local", "admin12345", string(models.RoleAdmin))
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			log.Println("Admin user already exists")
		} else {
			log.Printf("Warning: Failed to create admin user: %v", err)
		}
	} else {
		log.Println("Admin user created (admin@fruitstore.local)")
	}

	fruits, err := fruitRepo.GetAll()
	if err != nil {
		return err
	}
	if len(fruits) > 0 {
		return nil
	}

	log.Println("Seeding starter catalog...")
	starter := []models.Fruit{
		{Name: "Apel Fuji", Price: "Rp 45.000/kg", Stock: 50, Image: "/images/apel-fuji.jpg"},
		{Name: "Jeruk Mandarin", Price: "Rp 35.000/kg", Stock: 60, Image: "/images/jeruk-mandarin.jpg"},
		{Name: "Mangga Harum Manis", Price: "Rp 40.000/kg", Stock: 40, Image: "/images/mangga.jpg"},
		{Name: "Pisang Cavendish", Price: "Rp 25.000/kg", Stock: 80, Image: "/images/pisang.jpg"},
	}
	for i := range starter {
		if err := fruitRepo.Create(&starter[i]); err != nil {
			log.Printf("Warning: Failed to seed fruit %q: %v", starter[i].Name, err)
		}
	}

	log.Println("Default data seeded successfully")
	return nil
}
