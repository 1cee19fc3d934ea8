package migration

import (
	"EcoBite-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Post{}); err != nil {
		log.Fatalf("Error migrating post database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Claim{}); err != nil {
		log.Fatalf("Error migrating claim database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
