package main

import (
	"log"
	"os"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Resets the admin account password from the command line. Useful after a
// lockout; the API has no unauthenticated recovery path.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Admin
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@gmail.com"
	}
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("user %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	newPassword := os.Getenv("ADMIN_PASSWORD")
	if newPassword == "" {
		newPassword = "admin"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// 5. Update and drop every open session for the account
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("failed to update password in DB: %v", err)
	}
	if err := db.Unscoped().Delete(&model.Session{}, "user_id = ?", user.ID).Error; err != nil {
		log.Printf("warning: failed to clear sessions: %v", err)
	}

	log.Printf("password for %s has been reset", email)
}
