package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"pb01/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/create_user <name> <email> <password> [role]")
		os.Exit(2)
	}
	name := os.Args[1]
	email := strings.ToLower(strings.TrimSpace(os.Args[2]))
	password := os.Args[3]
	roleName := "user"
	if len(os.Args) > 4 {
		roleName = os.Args[4]
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		log.Fatalf("role %q not found (run the server or `migrate` first): %v", roleName, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	rid := role.ID
	user := models.User{Name: name, Email: email, HashedPassword: hashed, IsActive: true, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}
	fmt.Printf("created user id=%d email=%s role=%s\n", user.ID, user.Email, roleName)
}
