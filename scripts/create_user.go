package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"alfredoptarigan/ats-parser/internal/config"
	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

// Usage: go run scripts/create_user.go -username jane -email jane@example.com -admin
// The password is read from ATS_PASSWORD so it never shows up in shell history.
func main() {
	username := flag.String("username", "", "login name")
	email := flag.String("email", "", "email address")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	admin := flag.Bool("admin", false, "grant admin rights")
	flag.Parse()

	password := os.Getenv("ATS_PASSWORD")
	if strings.TrimSpace(*username) == "" || strings.TrimSpace(*email) == "" {
		log.Fatal("❌ -username and -email are required")
	}
	if len(password) < 8 {
		log.Fatal("❌ ATS_PASSWORD must be set to at least 8 characters")
	}

	log.Println("🚀 Creating user...")

	cfg := config.Load()
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	authService := services.NewAuthService(repositories.NewUserRepository(db))

	user := &models.User{
		Username:  strings.TrimSpace(*username),
		Email:     strings.TrimSpace(*email),
		FirstName: *firstName,
		LastName:  *lastName,
		IsAdmin:   *admin,
	}
	if err := authService.CreateUser(user, password); err != nil {
		log.Fatalf("❌ Failed to create user: %v", err)
	}

	log.Printf("✅ Created user %s (%s)", user.Username, user.ID)
}
