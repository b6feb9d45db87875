package main

import (
	"flag"
	"fmt"
	"log"

	"feetrack-schools/app/config"
	"feetrack-schools/app/database"
	"feetrack-schools/app/models"
	"feetrack-schools/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "bursar", "role (admin or bursar)")
	flag.Parse()

	if *email == "" || *password == "" || *firstName == "" {
		log.Fatal("email, password and first-name are required")
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hash,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      *role,
	}
	if err := database.CreateUser(db, user); err != nil {
		log.Fatal("Failed to create user:", err)
	}

	fmt.Printf("User created successfully: %s %s (%s, %s)\n", user.FirstName, user.LastName, user.Email, user.Role)
}
