package main

import (
	"errors"
	"fmt"
	"strings"

	"pb01/models"

	"golang.org/x/crypto/bcrypt"
)

// errAccountInactive distinguishes "known user, not yet activated" from bad
// credentials so the handler can answer 403 instead of 401.
var errAccountInactive = errors.New("account not activated")

// RegisterUser creates an inactive account with the regular user role.
func RegisterUser(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email required")
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email already registered")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	// ensure role exists (idempotent)
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user", Description: "regular user"}
		if err2 := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err2 != nil {
			return nil, fmt.Errorf("failed to ensure user role: %v", err2)
		}
	}
	rid := role.ID
	user := models.User{Email: email, Name: name, HashedPassword: hashedPassword, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, fmt.Errorf("email already registered")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials and the activation gate.
func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if !user.IsActive {
		return models.User{}, errAccountInactive
	}
	return user, nil
}

// ChangePassword re-checks the old password before storing a new hash.
func ChangePassword(user *models.User, oldPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(oldPassword)); err != nil {
		return fmt.Errorf("invalid credentials")
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password too short (min 6)")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Model(user).Update("hashed_password", hashed).Error
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
