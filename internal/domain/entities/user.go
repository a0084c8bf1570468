package entities

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Id          uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       string
	Company     string
	JobPosition string
	Role        UserRole
}

func NewUser(firstName, lastName, email, password string) *User {
	now := time.Now()
	return &User{
		CreatedAt: now,
		UpdatedAt: now,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      RoleUser,
	}
}

// HashPassword replaces the raw password with its bcrypt hash. The raw value
// is never persisted.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}
