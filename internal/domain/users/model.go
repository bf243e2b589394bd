package users

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

type User struct {
	ID   int64
	Name string
	Role Role

	// TelegramID привязывается после входа по PIN; до этого nil.
	TelegramID *int64

	// DriverID — профиль в ростере для роли driver.
	DriverID *int64

	// PINHash — bcrypt-хэш PIN-кода, который админ выдал водителю.
	PINHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashPIN хэширует PIN перед сохранением.
func HashPIN(pin string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(h), nil
}

// CheckPIN сверяет введённый PIN с хэшем.
func CheckPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
