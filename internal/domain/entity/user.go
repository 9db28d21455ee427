package entity

import "time"

// Roles for back-office users.
const (
	RoleAdmin      = "admin"
	RoleOffice     = "office"
	RoleTechnician = "technician"
)

// User is a back-office account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
