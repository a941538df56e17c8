package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role determines which actions a user may perform.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole maps a raw string onto a recognized role. Unrecognized
// values are rejected so authorization stays fail-closed.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User rows are removed outright on delete, never soft-deleted, so a
// removed username or email immediately becomes available again.
type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	FirstName string    `gorm:"type:varchar(50)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(50)" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	AssignedTasks []Task `gorm:"foreignKey:AssigneeID" json:"-"`
}

// bcrypt hashes carry a "$2a$"/"$2b$"/"$2y$" prefix.
func isHashed(password string) bool {
	return strings.HasPrefix(password, "$2a$") ||
		strings.HasPrefix(password, "$2b$") ||
		strings.HasPrefix(password, "$2y$")
}

// BeforeSave hashes the password on every write path unless it is
// already a bcrypt hash, so re-saving a user never double-hashes.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" || isHashed(u.Password) {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	return nil
}

// CheckPassword compares a raw password against the stored hash.
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}
