package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a platform account (customer, farmer or admin)
type User struct {
	ID                uint       `gorm:"primaryKey" json:"userId"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	EncryptedPassword string     `gorm:"column:encrypted_password;not null" json:"-"`
	Phone             string     `json:"phone"`
	Address           *string    `json:"address"`
	Status            string     `gorm:"default:ACTIVE;index" json:"status"`
	UserType          string     `gorm:"default:CUSTOMER;index" json:"userType"`
	DiscardedAt       *time.Time `gorm:"index" json:"-"`
	CreatedAt         time.Time  `json:"registrationDate"`
	UpdatedAt         time.Time  `json:"-"`

	// Associations
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = StatusActive
	}
	if u.UserType == "" {
		u.UserType = UserTypeCustomer
	}
	return nil
}

// IsAdmin returns true if the account has the admin user type
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// IsActive returns true if the account can log in and place orders
func (u *User) IsActive() bool {
	return u.Status == StatusActive && u.DiscardedAt == nil
}

// IsDiscarded returns true if user is soft-deleted
func (u *User) IsDiscarded() bool {
	return u.DiscardedAt != nil
}

// User type constants
const (
	UserTypeAdmin    = "ADMIN"
	UserTypeFarmer   = "FARMER"
	UserTypeCustomer = "CUSTOMER"
)

// Status constants
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID               uint      `json:"userId"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          *string   `json:"address"`
	Status           string    `json:"status"`
	UserType         string    `json:"userType"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Address:          u.Address,
		Status:           u.Status,
		UserType:         u.UserType,
		RegistrationDate: u.CreatedAt,
	}
}
