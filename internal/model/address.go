package model

import "fmt"

// Address is a row of address.
//
// EmailAddress is a pointer so that an unset address reaches the database
// as NULL and fails the NOT NULL constraint instead of being stored as "".
type Address struct {
	ID           int64   `gorm:"primaryKey"`
	EmailAddress *string `gorm:"not null"`
	UserID       *int64
	User         *User `gorm:"foreignKey:UserID"`
}

func (Address) TableName() string { return "address" }

// NewAddress builds an unsaved address owned by user.
func NewAddress(email string, user *User) *Address {
	return &Address{EmailAddress: &email, User: user}
}

// AsMap returns the column values keyed by column name. Unset nullable
// columns map to nil.
func (a *Address) AsMap() map[string]any {
	m := map[string]any{
		"id":            a.ID,
		"email_address": nil,
		"user_id":       nil,
	}
	if a.EmailAddress != nil {
		m["email_address"] = *a.EmailAddress
	}
	if a.UserID != nil {
		m["user_id"] = *a.UserID
	}
	return m
}

func (a *Address) String() string {
	email := ""
	if a.EmailAddress != nil {
		email = *a.EmailAddress
	}
	return fmt.Sprintf("Address(id=%d, email_address=%q)", a.ID, email)
}
