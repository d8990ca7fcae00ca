package model

import "fmt"

// User is a row of user_account.
//
// Name is limited to 30 characters by the column type and, for SQLite
// which ignores varchar lengths, by chk_user_account_name. Addresses is the
// one-to-many side of Address.User.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(30);check:chk_user_account_name,length(name) <= 30"`
	Fullname  string    `gorm:"column:fullname"`
	Addresses []Address `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "user_account" }

// AsMap returns the column values keyed by column name.
func (u *User) AsMap() map[string]any {
	return map[string]any{
		"id":       u.ID,
		"name":     u.Name,
		"fullname": u.Fullname,
	}
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%d, name=%q)", u.ID, u.Name)
}
