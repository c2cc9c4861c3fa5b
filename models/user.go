package models

import "time"

// User represents a user in the system
type User struct {
	Base
	Username  string     `gorm:"uniqueIndex;not null;size:30" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Password  string     `gorm:"not null;size:100" json:"-"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	ResetPasswordToken   *string    `gorm:"index;size:64" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
}

type Preferences struct {
	Theme            string `gorm:"size:20" json:"theme"`
	AutoSaveInterval int    `json:"auto_save_interval"`
}

// DefaultPreferences are applied on registration.
func DefaultPreferences() Preferences {
	return Preferences{Theme: "light", AutoSaveInterval: 5000}
}
