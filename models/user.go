package models

import (
    "gorm.io/gorm"
)

const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null"`
    Password string `gorm:"not null"`
    FullName string
    Role     string `gorm:"size:10;default:'user'"`
}

func (u *User) IsAdmin() bool {
    return u.Role == RoleAdmin
}
