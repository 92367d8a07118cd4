package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
)

type User struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Username    string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name        string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Role        string    `gorm:"size:50;not null;default:'staff'" json:"role"`
	Permissions string    `gorm:"size:500" json:"permissions"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username    string `json:"username" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role"`
	Permissions string `json:"permissions"`
}

// HasPermission is a flat membership test over the comma-joined permission
// string. Admins pass everything. No hierarchy, no wildcard matching.
func (u *User) HasPermission(permission string) bool {
	if u.Role == "admin" {
		return true
	}
	for _, p := range strings.Split(u.Permissions, ",") {
		if strings.TrimSpace(p) == permission {
			return true
		}
	}
	return false
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = "staff"
	}

	user := User{
		Username:    input.Username,
		Name:        input.Name,
		Password:    string(hashed),
		Role:        role,
		Permissions: input.Permissions,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "create", user.ID, "User", "user "+user.Username+" created"); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &user, nil
}

// Login verifies credentials and returns the user plus a signed token.
func Login(ctx context.Context, username string, password string) (*User, string, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}
	if user.IsActive == nil || !*user.IsActive {
		return nil, "", errors.New("user is inactive")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := utils.JwtGenerate(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
