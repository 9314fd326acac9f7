package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RolePicker  = "PICKER"
	RolePacker  = "PACKER"
	RoleViewer  = "VIEWER"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique"`
	Password  string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique"`
	Role      string `json:"role" gorm:"default:'VIEWER'"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
	DeletedBy int    `json:"deleted_by"`
}

type UserSession struct {
	gorm.Model
	UserID         uint      `json:"user_id"`
	SessionID      string    `json:"session_id" gorm:"unique"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

type LoginLog struct {
	gorm.Model
	UserID    uint       `json:"user_id"`
	SessionID string     `json:"session_id"`
	LoginAt   time.Time  `json:"login_at"`
	LogoutAt  *time.Time `json:"logout_at"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
}

// Principal is the authenticated actor behind a request. Services take it
// explicitly instead of reading session state so they stay testable without
// the HTTP layer.
type Principal struct {
	UserID uint
	Role   string
}

// CanManageWork reports whether the principal may reassign work units or
// approve count variances.
func (p Principal) CanManageWork() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}
