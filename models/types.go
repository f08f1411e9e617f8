package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleSUPER_ADMIN       UserRole = "SUPER_ADMIN"       // 超级管理员
	UserRolePLANNING_ENGINEER UserRole = "PLANNING_ENGINEER" // 计划工程师
	UserRoleSITE_ENGINEER     UserRole = "SITE_ENGINEER"     // 现场工程师
	UserRoleVIEWER            UserRole = "VIEWER"            // 只读用户
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// User 用户类型
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username        string             `bson:"username" json:"username"`
	Password        string             `bson:"password" json:"-"` // 不返回密码
	Phone           string             `bson:"phone" json:"phone"`
	Role            UserRole           `bson:"role" json:"role"`
	Status          UserStatus         `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// RegisterRequest 注册请求
	RegisterRequest struct {
		Username string   `json:"username" binding:"required"`
		Password string   `json:"password" binding:"required"`
		Phone    string   `json:"phone"`
		Role     UserRole `json:"role" binding:"required"`
	}

	// ApproveUserRequest 审核用户请求
	ApproveUserRequest struct {
		Approved        bool   `json:"approved"`
		RejectionReason string `json:"rejectionReason,omitempty"`
	}

	// UserResponse 用户响应
	UserResponse struct {
		ID        string     `json:"_id"`
		Username  string     `json:"username"`
		Phone     string     `json:"phone"`
		Role      UserRole   `json:"role"`
		Status    UserStatus `json:"status"`
		CreatedAt time.Time  `json:"createdAt"`
	}
)

// ConvertUserToResponse 转换用户为响应结构
func ConvertUserToResponse(user User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
