package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ZTTBuild/pmo_end/config"
	"github.com/ZTTBuild/pmo_end/models"

	"github.com/golang-jwt/jwt"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword 哈希密码
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// VerifyPassword 验证密码
func VerifyPassword(password string, hashedPassword string) bool {
	return HashPassword(password) == hashedPassword
}

// GenerateToken 生成JWT令牌
func GenerateToken(user models.User) (string, error) {
	Logger.Info().
		Str("_id", user.ID.Hex()).
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Msg("开始生成token")

	// 创建JWT Claims
	claims := jwt.MapClaims{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(), // 30天有效期
		"iat":      time.Now().Unix(),
	}

	// 创建并签名token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("生成token失败")
		return "", err
	}

	return tokenString, nil
}

// ParseToken 解析和验证JWT令牌
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	// 验证token并提取claims
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("无效的token")
}

// HasPermission 检查用户是否有权限
func HasPermission(role models.UserRole, resource string, action string) bool {
	// 超级管理员拥有所有权限
	if role == models.UserRoleSUPER_ADMIN {
		return true
	}

	// 定义各角色权限
	permissions := map[models.UserRole]map[string][]string{
		models.UserRolePLANNING_ENGINEER: {
			"projects":      {"read", "create", "update"},
			"activities":    {"read", "create", "update", "delete"},
			"kpiRecords":    {"read"},
			"systemConfigs": {"read"},
		},
		models.UserRoleSITE_ENGINEER: {
			"projects":   {"read"},
			"activities": {"read"},
			"kpiRecords": {"read", "create", "update", "delete"},
		},
		models.UserRoleVIEWER: {
			"projects":   {"read"},
			"activities": {"read"},
			"kpiRecords": {"read"},
		},
	}

	// 检查特定角色的权限
	if resourceActions, exists := permissions[role]; exists {
		if actions, hasResource := resourceActions[resource]; hasResource {
			for _, a := range actions {
				if a == action {
					return true
				}
			}
		}
	}

	return false
}
