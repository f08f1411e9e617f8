package controllers

import (
	"net/http"
	"time"

	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Login 用户登录
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().
		Str("username", req.Username).
		Msg("登录尝试")

	usersCollection := repository.Collection(repository.UsersCollection)
	var user models.User
	err := usersCollection.FindOne(repository.GetContext(), bson.M{"username": req.Username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Logger.Info().Str("username", req.Username).Msg("登录失败: 用户名不存在")
			utils.ErrorResponse(c, "用户名不存在，请检查用户名或注册新账号", http.StatusUnauthorized)
			return
		}
		utils.Logger.Error().Err(err).Msg("查询用户出错")
		utils.ErrorResponse(c, "登录失败: 数据库错误", http.StatusInternalServerError)
		return
	}

	// 检查用户状态
	if user.Status == models.UserStatusPENDING {
		utils.Logger.Info().Str("username", req.Username).Msg("登录失败: 账户待审核")
		utils.ErrorResponse(c, "账户正在审核中，请等待审核通过", http.StatusForbidden)
		return
	}
	if user.Status == models.UserStatusREJECTED {
		reason := "未提供"
		if user.RejectionReason != "" {
			reason = user.RejectionReason
		}
		utils.Logger.Info().Str("username", req.Username).Msg("登录失败: 账户已被拒绝")
		utils.ErrorResponse(c, "账户已被拒绝，原因: "+reason, http.StatusForbidden)
		return
	}
	if user.Status != models.UserStatusAPPROVED {
		utils.ErrorResponse(c, "账户状态异常", http.StatusForbidden)
		return
	}

	// 验证密码
	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("username", req.Username).Msg("登录失败: 密码错误")
		utils.ErrorResponse(c, "用户名或密码错误", http.StatusUnauthorized)
		return
	}

	// 生成JWT令牌
	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("生成token失败")
		utils.ErrorResponse(c, "生成登录令牌失败，请重试", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("username", user.Username).Msg("登录成功")
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user":  models.ConvertUserToResponse(user),
	}, "")
}

// Register 用户注册（注册后需管理员审核）
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		utils.ErrorResponse(c, "手机号格式无效", http.StatusBadRequest)
		return
	}

	// 注册只开放非管理员角色
	switch req.Role {
	case models.UserRolePLANNING_ENGINEER, models.UserRoleSITE_ENGINEER, models.UserRoleVIEWER:
	default:
		utils.ErrorResponse(c, "不支持注册该角色", http.StatusBadRequest)
		return
	}

	usersCollection := repository.Collection(repository.UsersCollection)

	// 用户名查重
	count, err := usersCollection.CountDocuments(repository.GetContext(), bson.M{"username": req.Username})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "用户名已存在", http.StatusConflict)
		return
	}

	now := time.Now()
	user := models.User{
		Username:  req.Username,
		Password:  utils.HashPassword(req.Password),
		Phone:     req.Phone,
		Role:      req.Role,
		Status:    models.UserStatusPENDING,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := usersCollection.InsertOne(repository.GetContext(), user); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("username", req.Username).Str("role", string(req.Role)).Msg("注册成功，等待审核")
	utils.SuccessResponse(c, nil, "注册成功，请等待管理员审核", http.StatusCreated)
}

// ValidateToken 校验当前token是否有效，返回用户信息
func ValidateToken(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	user, err := repository.FindUserByID(currentUser.ID)
	if err != nil {
		utils.ErrorResponse(c, "用户不存在", http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(c, models.ConvertUserToResponse(*user), "")
}
