package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetUserList 获取用户列表（仅管理员）
func GetUserList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := usersCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		utils.HandleError(c, err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, models.ConvertUserToResponse(user))
	}

	utils.SuccessResponse(c, gin.H{"users": responses}, "")
}

// ApproveUser 审核用户（通过或拒绝）
func ApproveUser(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	userID := c.Param("userId")
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.ErrorResponse(c, "无效的用户ID格式", http.StatusBadRequest)
		return
	}

	var req models.ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if req.Approved {
		updates["status"] = models.UserStatusAPPROVED
		updates["rejectionReason"] = ""
	} else {
		updates["status"] = models.UserStatusREJECTED
		updates["rejectionReason"] = req.RejectionReason
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := repository.Collection(repository.UsersCollection)
	result, err := usersCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updates})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.ErrorResponse(c, "用户不存在", http.StatusNotFound)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"userId":   userID,
		"approved": req.Approved,
		"operator": currentUser.Username,
	}, "[用户] 审核用户完成")

	utils.SuccessResponse(c, nil, "审核完成")
}

// DeleteUser 删除用户（仅管理员）
func DeleteUser(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	userID := c.Param("userId")
	if userID == currentUser.ID {
		utils.ErrorResponse(c, "不能删除自己的账户", http.StatusBadRequest)
		return
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.ErrorResponse(c, "无效的用户ID格式", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := repository.Collection(repository.UsersCollection)
	result, err := usersCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.ErrorResponse(c, "用户不存在", http.StatusNotFound)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"userId":   userID,
		"operator": currentUser.Username,
	}, "[用户] 删除用户成功")

	utils.SuccessResponse(c, nil, "删除用户成功")
}
