package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetSystemConfigs 获取系统配置列表，可按配置类型过滤
func GetSystemConfigs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if configType := c.Query("configType"); configType != "" {
		filter["configType"] = configType
	}

	configsCollection := repository.Collection(repository.SystemConfigsCollection)
	cursor, err := configsCollection.Find(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var configs []models.SystemConfig
	if err = cursor.All(ctx, &configs); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"configs": configs}, "")
}

// UpsertSystemConfig 创建或更新系统配置
// 按 configType+configKey 定位，存在即覆盖，避免同一配置出现多条
func UpsertSystemConfig(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	var req models.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"configValue": req.ConfigValue,
			"description": req.Description,
			"isEnabled":   enabled,
			"updaterId":   currentUser.ID,
			"updaterName": currentUser.Username,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"configType":  req.ConfigType,
			"configKey":   req.ConfigKey,
			"creatorId":   currentUser.ID,
			"creatorName": currentUser.Username,
			"createdAt":   now,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	configsCollection := repository.Collection(repository.SystemConfigsCollection)
	filter := bson.M{"configType": req.ConfigType, "configKey": req.ConfigKey}
	opts := options.Update().SetUpsert(true)
	result, err := configsCollection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"configType": req.ConfigType,
		"configKey":  req.ConfigKey,
		"upserted":   result.UpsertedCount > 0,
		"operator":   currentUser.Username,
	}, "[系统配置] 保存配置成功")

	utils.SuccessResponse(c, nil, "保存配置成功")
}
