package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetActivityList 获取项目的清单活动列表
func GetActivityList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, ok := findProjectByID(ctx, c, c.Param("projectId"))
	if !ok {
		return
	}

	activities, err := loadProjectActivities(ctx, project)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 按区域筛选（筛选用解析后的区域键，而不是原始标签）
	if zone := c.Query("zone"); zone != "" {
		filtered := make([]models.Activity, 0, len(activities))
		for _, activity := range activities {
			if activity.Zone() == zone || activity.ZoneRef == zone || activity.ZoneNumber == zone {
				filtered = append(filtered, activity)
			}
		}
		activities = filtered
	}

	utils.SuccessResponse(c, models.ActivityListResponse{Activities: activities}, "")
}

// CreateActivity 创建清单活动
func CreateActivity(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	var req models.ActivityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	activity := models.Activity{
		ID:                  primitive.NewObjectID(),
		ProjectCode:         req.ProjectCode,
		ProjectFullCode:     req.ProjectFullCode,
		ActivityName:        req.ActivityName,
		ActivityDescription: req.ActivityDescription,
		ZoneRef:             req.ZoneRef,
		ZoneNumber:          req.ZoneNumber,
		Unit:                req.Unit,
		PlannedUnits:        req.PlannedUnits,
		ActualUnits:         req.ActualUnits,
		TotalValue:          req.TotalValue,
		PlannedStartDate:    req.PlannedStartDate,
		PlannedEndDate:      req.PlannedEndDate,
		CalendarDuration:    req.CalendarDuration,
		CreatorID:           currentUser.ID,
		CreatorName:         currentUser.Username,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activitiesCollection := repository.Collection(repository.ActivitiesCollection)
	if _, err := activitiesCollection.InsertOne(ctx, activity); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"activityName": activity.ActivityName,
		"projectCode":  activity.ProjectCode,
		"creator":      currentUser.Username,
	}, "[清单活动] 创建活动成功")

	utils.SuccessResponse(c, activity, "创建活动成功", http.StatusCreated)
}

// UpdateActivity 更新清单活动
func UpdateActivity(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	activityID := c.Param("activityId")
	objID, err := primitive.ObjectIDFromHex(activityID)
	if err != nil {
		utils.ErrorResponse(c, "无效的活动ID格式", http.StatusBadRequest)
		return
	}

	var req models.ActivityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	updates := bson.M{}
	if req.ActivityName != nil {
		updates["activityName"] = *req.ActivityName
	}
	if req.ActivityDescription != nil {
		updates["activityDescription"] = *req.ActivityDescription
	}
	if req.ZoneRef != nil {
		updates["zoneRef"] = *req.ZoneRef
	}
	if req.ZoneNumber != nil {
		updates["zoneNumber"] = *req.ZoneNumber
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.PlannedUnits != nil {
		updates["plannedUnits"] = *req.PlannedUnits
	}
	if req.ActualUnits != nil {
		updates["actualUnits"] = *req.ActualUnits
	}
	if req.TotalValue != nil {
		updates["totalValue"] = *req.TotalValue
	}
	if req.PlannedStartDate != nil {
		updates["plannedStartDate"] = *req.PlannedStartDate
	}
	if req.PlannedEndDate != nil {
		updates["plannedEndDate"] = *req.PlannedEndDate
	}
	if req.CalendarDuration != nil {
		updates["calendarDurationDays"] = *req.CalendarDuration
	}
	if req.IsDelayed != nil {
		updates["isDelayed"] = *req.IsDelayed
	}
	if req.IsCompleted != nil {
		updates["isCompleted"] = *req.IsCompleted
	}

	if len(updates) == 0 {
		utils.ErrorResponse(c, "没有可更新的字段", http.StatusBadRequest)
		return
	}

	updates["updaterId"] = currentUser.ID
	updates["updaterName"] = currentUser.Username
	updates["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activitiesCollection := repository.Collection(repository.ActivitiesCollection)
	result, err := activitiesCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updates})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.ErrorResponse(c, "活动不存在", http.StatusNotFound)
		return
	}

	utils.SuccessResponse(c, nil, "更新活动成功")
}

// DeleteActivity 删除清单活动
func DeleteActivity(c *gin.Context) {
	activityID := c.Param("activityId")
	objID, err := primitive.ObjectIDFromHex(activityID)
	if err != nil {
		utils.ErrorResponse(c, "无效的活动ID格式", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activitiesCollection := repository.Collection(repository.ActivitiesCollection)
	var activity models.Activity
	err = activitiesCollection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "活动不存在", http.StatusNotFound)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"activityId":   activityID,
		"activityName": activity.ActivityName,
	}, "[清单活动] 删除活动成功")

	utils.SuccessResponse(c, nil, "删除活动成功")
}
