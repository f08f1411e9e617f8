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

// GetProjectList 获取项目列表
func GetProjectList(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"user": currentUser.Username,
	}, "[项目] 获取项目列表")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 按关键字筛选
	filter := bson.M{}
	if keyword := c.Query("keyword"); keyword != "" {
		filter["$or"] = []bson.M{
			{"projectName": primitive.Regex{Pattern: keyword, Options: "i"}},
			{"projectCode": primitive.Regex{Pattern: keyword, Options: "i"}},
		}
	}

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := projectsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		utils.HandleError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, models.ConvertProjectToResponse(project))
	}

	utils.SuccessResponse(c, models.ProjectListResponse{Projects: responses}, "")
}

// GetProjectDetail 获取项目详情
func GetProjectDetail(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, ok := findProjectByID(ctx, c, c.Param("projectId"))
	if !ok {
		return
	}

	utils.SuccessResponse(c, models.ConvertProjectToResponse(*project), "")
}

// CreateProject 创建项目
func CreateProject(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projectsCollection := repository.Collection(repository.ProjectsCollection)

	// projectFullCode 在工作集中必须唯一，否则匹配会串项目
	count, err := projectsCollection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"projectCode": project.ProjectCode, "projectSubCode": project.ProjectSubCode},
		},
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "相同编码的项目已存在", http.StatusConflict)
		return
	}

	now := time.Now()
	project.ID = primitive.NewObjectID()
	project.CreatorID = currentUser.ID
	project.CreatorName = currentUser.Username
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := projectsCollection.InsertOne(ctx, project); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectCode": project.ProjectCode,
		"projectName": project.ProjectName,
		"creator":     currentUser.Username,
	}, "[项目] 创建项目成功")

	utils.SuccessResponse(c, models.ConvertProjectToResponse(project), "创建项目成功", http.StatusCreated)
}

// UpdateProject 更新项目
func UpdateProject(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, ok := findProjectByID(ctx, c, c.Param("projectId"))
	if !ok {
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 只允许更新白名单内的字段
	updatable := map[string]bool{
		"projectName":    true,
		"contractorName": true,
		"ownerName":      true,
		"contractValue":  true,
		"remark":         true,
	}

	updates := bson.M{}
	for k, v := range input {
		if updatable[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		utils.ErrorResponse(c, "没有可更新的字段", http.StatusBadRequest)
		return
	}

	updates["updaterId"] = currentUser.ID
	updates["updaterName"] = currentUser.Username
	updates["updatedAt"] = time.Now()

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	_, err = projectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, bson.M{"$set": updates})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "更新项目成功")
}

// DeleteProject 删除项目
func DeleteProject(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, ok := findProjectByID(ctx, c, c.Param("projectId"))
	if !ok {
		return
	}

	// 项目下还有活动时不允许删除
	activitiesCollection := repository.Collection(repository.ActivitiesCollection)
	count, err := activitiesCollection.CountDocuments(ctx, projectScopeFilter(project))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "项目下存在清单活动，不能删除", http.StatusConflict)
		return
	}

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	if _, err := projectsCollection.DeleteOne(ctx, bson.M{"_id": project.ID}); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId":   project.ID.Hex(),
		"projectName": project.ProjectName,
	}, "[项目] 删除项目成功")

	utils.SuccessResponse(c, nil, "删除项目成功")
}
