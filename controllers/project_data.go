package controllers

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"
)

// findProjectByID 按路径参数中的项目ID取项目，处理无效ID和不存在两种失败
func findProjectByID(ctx context.Context, c *gin.Context, projectID string) (*models.Project, bool) {
	if projectID == "" {
		utils.ErrorResponse(c, "项目ID不能为空", 400)
		return nil, false
	}

	objID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		utils.ErrorResponse(c, "无效的项目ID格式", 400)
		return nil, false
	}

	var project models.Project
	projectsCollection := repository.Collection(repository.ProjectsCollection)
	err = projectsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "项目不存在", 404)
			return nil, false
		}
		utils.HandleError(c, err)
		return nil, false
	}

	return &project, true
}

// projectScopeFilter 项目范围过滤条件
// 记录编码允许比项目编码更具体（带子编码后缀），所以用前缀匹配
func projectScopeFilter(project *models.Project) bson.M {
	prefix := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(project.ProjectCode), Options: "i"}
	return bson.M{
		"$or": []bson.M{
			{"projectFullCode": project.FullCode()},
			{"projectFullCode": prefix},
			{"projectCode": project.ProjectCode},
		},
	}
}

// loadProjectActivities 批量加载项目的清单活动并做字段别名规范化
func loadProjectActivities(ctx context.Context, project *models.Project) ([]models.Activity, error) {
	activitiesCollection := repository.Collection(repository.ActivitiesCollection)
	cursor, err := activitiesCollection.Find(ctx, projectScopeFilter(project))
	if err != nil {
		return nil, fmt.Errorf("查询清单活动失败: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("解析清单活动失败: %w", err)
	}

	activities := make([]models.Activity, 0, len(docs))
	for _, doc := range docs {
		activities = append(activities, repository.MapActivity(doc))
	}

	return activities, nil
}

// loadProjectKPIRecords 批量加载项目的KPI记录并做字段别名规范化
// 整个界面只调用一次，完整集合传给每个活动的匹配计算
func loadProjectKPIRecords(ctx context.Context, project *models.Project) ([]models.KPIRecord, error) {
	kpiCollection := repository.Collection(repository.KPIRecordsCollection)
	cursor, err := kpiCollection.Find(ctx, projectScopeFilter(project))
	if err != nil {
		return nil, fmt.Errorf("查询KPI记录失败: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("解析KPI记录失败: %w", err)
	}

	records := make([]models.KPIRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, repository.MapKPIRecord(doc))
	}

	return records, nil
}
