package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetKPIRecordList 获取KPI记录列表（可按项目、活动名、类型筛选）
func GetKPIRecordList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if code := c.Query("projectFullCode"); code != "" {
		filter["$or"] = []bson.M{
			{"projectFullCode": code},
			{"projectCode": code},
		}
	}
	if name := c.Query("activityName"); name != "" {
		filter["activityName"] = primitive.Regex{Pattern: name, Options: "i"}
	}
	if inputType := c.Query("inputType"); inputType != "" {
		filter["inputType"] = inputType
	}

	kpiCollection := repository.Collection(repository.KPIRecordsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "recordDate", Value: -1}})
	cursor, err := kpiCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		utils.HandleError(c, err)
		return
	}

	// 别名在存储边界统一规范化，返回给前端的始终是规范结构
	records := make([]models.KPIRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, repository.MapKPIRecord(doc))
	}

	utils.SuccessResponse(c, models.KPIRecordListResponse{Records: records}, "")
}

// CreateKPIRecord 新增单条KPI记录
func CreateKPIRecord(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	var req models.KPIRecordCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !req.InputType.IsPlanned() && !req.InputType.IsActual() {
		utils.ErrorResponse(c, "inputType必须是Planned或Actual", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := buildKPIRecord(req, currentUser.Username, "")

	kpiCollection := repository.Collection(repository.KPIRecordsCollection)
	if _, err := kpiCollection.InsertOne(ctx, record); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"activityName": record.ActivityName,
		"inputType":    string(record.InputType),
		"recordedBy":   currentUser.Username,
	}, "[KPI] 新增记录成功")

	utils.SuccessResponse(c, record, "新增记录成功", http.StatusCreated)
}

// BatchCreateKPIRecords 批量导入KPI记录
// 同一批次的记录打上相同的批次号，支持整批撤销
func BatchCreateKPIRecords(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	var req models.KPIRecordBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求数据: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Records) == 0 {
		utils.ErrorResponse(c, "记录列表不能为空", http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()
	docs := make([]interface{}, 0, len(req.Records))
	invalid := 0
	for _, item := range req.Records {
		if !item.InputType.IsPlanned() && !item.InputType.IsActual() {
			invalid++
			continue
		}
		docs = append(docs, buildKPIRecord(item, currentUser.Username, batchID))
	}
	if len(docs) == 0 {
		utils.ErrorResponse(c, "没有有效记录可导入", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	kpiCollection := repository.Collection(repository.KPIRecordsCollection)
	result, err := kpiCollection.InsertMany(ctx, docs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"batchId":  batchID,
		"inserted": len(result.InsertedIDs),
		"invalid":  invalid,
		"operator": currentUser.Username,
	}, "[KPI] 批量导入完成")

	utils.SuccessResponse(c, gin.H{
		"batchId":  batchID,
		"inserted": len(result.InsertedIDs),
		"invalid":  invalid,
	}, "批量导入完成", http.StatusCreated)
}

// DeleteKPIRecordBatch 按批次号撤销一次批量导入
func DeleteKPIRecordBatch(c *gin.Context) {
	batchID := c.Param("batchId")
	if batchID == "" {
		utils.ErrorResponse(c, "批次号不能为空", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kpiCollection := repository.Collection(repository.KPIRecordsCollection)
	result, err := kpiCollection.DeleteMany(ctx, bson.M{"importBatchId": batchID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"batchId": batchID,
		"deleted": result.DeletedCount,
	}, "[KPI] 撤销批量导入")

	utils.SuccessResponse(c, gin.H{"deleted": result.DeletedCount}, "撤销批量导入成功")
}

// buildKPIRecord 由请求构建KPI记录文档
// 数量保持原始值入库，解析推迟到汇总时，保证脏数据也可追溯
func buildKPIRecord(req models.KPIRecordCreateRequest, recordedBy, batchID string) models.KPIRecord {
	now := time.Now()
	return models.KPIRecord{
		ID:              primitive.NewObjectID(),
		ProjectCode:     req.ProjectCode,
		ProjectFullCode: req.ProjectFullCode,
		ActivityName:    req.ActivityName,
		Zone:            req.Zone,
		InputType:       req.InputType,
		Quantity:        req.Quantity,
		RecordDate:      req.RecordDate,
		RecordedBy:      recordedBy,
		ImportBatchID:   batchID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
