package service

import (
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ZTTBuild/pmo_end/engine"
	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
)

// 每天指定时间执行任务
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			duration := next.Sub(now)
			time.Sleep(duration)
			task()
		}
	}()
}

// ProcessDelayedActivities 每日延误活动标记任务
// 计划结束日期加上宽限天数已过、且未完成的活动标记 isDelayed=true；
// 引擎本身不产出 isDelayed，时间轴视图读的就是这里打的标记
func ProcessDelayedActivities() {
	now := time.Now()
	log.Printf("开始执行每日延误活动检查任务..., time: %v", now)

	ctx := repository.GetContext()

	// 1. 获取自动延误标记配置
	query := bson.M{
		"configType": models.ConfigTypeActivityAutoDelay,
		"isEnabled":  true,
	}

	systemConfigsCollection := repository.Collection(repository.SystemConfigsCollection)
	systemConfigsCursor, err := systemConfigsCollection.Find(ctx, query)
	if err != nil {
		log.Printf("查询系统配置失败: %v", err)
		return
	}

	var configs []models.SystemConfig
	if err := systemConfigsCursor.All(ctx, &configs); err != nil {
		log.Printf("解析系统配置失败: %v", err)
		return
	}

	graceDays := 0
	if len(configs) > 0 {
		config, err := GetAutoDelayConfig(configs[0])
		if err != nil {
			log.Printf("解析自动延误配置失败: %v", err)
			return
		}
		graceDays = config.GraceDays
	} else {
		log.Printf("未找到自动延误配置, 使用默认宽限天数 0")
	}

	log.Printf("自动延误配置: 宽限天数=%d", graceDays)

	// 2. 获取所有未完成且未标记延误的活动
	activitiesCollection := repository.Collection(repository.ActivitiesCollection)
	cursor, err := activitiesCollection.Find(ctx, bson.M{
		"isCompleted": bson.M{"$ne": true},
		"isDelayed":   bson.M{"$ne": true},
	})
	if err != nil {
		log.Printf("查询清单活动失败: %v", err)
		return
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("解析清单活动失败: %v", err)
		return
	}

	// 3. 逐个判断是否超过计划结束日期+宽限期
	marked := 0
	for _, doc := range docs {
		activity := repository.MapActivity(doc)

		end := engine.NormalizeDate(activity.PlannedEndDate)
		if end == nil {
			// 没有计划结束日期时退回结束兜底链：开始+工期、开始+1天
			if span := engine.BuildTimelineSpan(activity, nil); span != nil {
				end = &span.PlannedEnd
			}
		}
		if end == nil {
			continue
		}

		deadline := end.AddDate(0, 0, graceDays)
		if !now.After(deadline) {
			continue
		}

		objID, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			continue
		}

		_, err := activitiesCollection.UpdateOne(ctx,
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{"isDelayed": true, "updatedAt": now}})
		if err != nil {
			log.Printf("标记延误失败, 活动:%v, %v", activity.Name(), err)
			continue
		}

		log.Printf("活动 [ID=%s, 名称=%s] 已超过计划结束日期+宽限期: 截止 %v",
			objID.Hex(), activity.Name(), deadline)
		marked++
	}

	log.Printf("每日延误活动检查任务完成, 共检查 %d 个活动, 新标记 %d 个", len(docs), marked)
}

func GetAutoDelayConfig(config models.SystemConfig) (*models.AutoDelayConfig, error) {
	// 方法1：尝试直接转换为 bson.D
	if doc, ok := config.ConfigValue.(bson.D); ok {
		return parseFromBSOND(doc)
	}

	// 方法2：尝试转换为 bson.M
	if m, ok := config.ConfigValue.(bson.M); ok {
		return parseFromMap(m)
	}

	// 方法3：最通用的处理方式 - 通过 BSON 序列化/反序列化
	data, err := bson.Marshal(config.ConfigValue)
	if err != nil {
		return nil, fmt.Errorf("BSON 序列化失败: %v", err)
	}

	var resultMap map[string]interface{}
	if err := bson.Unmarshal(data, &resultMap); err == nil {
		return parseFromMap(resultMap)
	}

	return nil, fmt.Errorf("无法解析 ConfigValue，实际类型: %T", config.ConfigValue)
}

// 从 bson.D 解析
func parseFromBSOND(doc bson.D) (*models.AutoDelayConfig, error) {
	result := &models.AutoDelayConfig{}
	for _, elem := range doc {
		if elem.Key != "graceDays" {
			continue
		}
		switch v := elem.Value.(type) {
		case int32:
			result.GraceDays = int(v)
		case int64:
			result.GraceDays = int(v)
		case float64:
			result.GraceDays = int(v)
		case int:
			result.GraceDays = v
		default:
			return nil, fmt.Errorf("无效的 graceDays 类型: %T", v)
		}
	}
	return validateConfig(result)
}

// 从 map 解析
func parseFromMap(m map[string]interface{}) (*models.AutoDelayConfig, error) {
	result := &models.AutoDelayConfig{}

	if val, ok := m["graceDays"].(int); ok {
		result.GraceDays = val
	} else if val, ok := m["graceDays"].(int32); ok {
		result.GraceDays = int(val)
	} else if val, ok := m["graceDays"].(int64); ok {
		result.GraceDays = int(val)
	} else if val, ok := m["graceDays"].(float64); ok {
		result.GraceDays = int(val)
	}

	return validateConfig(result)
}

// 验证配置是否完整
func validateConfig(config *models.AutoDelayConfig) (*models.AutoDelayConfig, error) {
	if config.GraceDays < 0 {
		return nil, fmt.Errorf("graceDays 不能为负数")
	}
	return config, nil
}
