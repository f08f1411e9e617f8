package controllers

import (
	"context"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ZTTBuild/pmo_end/engine"
	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/repository"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetDashboardStats 获取数据看板统计
// 逐项目批量加载活动与KPI记录，跑一遍对账引擎后在内存里累计各类分布。
// startDate/endDate 限定参与统计的KPI记录日期范围，无日期的记录不受限
func GetDashboardStats(c *gin.Context) {
	_, err := utils.GetUser(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "用户未认证"})
		return
	}

	rangeStart := engine.ParseDate(c.Query("startDate"))
	rangeEnd := engine.ParseDate(c.Query("endDate"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	cursor, err := projectsCollection.Find(ctx, bson.M{})
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

	statusCounts := make(map[string]int)
	zoneCounts := make(map[string]int)
	inputTypeCounts := make(map[string]int)
	activityCount := 0
	recordCount := 0
	criticalCount := 0

	for i := range projects {
		project := &projects[i]

		activities, err := loadProjectActivities(ctx, project)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		records, err := loadProjectKPIRecords(ctx, project)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		records = filterRecordsByDateRange(records, rangeStart, rangeEnd)

		activityCount += len(activities)
		recordCount += len(records)

		for _, record := range records {
			switch {
			case record.InputType.IsPlanned():
				inputTypeCounts["Planned"]++
			case record.InputType.IsActual():
				inputTypeCounts["Actual"]++
			}
		}

		for _, activity := range activities {
			matched := engine.MatchRecords(activity, records)
			agg := engine.Aggregate(matched)
			result := engine.Classify(agg, activity)

			statusCounts[string(result.Status)]++

			zone := activity.Zone()
			if zone == "" {
				zone = "未分区"
			}
			zoneCounts[zone]++

			span := engine.BuildTimelineSpan(activity, matched)
			if span != nil && span.IsCritical {
				criticalCount++
			} else if span == nil && activity.IsDelayed {
				criticalCount++
			}
		}
	}

	response := models.DashboardDataResponse{
		ProjectCount:       len(projects),
		ActivityCount:      activityCount,
		KPIRecordCount:     recordCount,
		CriticalCount:      criticalCount,
		StatusDistribution: toChartItems(statusCounts),
		ZoneDistribution:   toChartItems(zoneCounts),
		InputTypeSplit:     toChartItems(inputTypeCounts),
	}

	utils.LogInfo(map[string]interface{}{
		"projectCount":  response.ProjectCount,
		"activityCount": response.ActivityCount,
		"recordCount":   response.KPIRecordCount,
		"criticalCount": response.CriticalCount,
	}, "[数据看板] 统计完成")

	utils.SuccessResponse(c, response, "")
}

// filterRecordsByDateRange 按记录日期过滤，范围端点可单独缺省
func filterRecordsByDateRange(records []models.KPIRecord, start, end *time.Time) []models.KPIRecord {
	if start == nil && end == nil {
		return records
	}
	filtered := make([]models.KPIRecord, 0, len(records))
	for _, record := range records {
		d := engine.NormalizeDate(record.RecordDate)
		if d != nil {
			if start != nil && d.Before(*start) {
				continue
			}
			if end != nil && d.After(*end) {
				continue
			}
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// toChartItems map转图表数据并按数量降序，保证前端图例顺序稳定
func toChartItems(counts map[string]int) []models.ChartDataItem {
	items := make([]models.ChartDataItem, 0, len(counts))
	for name, value := range counts {
		items = append(items, models.ChartDataItem{Name: name, Value: value})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].Name < items[j].Name
	})
	return items
}
