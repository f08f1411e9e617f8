package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZTTBuild/pmo_end/engine"
	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetProjectTimeline 获取项目时间轴(甘特图)数据
//
// 没有可解析计划开始日期的活动直接排除，不猜位置；
// 排除的数量放在响应里供前端提示。条形的像素摆放、缩放
// 和列生成都在前端，这里只保证日期范围自身的时序一致。
func GetProjectTimeline(c *gin.Context) {
	projectID := c.Param("projectId")
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId": projectID,
		"user":      currentUser.Username,
	}, "[时间轴] 获取项目时间轴")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, ok := findProjectByID(ctx, c, projectID)
	if !ok {
		return
	}

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

	rows := make([]models.TimelineRow, 0, len(activities))
	skipped := 0
	for _, activity := range activities {
		matched := engine.MatchRecords(activity, records)
		span := engine.BuildTimelineSpan(activity, matched)
		if span == nil {
			skipped++
			continue
		}

		agg := engine.Aggregate(matched)
		result := engine.Classify(agg, activity)

		rows = append(rows, models.TimelineRow{
			ActivityID:      activity.ID.Hex(),
			ActivityName:    activity.Name(),
			Zone:            activity.Zone(),
			PlannedStart:    span.PlannedStart,
			PlannedEnd:      span.PlannedEnd,
			ActualStart:     span.ActualStart,
			ActualEnd:       span.ActualEnd,
			DurationDays:    span.DurationDays,
			ProgressPercent: result.ProgressPercent,
			Status:          string(result.Status),
			IsDelayed:       span.IsDelayed,
			IsCompleted:     span.IsCompleted,
			IsCritical:      span.IsCritical,
		})
	}

	// 按计划开始日期排序，同日按名称稳定排序
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PlannedStart.Equal(rows[j].PlannedStart) {
			return rows[i].ActivityName < rows[j].ActivityName
		}
		return rows[i].PlannedStart.Before(rows[j].PlannedStart)
	})

	utils.LogInfo(map[string]interface{}{
		"projectId": projectID,
		"rowCount":  len(rows),
		"skipped":   skipped,
	}, "[时间轴] 时间轴数据构建完成")

	utils.SuccessResponse(c, models.TimelineResponse{
		ProjectID:   projectID,
		ProjectName: project.ProjectName,
		Rows:        rows,
		Skipped:     skipped,
	}, "")
}
