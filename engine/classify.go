package engine

import (
	"math"

	"github.com/ZTTBuild/pmo_end/models"
)

// ActivityStatus 活动执行状态枚举
type ActivityStatus string

const (
	StatusNotStarted     ActivityStatus = "NOT_STARTED"     // 未开始
	StatusBehindSchedule ActivityStatus = "BEHIND_SCHEDULE" // 滞后
	StatusInProgress     ActivityStatus = "IN_PROGRESS"     // 进行中
	StatusOnTrack        ActivityStatus = "ON_TRACK"        // 正常
	StatusCompleted      ActivityStatus = "COMPLETED"       // 已完成
)

// ProgressResult 进度分级结果
// ProgressPercent 不做100封顶，超额交付会超过100，柱状图宽度由前端自行截断
type ProgressResult struct {
	ProgressPercent float64        `json:"progressPercent"`
	Status          ActivityStatus `json:"status"`
	Rate            float64        `json:"rate"`          // 单位单价
	ExecutedValue   float64        `json:"executedValue"` // 已完成产值
}

// Classify 由汇总结果和活动基础数据推导进度百分比与状态
//
// 实际量以KPI汇总为准，KPI缺失时才退回活动自身记录的实际量。
// 进度有两个口径：KPI计划量口径和清单计划量口径，任一口径都可能
// 因录入不全而偏低，所以取较高者，不做平均。
func Classify(agg MatchedAggregate, activity models.Activity) ProgressResult {
	actualUnits := 0.0
	if agg.TotalActual > 0 {
		actualUnits = agg.TotalActual
	} else if activity.ActualUnits > 0 {
		actualUnits = activity.ActualUnits
	}

	progressFromRecords := 0.0
	if agg.TotalPlanned > 0 {
		progressFromRecords = agg.TotalActual / agg.TotalPlanned * 100
	}

	progressFromPlan := 0.0
	if activity.PlannedUnits > 0 {
		progressFromPlan = actualUnits / activity.PlannedUnits * 100
	}

	finalProgress := math.Max(progressFromRecords, progressFromPlan)

	rate, value := CalculateValue(agg.TotalPlanned, activity.PlannedUnits, actualUnits, activity.TotalValue)

	return ProgressResult{
		ProgressPercent: finalProgress,
		Status:          classifyStatus(agg.ActualCount, finalProgress),
		Rate:            rate,
		ExecutedValue:   value,
	}
}

// classifyStatus 状态阈值按顺序判定
// 没有任何实际记录时强制未开始，哪怕百分比因兜底实际量大于0
func classifyStatus(actualCount int, finalProgress float64) ActivityStatus {
	switch {
	case actualCount == 0:
		return StatusNotStarted
	case finalProgress >= 100:
		return StatusCompleted
	case finalProgress >= 80:
		return StatusOnTrack
	case finalProgress >= 50:
		return StatusInProgress
	case finalProgress > 0:
		return StatusBehindSchedule
	default:
		return StatusNotStarted
	}
}
