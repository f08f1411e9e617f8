package models

import "time"

// 图表数据项
type ChartDataItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ActivityProgressRow 进度看板单行数据
// 汇总与分级结果平铺成前端可直接渲染的字段
type ActivityProgressRow struct {
	ActivityID      string  `json:"activityId"`
	ActivityName    string  `json:"activityName"`
	ProjectFullCode string  `json:"projectFullCode"`
	Zone            string  `json:"zone,omitempty"`
	Unit            string  `json:"unit,omitempty"`
	PlannedUnits    float64 `json:"plannedUnits"`
	TotalValue      float64 `json:"totalValue"`
	PlannedCount    int     `json:"plannedCount"`
	ActualCount     int     `json:"actualCount"`
	TotalPlanned    float64 `json:"totalPlanned"`
	TotalActual     float64 `json:"totalActual"`
	HasData         bool    `json:"hasData"` // false 时前端渲染"暂无数据"而非错误态
	ProgressPercent float64 `json:"progressPercent"`
	Status          string  `json:"status"`
	Rate            float64 `json:"rate"`
	ExecutedValue   float64 `json:"executedValue"`
}

// ActivityProgressResponse 进度看板响应
type ActivityProgressResponse struct {
	ProjectID   string                `json:"projectId"`
	ProjectName string                `json:"projectName"`
	Rows        []ActivityProgressRow `json:"rows"`
	RecordCount int                   `json:"recordCount"` // 本次批量加载的KPI记录总数
}

// TimelineRow 时间轴视图单行数据
// 与导出报表共用的平铺结构：计划起止、工期、实际起止、进度、状态、关键标记
type TimelineRow struct {
	ActivityID      string     `json:"activityId"`
	ActivityName    string     `json:"activityName"`
	Zone            string     `json:"zone,omitempty"`
	PlannedStart    time.Time  `json:"plannedStart"`
	PlannedEnd      time.Time  `json:"plannedEnd"`
	ActualStart     *time.Time `json:"actualStart,omitempty"`
	ActualEnd       *time.Time `json:"actualEnd,omitempty"`
	DurationDays    int        `json:"durationDays"`
	ProgressPercent float64    `json:"progressPercent"`
	Status          string     `json:"status"`
	IsDelayed       bool       `json:"isDelayed"`
	IsCompleted     bool       `json:"isCompleted"`
	IsCritical      bool       `json:"isCritical"`
}

// TimelineResponse 时间轴视图响应
type TimelineResponse struct {
	ProjectID   string        `json:"projectId"`
	ProjectName string        `json:"projectName"`
	Rows        []TimelineRow `json:"rows"`
	Skipped     int           `json:"skipped"` // 因缺少计划开始日期被排除的活动数
}

// 数据看板响应结构
type DashboardDataResponse struct {
	ProjectCount   int `json:"projectCount"`   // 项目总数
	ActivityCount  int `json:"activityCount"`  // 清单活动总数
	KPIRecordCount int `json:"kpiRecordCount"` // KPI记录总数
	CriticalCount  int `json:"criticalCount"`  // 关键(延误)活动数

	StatusDistribution []ChartDataItem `json:"statusDistribution"` // 活动状态分布
	ZoneDistribution   []ChartDataItem `json:"zoneDistribution"`   // 区域活动分布
	InputTypeSplit     []ChartDataItem `json:"inputTypeSplit"`     // 记录类型分布
}
