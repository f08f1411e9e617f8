package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity 工程量清单(BOQ)活动条目
// 由计划人员在引擎之外创建和维护，引擎只读
type Activity struct {
	ID                  primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProjectCode         string             `json:"projectCode" bson:"projectCode"`
	ProjectFullCode     string             `json:"projectFullCode" bson:"projectFullCode"`
	ActivityName        string             `json:"activityName" bson:"activityName" binding:"required"`
	ActivityDescription string             `json:"activityDescription,omitempty" bson:"activityDescription,omitempty"` // 部分调用方使用的别名字段
	ZoneRef             string             `json:"zoneRef,omitempty" bson:"zoneRef,omitempty"`
	ZoneNumber          string             `json:"zoneNumber,omitempty" bson:"zoneNumber,omitempty"`
	Unit                string             `json:"unit,omitempty" bson:"unit,omitempty"`
	PlannedUnits        float64            `json:"plannedUnits" bson:"plannedUnits"`
	ActualUnits         float64            `json:"actualUnits,omitempty" bson:"actualUnits,omitempty"` // 活动自身记录的实际量，仅作为KPI缺失时的兜底
	TotalValue          float64            `json:"totalValue" bson:"totalValue"`
	PlannedStartDate    *time.Time         `json:"plannedStartDate,omitempty" bson:"plannedStartDate,omitempty"`
	PlannedEndDate      *time.Time         `json:"plannedEndDate,omitempty" bson:"plannedEndDate,omitempty"`
	CalendarDuration    int                `json:"calendarDurationDays,omitempty" bson:"calendarDurationDays,omitempty"` // 结束日期缺失时的工期兜底（天）
	IsDelayed           bool               `json:"isDelayed" bson:"isDelayed"`
	IsCompleted         bool               `json:"isCompleted" bson:"isCompleted"`
	DelayedAt           *time.Time         `json:"delayedAt,omitempty" bson:"delayedAt,omitempty"`
	CreatorID           string             `json:"creatorId,omitempty" bson:"creatorId,omitempty"`
	CreatorName         string             `json:"creatorName,omitempty" bson:"creatorName,omitempty"`
	UpdaterID           string             `json:"updaterId,omitempty" bson:"updaterId,omitempty"`
	UpdaterName         string             `json:"updaterName,omitempty" bson:"updaterName,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FullCode 活动侧的项目匹配键
func (a Activity) FullCode() string {
	if a.ProjectFullCode != "" {
		return a.ProjectFullCode
	}
	return a.ProjectCode
}

// Name 活动名称，兼容使用描述字段的调用方
func (a Activity) Name() string {
	if a.ActivityName != "" {
		return a.ActivityName
	}
	return a.ActivityDescription
}

// Zone 活动的区域标签
func (a Activity) Zone() string {
	if a.ZoneRef != "" {
		return a.ZoneRef
	}
	return a.ZoneNumber
}

// ActivityCreateRequest 创建活动请求
type ActivityCreateRequest struct {
	ProjectCode         string     `json:"projectCode" binding:"required"`
	ProjectFullCode     string     `json:"projectFullCode"`
	ActivityName        string     `json:"activityName" binding:"required"`
	ActivityDescription string     `json:"activityDescription"`
	ZoneRef             string     `json:"zoneRef"`
	ZoneNumber          string     `json:"zoneNumber"`
	Unit                string     `json:"unit"`
	PlannedUnits        float64    `json:"plannedUnits"`
	ActualUnits         float64    `json:"actualUnits"`
	TotalValue          float64    `json:"totalValue"`
	PlannedStartDate    *time.Time `json:"plannedStartDate"`
	PlannedEndDate      *time.Time `json:"plannedEndDate"`
	CalendarDuration    int        `json:"calendarDurationDays"`
}

// ActivityUpdateRequest 更新活动请求，指针字段区分"未提供"和"清空"
type ActivityUpdateRequest struct {
	ActivityName        *string    `json:"activityName,omitempty"`
	ActivityDescription *string    `json:"activityDescription,omitempty"`
	ZoneRef             *string    `json:"zoneRef,omitempty"`
	ZoneNumber          *string    `json:"zoneNumber,omitempty"`
	Unit                *string    `json:"unit,omitempty"`
	PlannedUnits        *float64   `json:"plannedUnits,omitempty"`
	ActualUnits         *float64   `json:"actualUnits,omitempty"`
	TotalValue          *float64   `json:"totalValue,omitempty"`
	PlannedStartDate    *time.Time `json:"plannedStartDate,omitempty"`
	PlannedEndDate      *time.Time `json:"plannedEndDate,omitempty"`
	CalendarDuration    *int       `json:"calendarDurationDays,omitempty"`
	IsDelayed           *bool      `json:"isDelayed,omitempty"`
	IsCompleted         *bool      `json:"isCompleted,omitempty"`
}

type ActivityListResponse struct {
	Activities []Activity `json:"activities"`
}
