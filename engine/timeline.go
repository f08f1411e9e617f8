package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ZTTBuild/pmo_end/models"
)

// TimelineSpan 活动在时间轴视图中的一行
// 保证 PlannedStart <= PlannedEnd 且 DurationDays >= 0
type TimelineSpan struct {
	PlannedStart time.Time  `json:"plannedStart"`
	PlannedEnd   time.Time  `json:"plannedEnd"`
	ActualStart  *time.Time `json:"actualStart,omitempty"`
	ActualEnd    *time.Time `json:"actualEnd,omitempty"`
	DurationDays int        `json:"durationDays"`
	IsDelayed    bool       `json:"isDelayed"`
	IsCompleted  bool       `json:"isCompleted"`
	IsCritical   bool       `json:"isCritical"`
}

// BuildTimelineSpan 计算活动的计划/实际日期范围与关键状态
//
// 没有可解析计划开始日期的活动返回nil：无法定位到时间轴上，
// 直接排除而不是猜一个位置。计划结束日期缺失时依次退回
// 开始日期+工期天数、开始日期+1天。
//
// IsDelayed 和 IsCompleted 直接取活动上的外部标记，这里不重算；
// IsCritical 在延误标记之外再加上"实际结束晚于计划结束"的判断。
func BuildTimelineSpan(activity models.Activity, matched []models.KPIRecord) *TimelineSpan {
	start := NormalizeDate(activity.PlannedStartDate)
	if start == nil {
		return nil
	}

	end := NormalizeDate(activity.PlannedEndDate)
	if end == nil {
		days := activity.CalendarDuration
		if days <= 0 {
			days = 1
		}
		d := start.AddDate(0, 0, days)
		end = &d
	}
	if end.Before(*start) {
		end = start
	}

	// 实际日期范围来自匹配到的实际类记录
	var actualDates []time.Time
	for _, record := range matched {
		if !record.InputType.IsActual() {
			continue
		}
		if d := NormalizeDate(record.RecordDate); d != nil {
			actualDates = append(actualDates, *d)
		}
	}
	sort.Slice(actualDates, func(i, j int) bool {
		return actualDates[i].Before(actualDates[j])
	})

	var actualStart, actualEnd *time.Time
	if len(actualDates) > 0 {
		first := actualDates[0]
		last := actualDates[len(actualDates)-1]
		actualStart = &first
		actualEnd = &last
	}

	durationDays := int(math.Ceil(end.Sub(*start).Hours() / 24))
	if durationDays < 0 {
		durationDays = 0
	}

	return &TimelineSpan{
		PlannedStart: *start,
		PlannedEnd:   *end,
		ActualStart:  actualStart,
		ActualEnd:    actualEnd,
		DurationDays: durationDays,
		IsDelayed:    activity.IsDelayed,
		IsCompleted:  activity.IsCompleted,
		IsCritical:   activity.IsDelayed || (actualEnd != nil && actualEnd.After(*end)),
	}
}

// NormalizeDate 把日期规范到本地时间当日零点，nil或零值返回nil
func NormalizeDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	local := t.In(time.Local)
	d := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return &d
}

// 宽容解析时依次尝试的日期格式
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// ParseDate 宽容地解析来源数据中的日期值，失败时返回nil而不是报错
// 支持 time.Time、Mongo日期、常见格式字符串；"N/A"、"null"、空串按无日期处理
func ParseDate(v interface{}) *time.Time {
	switch d := v.(type) {
	case nil:
		return nil
	case time.Time:
		return NormalizeDate(&d)
	case *time.Time:
		return NormalizeDate(d)
	case primitive.DateTime:
		t := d.Time()
		return NormalizeDate(&t)
	case string:
		s := strings.TrimSpace(d)
		lower := strings.ToLower(s)
		if s == "" || lower == "n/a" || lower == "null" || lower == "na" || lower == "-" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return NormalizeDate(&t)
			}
		}
		return nil
	default:
		return nil
	}
}
