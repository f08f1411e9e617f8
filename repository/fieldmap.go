package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ZTTBuild/pmo_end/engine"
	"github.com/ZTTBuild/pmo_end/models"
)

// 历史数据同一逻辑字段存在多个写法（导入工具、旧版录入界面各用一套），
// 别名在这一层按优先级一次性解析成规范结构，引擎只见规范字段，
// 各组件不再各自处理别名。

// activityFieldAliases 活动字段别名表：规范字段 -> 按优先级排列的来源字段
var activityFieldAliases = map[string][]string{
	"projectCode":          {"projectCode", "project_code", "Project Code"},
	"projectFullCode":      {"projectFullCode", "project_full_code", "Project Full Code"},
	"activityName":         {"activityName", "activity_name", "Activity Name", "activityDescription", "activity_description"},
	"activityDescription":  {"activityDescription", "activity_description", "description"},
	"zoneRef":              {"zoneRef", "zone_ref", "Zone Ref", "zone"},
	"zoneNumber":           {"zoneNumber", "zone_number", "Zone Number"},
	"unit":                 {"unit", "Unit", "uom"},
	"plannedUnits":         {"plannedUnits", "planned_units", "Planned Units", "totalUnits", "total_units"},
	"actualUnits":          {"actualUnits", "actual_units", "Actual Units"},
	"totalValue":           {"totalValue", "total_value", "Total Value", "contractValue"},
	"plannedStartDate":     {"plannedStartDate", "planned_start_date", "Planned Start Date", "plannedStart", "startDate", "start_date"},
	"plannedEndDate":       {"plannedEndDate", "planned_end_date", "Planned End Date", "plannedEnd", "endDate", "end_date", "deadline"},
	"calendarDurationDays": {"calendarDurationDays", "calendar_duration_days", "durationDays", "duration_days"},
	"isDelayed":            {"isDelayed", "is_delayed", "delayed"},
	"isCompleted":          {"isCompleted", "is_completed", "completed"},
}

// kpiFieldAliases KPI记录字段别名表
var kpiFieldAliases = map[string][]string{
	"projectCode":     {"projectCode", "project_code", "Project Code"},
	"projectFullCode": {"projectFullCode", "project_full_code", "Project Full Code"},
	"activityName":    {"activityName", "activity_name", "Activity Name"},
	"zone":            {"zone", "Zone", "zoneRef", "zone_ref"},
	"inputType":       {"inputType", "input_type", "Input Type", "type"},
	"quantity":        {"quantity", "Quantity", "qty", "value"},
	"recordDate":      {"recordDate", "record_date", "Record Date", "date", "reportDate"},
	"recordedBy":      {"recordedBy", "recorded_by", "Recorded By"},
	"importBatchId":   {"importBatchId", "import_batch_id"},
}

// resolveAlias 按优先级取第一个存在且非nil的来源字段值
func resolveAlias(doc bson.M, aliases []string) (interface{}, bool) {
	for _, key := range aliases {
		if v, ok := doc[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// stringField 取字符串字段，非字符串值返回空串
func stringField(doc bson.M, canonical string, table map[string][]string) string {
	v, ok := resolveAlias(doc, table[canonical])
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// floatField 取数值字段，字符串数字也接受，解析失败按0
func floatField(doc bson.M, canonical string, table map[string][]string) float64 {
	v, ok := resolveAlias(doc, table[canonical])
	if !ok {
		return 0
	}
	rec := models.KPIRecord{Quantity: v}
	return rec.QuantityValue()
}

// boolField 取布尔字段
func boolField(doc bson.M, canonical string, table map[string][]string) bool {
	v, ok := resolveAlias(doc, table[canonical])
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// dateField 取日期字段，宽容解析，失败按无日期
func dateField(doc bson.M, canonical string, table map[string][]string) *time.Time {
	v, ok := resolveAlias(doc, table[canonical])
	if !ok {
		return nil
	}
	return engine.ParseDate(v)
}

// MapActivity 把来源活动文档映射为规范Activity结构
func MapActivity(doc bson.M) models.Activity {
	activity := models.Activity{
		ProjectCode:         stringField(doc, "projectCode", activityFieldAliases),
		ProjectFullCode:     stringField(doc, "projectFullCode", activityFieldAliases),
		ActivityName:        stringField(doc, "activityName", activityFieldAliases),
		ActivityDescription: stringField(doc, "activityDescription", activityFieldAliases),
		ZoneRef:             stringField(doc, "zoneRef", activityFieldAliases),
		ZoneNumber:          stringField(doc, "zoneNumber", activityFieldAliases),
		Unit:                stringField(doc, "unit", activityFieldAliases),
		PlannedUnits:        floatField(doc, "plannedUnits", activityFieldAliases),
		ActualUnits:         floatField(doc, "actualUnits", activityFieldAliases),
		TotalValue:          floatField(doc, "totalValue", activityFieldAliases),
		PlannedStartDate:    dateField(doc, "plannedStartDate", activityFieldAliases),
		PlannedEndDate:      dateField(doc, "plannedEndDate", activityFieldAliases),
		CalendarDuration:    int(floatField(doc, "calendarDurationDays", activityFieldAliases)),
		IsDelayed:           boolField(doc, "isDelayed", activityFieldAliases),
		IsCompleted:         boolField(doc, "isCompleted", activityFieldAliases),
	}

	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		activity.ID = id
	}

	return activity
}

// MapKPIRecord 把来源KPI文档映射为规范KPIRecord结构
// 数量字段保持原始值，解析推迟到汇总时的QuantityValue
func MapKPIRecord(doc bson.M) models.KPIRecord {
	record := models.KPIRecord{
		ProjectCode:     stringField(doc, "projectCode", kpiFieldAliases),
		ProjectFullCode: stringField(doc, "projectFullCode", kpiFieldAliases),
		ActivityName:    stringField(doc, "activityName", kpiFieldAliases),
		Zone:            stringField(doc, "zone", kpiFieldAliases),
		RecordedBy:      stringField(doc, "recordedBy", kpiFieldAliases),
		ImportBatchID:   stringField(doc, "importBatchId", kpiFieldAliases),
		RecordDate:      dateField(doc, "recordDate", kpiFieldAliases),
	}

	if v, ok := resolveAlias(doc, kpiFieldAliases["inputType"]); ok {
		if s, ok := v.(string); ok {
			record.InputType = models.InputType(s)
		}
	}
	if v, ok := resolveAlias(doc, kpiFieldAliases["quantity"]); ok {
		record.Quantity = v
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		record.ID = id
	}

	return record
}
