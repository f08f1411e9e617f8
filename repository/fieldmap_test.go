package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ZTTBuild/pmo_end/models"
)

func TestMapActivityCanonicalFields(t *testing.T) {
	id := primitive.NewObjectID()
	doc := bson.M{
		"_id":              id,
		"projectCode":      "P5008",
		"projectFullCode":  "P5008-C2",
		"activityName":     "Excavation",
		"zoneRef":          "Zone A",
		"unit":             "m3",
		"plannedUnits":     100.0,
		"totalValue":       1000.0,
		"plannedStartDate": "2024-01-01",
		"plannedEndDate":   "2024-01-15",
		"isDelayed":        true,
	}

	activity := MapActivity(doc)
	require.Equal(t, id, activity.ID)
	require.Equal(t, "P5008", activity.ProjectCode)
	require.Equal(t, "P5008-C2", activity.ProjectFullCode)
	require.Equal(t, "Excavation", activity.ActivityName)
	require.Equal(t, "Zone A", activity.ZoneRef)
	require.InDelta(t, 100.0, activity.PlannedUnits, 1e-9)
	require.InDelta(t, 1000.0, activity.TotalValue, 1e-9)
	require.True(t, activity.IsDelayed)
	require.NotNil(t, activity.PlannedStartDate)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), *activity.PlannedStartDate)
}

func TestMapActivityAliasFields(t *testing.T) {
	// 旧版导入工具写的下划线和展示名字段也要能读
	doc := bson.M{
		"project_code":  "P5008",
		"activity_name": "Excavation",
		"zone":          "Zone A",
		"Planned Units": "1,200",
		"startDate":     "2024/01/01",
		"durationDays":  int32(10),
	}

	activity := MapActivity(doc)
	require.Equal(t, "P5008", activity.ProjectCode)
	require.Equal(t, "Excavation", activity.ActivityName)
	require.Equal(t, "Zone A", activity.ZoneRef)
	require.InDelta(t, 1200.0, activity.PlannedUnits, 1e-9)
	require.Equal(t, 10, activity.CalendarDuration)
	require.NotNil(t, activity.PlannedStartDate)
}

func TestMapActivityAliasPriority(t *testing.T) {
	// 规范字段和别名同时存在时规范字段优先
	doc := bson.M{
		"plannedUnits":  50.0,
		"planned_units": 999.0,
		"activityName":  "Excavation",
		"description":   "ignored",
	}

	activity := MapActivity(doc)
	require.InDelta(t, 50.0, activity.PlannedUnits, 1e-9)
	require.Equal(t, "Excavation", activity.ActivityName)
}

func TestMapActivityNameFallsBackToDescription(t *testing.T) {
	doc := bson.M{"activityDescription": "Concrete Pouring"}
	activity := MapActivity(doc)
	require.Equal(t, "Concrete Pouring", activity.ActivityName)
	require.Equal(t, "Concrete Pouring", activity.Name())
}

func TestMapKPIRecordKeepsRawQuantity(t *testing.T) {
	doc := bson.M{
		"projectFullCode": "P5008",
		"activityName":    "Excavation",
		"inputType":       "Actual",
		"qty":             "1,250.5",
		"record_date":     "2024-01-05",
	}

	record := MapKPIRecord(doc)
	require.Equal(t, "P5008", record.ProjectFullCode)
	require.True(t, record.InputType.IsActual())
	// 原始值保留，解析推迟到汇总
	require.Equal(t, "1,250.5", record.Quantity)
	require.InDelta(t, 1250.5, record.QuantityValue(), 1e-9)
	require.NotNil(t, record.RecordDate)
}

func TestMapKPIRecordMissingFields(t *testing.T) {
	record := MapKPIRecord(bson.M{})
	require.Empty(t, record.ProjectFullCode)
	require.Empty(t, record.ActivityName)
	require.Nil(t, record.Quantity)
	require.Nil(t, record.RecordDate)
	require.Zero(t, record.QuantityValue())
	require.False(t, record.InputType.IsPlanned())
	require.False(t, record.InputType.IsActual())
}

func TestMapKPIRecordBadDate(t *testing.T) {
	doc := bson.M{
		"activityName": "Excavation",
		"inputType":    "planned",
		"recordDate":   "N/A",
	}

	record := MapKPIRecord(doc)
	require.Nil(t, record.RecordDate)
	require.True(t, record.InputType.IsPlanned())
}

func TestMapKPIRecordInputTypeAlias(t *testing.T) {
	doc := bson.M{"activityName": "Excavation", "type": "Planned"}
	record := MapKPIRecord(doc)
	require.Equal(t, models.InputType("Planned"), record.InputType)
}
