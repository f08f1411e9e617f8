package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZTTBuild/pmo_end/models"
)

// 典型进行中活动：计划100、实际60，单价和产值按合同额折算
func TestClassifyInProgress(t *testing.T) {
	activity := models.Activity{
		ActivityName: "Excavation",
		PlannedUnits: 100,
		TotalValue:   1000,
	}
	matched := []models.KPIRecord{
		{InputType: models.InputTypePlanned, Quantity: 100.0},
		{InputType: models.InputTypeActual, Quantity: 40.0},
		{InputType: models.InputTypeActual, Quantity: 20.0},
	}

	agg := Aggregate(matched)
	require.InDelta(t, 100.0, agg.TotalPlanned, 1e-9)
	require.InDelta(t, 60.0, agg.TotalActual, 1e-9)

	result := Classify(agg, activity)
	require.InDelta(t, 60.0, result.ProgressPercent, 1e-9)
	require.Equal(t, StatusInProgress, result.Status)
	require.InDelta(t, 10.0, result.Rate, 1e-9)
	require.InDelta(t, 600.0, result.ExecutedValue, 1e-9)
}

// 没有任何记录且计划量为0的活动，全部归零且未开始
func TestClassifyNoData(t *testing.T) {
	activity := models.Activity{ActivityName: "Excavation", PlannedUnits: 0}

	agg := Aggregate(nil)
	require.False(t, agg.HasData)

	result := Classify(agg, activity)
	require.Zero(t, result.ProgressPercent)
	require.Equal(t, StatusNotStarted, result.Status)
	require.Zero(t, result.Rate)
	require.Zero(t, result.ExecutedValue)
}

// 超额交付：实际量超过清单计划量，进度超过100不封顶
func TestClassifyOverDelivery(t *testing.T) {
	activity := models.Activity{
		ActivityName: "Excavation",
		PlannedUnits: 50,
		TotalValue:   500,
	}
	matched := []models.KPIRecord{
		{InputType: models.InputTypeActual, Quantity: 60.0},
	}

	agg := Aggregate(matched)
	require.Zero(t, agg.TotalPlanned)
	require.InDelta(t, 60.0, agg.TotalActual, 1e-9)

	result := Classify(agg, activity)
	require.InDelta(t, 120.0, result.ProgressPercent, 1e-9)
	require.Equal(t, StatusCompleted, result.Status)
	// KPI侧没有计划量时单价退回清单计划量口径，产值仍按实际60算
	require.InDelta(t, 10.0, result.Rate, 1e-9)
	require.InDelta(t, 600.0, result.ExecutedValue, 1e-9)
}

// 两个进度口径取较高者
func TestClassifyTakesHigherProgress(t *testing.T) {
	activity := models.Activity{PlannedUnits: 200}
	matched := []models.KPIRecord{
		{InputType: models.InputTypePlanned, Quantity: 100.0},
		{InputType: models.InputTypeActual, Quantity: 80.0},
	}

	result := Classify(Aggregate(matched), activity)
	// KPI口径 80/100=80%，清单口径 80/200=40%，取80%
	require.InDelta(t, 80.0, result.ProgressPercent, 1e-9)
	require.Equal(t, StatusOnTrack, result.Status)
}

// 相同输入重复计算结果一致
func TestClassifyIdempotent(t *testing.T) {
	activity := models.Activity{PlannedUnits: 100, TotalValue: 1000}
	records := []models.KPIRecord{
		{ProjectFullCode: "P5008", ActivityName: "Excavation", InputType: models.InputTypePlanned, Quantity: 100.0},
		{ProjectFullCode: "P5008", ActivityName: "Excavation", InputType: models.InputTypeActual, Quantity: 30.0},
	}
	activity.ProjectFullCode = "P5008"
	activity.ActivityName = "Excavation"

	first := Classify(Aggregate(MatchRecords(activity, records)), activity)
	second := Classify(Aggregate(MatchRecords(activity, records)), activity)
	require.Equal(t, first, second)
}

// 计划量为0时绝不产生NaN或Inf
func TestClassifyZeroSafety(t *testing.T) {
	activity := models.Activity{PlannedUnits: 0, TotalValue: 1000}
	matched := []models.KPIRecord{
		{InputType: models.InputTypeActual, Quantity: 50.0},
	}

	result := Classify(Aggregate(matched), activity)
	require.False(t, math.IsNaN(result.ProgressPercent))
	require.False(t, math.IsInf(result.ProgressPercent, 0))
	require.False(t, math.IsNaN(result.Rate))
	require.False(t, math.IsInf(result.Rate, 0))
	require.False(t, math.IsNaN(result.ExecutedValue))
	require.False(t, math.IsInf(result.ExecutedValue, 0))
	require.Zero(t, result.Rate)
}

// 状态随进度沿阈值单调升级
func TestClassifyStatusThresholds(t *testing.T) {
	cases := []struct {
		progress float64
		want     ActivityStatus
	}{
		{0, StatusNotStarted},
		{10, StatusBehindSchedule},
		{49.9, StatusBehindSchedule},
		{50, StatusInProgress},
		{79.9, StatusInProgress},
		{80, StatusOnTrack},
		{99.9, StatusOnTrack},
		{100, StatusCompleted},
		{150, StatusCompleted},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, classifyStatus(1, tc.progress), "progress=%v", tc.progress)
	}
}

// 没有实际记录时无条件未开始，哪怕兜底实际量推出了非零进度
func TestClassifyNotStartedDominance(t *testing.T) {
	activity := models.Activity{PlannedUnits: 100, ActualUnits: 70}
	matched := []models.KPIRecord{
		{InputType: models.InputTypePlanned, Quantity: 100.0},
	}

	result := Classify(Aggregate(matched), activity)
	require.InDelta(t, 70.0, result.ProgressPercent, 1e-9)
	require.Equal(t, StatusNotStarted, result.Status)
}
