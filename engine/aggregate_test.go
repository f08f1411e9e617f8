package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZTTBuild/pmo_end/models"
)

func TestAggregatePartitionsByInputType(t *testing.T) {
	matched := []models.KPIRecord{
		{InputType: models.InputTypePlanned, Quantity: 100.0},
		{InputType: models.InputTypeActual, Quantity: 40.0},
		{InputType: models.InputTypeActual, Quantity: 20.0},
	}

	agg := Aggregate(matched)
	require.Equal(t, 1, agg.PlannedCount)
	require.Equal(t, 2, agg.ActualCount)
	require.InDelta(t, 100.0, agg.TotalPlanned, 1e-9)
	require.InDelta(t, 60.0, agg.TotalActual, 1e-9)
	require.True(t, agg.HasData)
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	require.False(t, agg.HasData)
	require.Zero(t, agg.PlannedCount)
	require.Zero(t, agg.ActualCount)
}

func TestAggregateBadQuantityCountedAsZero(t *testing.T) {
	matched := []models.KPIRecord{
		{InputType: models.InputTypeActual, Quantity: "abc"},
		{InputType: models.InputTypeActual, Quantity: nil},
		{InputType: models.InputTypeActual, Quantity: "1,250.5"},
	}

	agg := Aggregate(matched)
	// 解析失败的记录按0计入合计但条数照算
	require.Equal(t, 3, agg.ActualCount)
	require.InDelta(t, 1250.5, agg.TotalActual, 1e-9)
	require.True(t, agg.HasData)
}

func TestAggregateToleratesInputTypeCase(t *testing.T) {
	matched := []models.KPIRecord{
		{InputType: "planned", Quantity: 10.0},
		{InputType: "ACTUAL", Quantity: 5.0},
		{InputType: "unknown", Quantity: 99.0},
	}

	agg := Aggregate(matched)
	require.Equal(t, 1, agg.PlannedCount)
	require.Equal(t, 1, agg.ActualCount)
	require.InDelta(t, 10.0, agg.TotalPlanned, 1e-9)
	require.InDelta(t, 5.0, agg.TotalActual, 1e-9)
}
