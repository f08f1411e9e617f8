package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateValue(t *testing.T) {
	rate, value := CalculateValue(100, 0, 60, 1000)
	require.InDelta(t, 10.0, rate, 1e-9)
	require.InDelta(t, 600.0, value, 1e-9)
}

func TestCalculateValueFallsBackToPlannedUnits(t *testing.T) {
	// KPI计划量缺失时退回清单计划量推单价
	rate, value := CalculateValue(0, 50, 60, 500)
	require.InDelta(t, 10.0, rate, 1e-9)
	require.InDelta(t, 600.0, value, 1e-9)
}

func TestCalculateValueZeroUnits(t *testing.T) {
	rate, value := CalculateValue(0, 0, 60, 1000)
	require.Zero(t, rate)
	require.Zero(t, value)
	require.False(t, math.IsNaN(rate))
	require.False(t, math.IsInf(rate, 0))
}

func TestCalculateValueNegativeUnitsTreatedAsMissing(t *testing.T) {
	rate, _ := CalculateValue(-10, 50, 0, 500)
	require.InDelta(t, 10.0, rate, 1e-9)
}
