package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ZTTBuild/pmo_end/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestBuildTimelineSpanWithBothDates(t *testing.T) {
	activity := models.Activity{
		ActivityName:     "Excavation",
		PlannedStartDate: date(2024, 1, 1),
		PlannedEndDate:   date(2024, 1, 15),
	}

	span := BuildTimelineSpan(activity, nil)
	require.NotNil(t, span)
	require.Equal(t, *date(2024, 1, 1), span.PlannedStart)
	require.Equal(t, *date(2024, 1, 15), span.PlannedEnd)
	require.Equal(t, 14, span.DurationDays)
}

func TestBuildTimelineSpanEndFromDuration(t *testing.T) {
	activity := models.Activity{
		ActivityName:     "Excavation",
		PlannedStartDate: date(2024, 1, 1),
		CalendarDuration: 10,
	}

	span := BuildTimelineSpan(activity, nil)
	require.NotNil(t, span)
	require.Equal(t, *date(2024, 1, 11), span.PlannedEnd)
	require.Equal(t, 10, span.DurationDays)
}

func TestBuildTimelineSpanEndDefaultsToOneDay(t *testing.T) {
	activity := models.Activity{
		ActivityName:     "Excavation",
		PlannedStartDate: date(2024, 1, 1),
	}

	span := BuildTimelineSpan(activity, nil)
	require.NotNil(t, span)
	require.Equal(t, *date(2024, 1, 2), span.PlannedEnd)
	require.Equal(t, 1, span.DurationDays)
}

func TestBuildTimelineSpanNilWithoutStart(t *testing.T) {
	activity := models.Activity{ActivityName: "Excavation", PlannedEndDate: date(2024, 1, 15)}
	require.Nil(t, BuildTimelineSpan(activity, nil))
}

func TestBuildTimelineSpanClampsInvertedRange(t *testing.T) {
	activity := models.Activity{
		ActivityName:     "Excavation",
		PlannedStartDate: date(2024, 2, 1),
		PlannedEndDate:   date(2024, 1, 1),
	}

	span := BuildTimelineSpan(activity, nil)
	require.NotNil(t, span)
	require.Equal(t, span.PlannedStart, span.PlannedEnd)
	require.Zero(t, span.DurationDays)
}

func TestBuildTimelineSpanActualRangeFromRecords(t *testing.T) {
	activity := models.Activity{
		ActivityName:     "Excavation",
		PlannedStartDate: date(2024, 1, 1),
		PlannedEndDate:   date(2024, 1, 10),
	}
	matched := []models.KPIRecord{
		{InputType: models.InputTypeActual, RecordDate: date(2024, 1, 8)},
		{InputType: models.InputTypeActual, RecordDate: date(2024, 1, 3)},
		{InputType: models.InputTypePlanned, RecordDate: date(2024, 1, 1)},
		{InputType: models.InputTypeActual, RecordDate: date(2024, 1, 12)},
	}

	span := BuildTimelineSpan(activity, matched)
	require.NotNil(t, span)
	require.Equal(t, *date(2024, 1, 3), *span.ActualStart)
	require.Equal(t, *date(2024, 1, 12), *span.ActualEnd)
	// 实际结束晚于计划结束，即使没有延误标记也是关键活动
	require.False(t, span.IsDelayed)
	require.True(t, span.IsCritical)
}

func TestBuildTimelineSpanCriticalFromDelayFlag(t *testing.T) {
	activity := models.Activity{
		ActivityName:     "Excavation",
		PlannedStartDate: date(2024, 1, 1),
		PlannedEndDate:   date(2024, 1, 10),
		IsDelayed:        true,
	}

	span := BuildTimelineSpan(activity, nil)
	require.NotNil(t, span)
	require.True(t, span.IsDelayed)
	require.True(t, span.IsCritical)
	require.Nil(t, span.ActualStart)
	require.Nil(t, span.ActualEnd)
}

func TestParseDateFormats(t *testing.T) {
	cases := []struct {
		in   string
		want *time.Time
	}{
		{"2024-01-05", date(2024, 1, 5)},
		{"2024/01/05", date(2024, 1, 5)},
		{"05-01-2024", date(2024, 1, 5)},
		{"05/01/2024", date(2024, 1, 5)},
		{"2024-01-05T10:30:00", date(2024, 1, 5)},
		{"2024-01-05 10:30:00", date(2024, 1, 5)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		require.NotNil(t, got, "input=%q", tc.in)
		require.Equal(t, *tc.want, *got, "input=%q", tc.in)
	}
}

func TestParseDateMissingValues(t *testing.T) {
	for _, in := range []interface{}{nil, "", "  ", "N/A", "n/a", "null", "NA", "-", "not a date", 12345} {
		require.Nil(t, ParseDate(in), "input=%v", in)
	}
}

func TestNormalizeDate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 45, 12, 0, time.Local)
	got := NormalizeDate(&ts)
	require.NotNil(t, got)
	require.Equal(t, *date(2024, 3, 15), *got)

	require.Nil(t, NormalizeDate(nil))
	zero := time.Time{}
	require.Nil(t, NormalizeDate(&zero))
}
