package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZTTBuild/pmo_end/models"
)

func TestMatchProjectCodePrefix(t *testing.T) {
	activity := models.Activity{
		ProjectCode:     "P5008",
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation",
	}

	// 记录编码比活动更具体，前缀匹配通过
	record := models.KPIRecord{
		ProjectFullCode: "P5008-C2",
		ActivityName:    "Excavation",
		InputType:       models.InputTypeActual,
	}
	require.True(t, DefaultMatcher.Matches(activity, record))

	// 完全不同的项目编码不匹配
	record.ProjectFullCode = "P6001"
	require.False(t, DefaultMatcher.Matches(activity, record))
}

func TestMatchNameBidirectionalContains(t *testing.T) {
	activity := models.Activity{
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation Works",
	}

	// 记录名称包含活动名称
	record := models.KPIRecord{
		ProjectFullCode: "P5008",
		ActivityName:    "excavation works - phase 1",
	}
	require.True(t, DefaultMatcher.Matches(activity, record))

	// 活动名称包含记录名称
	record.ActivityName = "Excavation"
	require.True(t, DefaultMatcher.Matches(activity, record))

	// 互不包含
	record.ActivityName = "Concrete Pouring"
	require.False(t, DefaultMatcher.Matches(activity, record))
}

func TestMatchEmptyNameNeverMatches(t *testing.T) {
	activity := models.Activity{ProjectFullCode: "P5008", ActivityName: "Excavation"}
	record := models.KPIRecord{ProjectFullCode: "P5008", ActivityName: ""}
	require.False(t, DefaultMatcher.Matches(activity, record))

	activity.ActivityName = ""
	record.ActivityName = "Excavation"
	require.False(t, DefaultMatcher.Matches(activity, record))
}

func TestMatchZonePermissive(t *testing.T) {
	activity := models.Activity{
		ProjectCode:     "P5008",
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation",
		ZoneRef:         "Zone A",
	}

	// 记录未指定区域时不拦截
	record := models.KPIRecord{
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation",
		Zone:            "",
	}
	require.True(t, DefaultMatcher.Matches(activity, record))

	// 活动未指定区域时同样不拦截
	noZone := activity
	noZone.ZoneRef = ""
	record.Zone = "Zone B"
	require.True(t, DefaultMatcher.Matches(noZone, record))

	// 双方都指定且互不重叠的区域不匹配
	record.Zone = "Zone B"
	require.False(t, DefaultMatcher.Matches(activity, record))
}

func TestMatchZoneResolvedAgainstProjectCode(t *testing.T) {
	// 活动区域带项目编码前缀，记录区域是裸区域名，剥离后相等
	activity := models.Activity{
		ProjectCode:     "P5008",
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation",
		ZoneRef:         "P5008-Zone A",
	}
	record := models.KPIRecord{
		ProjectCode:     "P5008",
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation",
		Zone:            "zone a",
	}
	require.True(t, DefaultMatcher.Matches(activity, record))
}

func TestMatchRecordsFiltersFullSet(t *testing.T) {
	activity := models.Activity{
		ProjectFullCode: "P5008",
		ActivityName:    "Excavation",
	}
	records := []models.KPIRecord{
		{ProjectFullCode: "P5008", ActivityName: "Excavation", InputType: models.InputTypePlanned},
		{ProjectFullCode: "P5008", ActivityName: "Concrete", InputType: models.InputTypeActual},
		{ProjectFullCode: "P5008-C1", ActivityName: "excavation phase 2", InputType: models.InputTypeActual},
	}

	matched := MatchRecords(activity, records)
	require.Len(t, matched, 2)
	// 入参不被修改
	require.Len(t, records, 3)
}
