package engine

import (
	"strings"

	"github.com/ZTTBuild/pmo_end/models"
)

// MatchPredicate 活动与KPI记录的匹配策略
// 默认实现是模糊文本匹配，需要时可以换成编辑距离或显式映射表，
// 下游的汇总和分级不感知具体策略
type MatchPredicate interface {
	Matches(activity models.Activity, record models.KPIRecord) bool
}

// FuzzyMatcher 默认匹配策略：项目编码前缀匹配 + 活动名称双向包含 + 区域宽松匹配
// 对名称故意放宽，因为两套系统的录入存在缩写和标点漂移
type FuzzyMatcher struct{}

// Matches 逐条独立判断，不做全局最优分配
// 名称歧义时同一条记录可能被多个活动同时认领，这是接受的宽松行为
func (FuzzyMatcher) Matches(activity models.Activity, record models.KPIRecord) bool {
	return matchesProject(activity, record) &&
		matchesName(activity, record) &&
		matchesZone(activity, record)
}

// DefaultMatcher 默认匹配器
var DefaultMatcher MatchPredicate = FuzzyMatcher{}

// MatchRecords 用默认策略从全量KPI记录中筛选出属于该活动的子集
// records 应是整屏批量加载的完整集合，多个活动复用同一份
func MatchRecords(activity models.Activity, records []models.KPIRecord) []models.KPIRecord {
	return Match(DefaultMatcher, activity, records)
}

// Match 用指定策略筛选记录，不修改入参
func Match(pred MatchPredicate, activity models.Activity, records []models.KPIRecord) []models.KPIRecord {
	matched := make([]models.KPIRecord, 0)
	for _, record := range records {
		if pred.Matches(activity, record) {
			matched = append(matched, record)
		}
	}
	return matched
}

// matchesProject 项目匹配：记录编码等于活动编码，或互为前缀
// 允许记录带子编码后缀，编码比活动更具体
func matchesProject(activity models.Activity, record models.KPIRecord) bool {
	recordCode := Normalize(record.FullCode())
	activityCode := Normalize(activity.FullCode())
	if recordCode == "" || activityCode == "" {
		return recordCode == activityCode
	}
	return strings.HasPrefix(recordCode, activityCode) ||
		strings.HasPrefix(activityCode, recordCode)
}

// matchesName 名称匹配：规范化后双向子串包含
func matchesName(activity models.Activity, record models.KPIRecord) bool {
	activityName := Normalize(activity.Name())
	recordName := Normalize(record.ActivityName)
	if activityName == "" || recordName == "" {
		return false
	}
	return strings.Contains(recordName, activityName) ||
		strings.Contains(activityName, recordName)
}

// matchesZone 区域匹配：双方都有区域时必须相等或互相包含
// 任一方未指定区域则不拦截，区域是参考信息而非硬过滤
func matchesZone(activity models.Activity, record models.KPIRecord) bool {
	activityZone := ResolveZone(activity.Zone(), stripCode(activity.ProjectCode, activity.ProjectFullCode))
	recordZone := ResolveZone(record.Zone, stripCode(record.ProjectCode, record.ProjectFullCode))
	if activityZone == "" || recordZone == "" {
		return true
	}
	return activityZone == recordZone ||
		strings.Contains(activityZone, recordZone) ||
		strings.Contains(recordZone, activityZone)
}

// stripCode 选择用于剥离区域前缀的项目编码，优先短编码
func stripCode(code, fullCode string) string {
	if code != "" {
		return code
	}
	return fullCode
}
