package engine

import "github.com/ZTTBuild/pmo_end/models"

// MatchedAggregate 按录入类型分组的汇总结果，每次调用重新计算，不持久化
type MatchedAggregate struct {
	PlannedCount int     `json:"plannedCount"` // 计划记录条数
	ActualCount  int     `json:"actualCount"`  // 实际记录条数
	TotalPlanned float64 `json:"totalPlanned"` // 计划量合计
	TotalActual  float64 `json:"totalActual"`  // 实际量合计
	HasData      bool    `json:"hasData"`      // 至少匹配到一条记录，与合计是否为0无关
}

// Aggregate 汇总匹配到的KPI记录
// 数量解析失败的记录按0计入合计，但仍计入条数，绝不丢弃
func Aggregate(matched []models.KPIRecord) MatchedAggregate {
	agg := MatchedAggregate{HasData: len(matched) > 0}

	for _, record := range matched {
		qty := record.QuantityValue()
		if record.InputType.IsPlanned() {
			agg.PlannedCount++
			agg.TotalPlanned += qty
		} else if record.InputType.IsActual() {
			agg.ActualCount++
			agg.TotalActual += qty
		}
	}

	return agg
}
