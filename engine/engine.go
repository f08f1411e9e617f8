// Package engine 实现清单活动与KPI计量记录的对账引擎。
//
// 工程量清单(BOQ)与KPI台账由不同岗位独立维护，没有共享外键，
// 只能在查询时用文本与区域的模糊匹配把两边关联起来，再归并为
// 进度、产值和时间轴指标。本包内全部是纯函数：不做I/O，不保留
// 状态，不修改入参，相同输入重复调用结果相同。
//
// 调用约定：每个界面把KPI记录批量加载一次，把完整集合传给每个
// 活动的匹配调用。禁止每行活动单独发起查询。
package engine

import "github.com/ZTTBuild/pmo_end/models"

// EvaluateActivity 按默认匹配策略执行 匹配 -> 汇总 -> 分级 全流程
// 只需要进度百分比的调用方可以单独使用各步骤函数
func EvaluateActivity(activity models.Activity, records []models.KPIRecord) (MatchedAggregate, ProgressResult) {
	matched := MatchRecords(activity, records)
	agg := Aggregate(matched)
	return agg, Classify(agg, activity)
}
