package engine

// CalculateValue 由总量和合同额推导单位单价与已完成产值
//
// 分两步而不是一个比值：单价本身要独立展示（每单位成本），
// 也要能在别处按同一单价外推剩余产值。totalUnits 为0时退回
// plannedUnits，两者都为0时单价和产值都是0，绝不产生NaN或Inf。
func CalculateValue(totalUnits, plannedUnits, actualUnits, totalValue float64) (rate, value float64) {
	units := totalUnits
	if units <= 0 {
		units = plannedUnits
	}

	if units > 0 {
		rate = totalValue / units
	}
	value = rate * actualUnits

	return rate, value
}
