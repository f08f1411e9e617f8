package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InputType KPI记录的录入类型枚举
type InputType string

const (
	InputTypePlanned InputType = "Planned" // 计划量
	InputTypeActual  InputType = "Actual"  // 实际完成量
)

// IsPlanned 是否计划量（容忍大小写差异）
func (t InputType) IsPlanned() bool {
	return strings.EqualFold(string(t), string(InputTypePlanned))
}

// IsActual 是否实际量（容忍大小写差异）
func (t InputType) IsActual() bool {
	return strings.EqualFold(string(t), string(InputTypeActual))
}

// KPIRecord 单条日期化的现场计量记录
// 通过项目编码与活动名称关联到清单活动，两套系统之间没有外键
type KPIRecord struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProjectCode     string             `json:"projectCode" bson:"projectCode"`
	ProjectFullCode string             `json:"projectFullCode" bson:"projectFullCode"`
	ActivityName    string             `json:"activityName" bson:"activityName"`
	Zone            string             `json:"zone,omitempty" bson:"zone,omitempty"`
	InputType       InputType          `json:"inputType" bson:"inputType"`
	Quantity        interface{}        `json:"quantity" bson:"quantity"` // 来源数据可能是数字也可能是字符串
	RecordDate      *time.Time         `json:"recordDate,omitempty" bson:"recordDate,omitempty"`
	RecordedBy      string             `json:"recordedBy,omitempty" bson:"recordedBy,omitempty"`
	ImportBatchID   string             `json:"importBatchId,omitempty" bson:"importBatchId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FullCode 记录侧的项目匹配键
func (r KPIRecord) FullCode() string {
	if r.ProjectFullCode != "" {
		return r.ProjectFullCode
	}
	return r.ProjectCode
}

// QuantityValue 防御性解析数量字段
// 非数字或缺失的数量按0计，绝不报错也不丢弃记录本身
func (r KPIRecord) QuantityValue() float64 {
	switch v := r.Quantity.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// KPIRecordCreateRequest 创建KPI记录请求
type KPIRecordCreateRequest struct {
	ProjectCode     string      `json:"projectCode"`
	ProjectFullCode string      `json:"projectFullCode"`
	ActivityName    string      `json:"activityName" binding:"required"`
	Zone            string      `json:"zone"`
	InputType       InputType   `json:"inputType" binding:"required"`
	Quantity        interface{} `json:"quantity"`
	RecordDate      *time.Time  `json:"recordDate"`
}

// KPIRecordBatchRequest 批量导入KPI记录请求
type KPIRecordBatchRequest struct {
	Records []KPIRecordCreateRequest `json:"records" binding:"required"`
}

type KPIRecordListResponse struct {
	Records []KPIRecord `json:"records"`
}
