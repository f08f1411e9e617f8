package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project 项目结构体
// projectFullCode 在工作集中唯一，是KPI记录与清单活动匹配时的项目侧键
type Project struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProjectCode    string             `json:"projectCode" bson:"projectCode" binding:"required"`
	ProjectSubCode string             `json:"projectSubCode,omitempty" bson:"projectSubCode,omitempty"`
	ProjectName    string             `json:"projectName" bson:"projectName" binding:"required"`
	ContractorName string             `json:"contractorName,omitempty" bson:"contractorName,omitempty"`
	OwnerName      string             `json:"ownerName,omitempty" bson:"ownerName,omitempty"`
	ContractValue  float64            `json:"contractValue,omitempty" bson:"contractValue,omitempty"`
	CreatorID      string             `json:"creatorId" bson:"creatorId"`
	CreatorName    string             `json:"creatorName" bson:"creatorName"`
	UpdaterID      string             `json:"updaterId,omitempty" bson:"updaterId,omitempty"`
	UpdaterName    string             `json:"updaterName,omitempty" bson:"updaterName,omitempty"`
	Remark         string             `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FullCode 完整项目编码：有子编码用子编码，否则用主编码
func (p Project) FullCode() string {
	if p.ProjectSubCode != "" {
		return p.ProjectSubCode
	}
	return p.ProjectCode
}

// 项目响应结构体
type ProjectResponse struct {
	ID              string    `json:"_id"`
	ProjectCode     string    `json:"projectCode"`
	ProjectSubCode  string    `json:"projectSubCode,omitempty"`
	ProjectFullCode string    `json:"projectFullCode"`
	ProjectName     string    `json:"projectName"`
	ContractorName  string    `json:"contractorName,omitempty"`
	OwnerName       string    `json:"ownerName,omitempty"`
	ContractValue   float64   `json:"contractValue,omitempty"`
	CreatorName     string    `json:"creatorName"`
	Remark          string    `json:"remark,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ConvertProjectToResponse(project Project) ProjectResponse {
	return ProjectResponse{
		ID:              project.ID.Hex(),
		ProjectCode:     project.ProjectCode,
		ProjectSubCode:  project.ProjectSubCode,
		ProjectFullCode: project.FullCode(),
		ProjectName:     project.ProjectName,
		ContractorName:  project.ContractorName,
		OwnerName:       project.OwnerName,
		ContractValue:   project.ContractValue,
		CreatorName:     project.CreatorName,
		Remark:          project.Remark,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}
