package model

import "time"

// Project 项目表
type Project struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"size:1000"`

	// 访谈产出的项目画像（枚举式字符串，推荐打分的输入）
	DurationBucket string `json:"duration_bucket" gorm:"size:50"`  // 项目时长区间
	TeamSizeBucket string `json:"team_size_bucket" gorm:"size:50"` // 团队规模区间
	MaturityBucket string `json:"maturity_bucket" gorm:"size:50"`  // 流程成熟度
	PreferredStyle string `json:"preferred_style" gorm:"size:100"` // 偏好方法论风格
	RiskTolerance  string `json:"risk_tolerance" gorm:"size:50"`   // 风险容忍度
	Goals          string `json:"goals" gorm:"type:text"`          // 自由文本，不参与打分
	Stakeholders   string `json:"stakeholders" gorm:"type:text"`   // 自由文本，不参与打分

	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	Roadmaps  []ProjectRoadmap `json:"roadmaps,omitempty" gorm:"foreignKey:ProjectID"`
	Files     []ProjectFile    `json:"files,omitempty" gorm:"foreignKey:ProjectID"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// HasInterviewProfile 检查项目是否已填写访谈画像
func (p *Project) HasInterviewProfile() bool {
	return p.DurationBucket != "" || p.TeamSizeBucket != "" || p.PreferredStyle != ""
}
