package model

import (
	"strings"
	"time"
)

// Framework 方法论框架表（参考数据，启动时预置）
type Framework struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Key         string `json:"key" gorm:"size:50;uniqueIndex;not null"`      // 框架标识，如 scrum-ba, waterfall-ba
	Name        string `json:"name" gorm:"size:100;not null;default:''"`     // 英文名称
	NameRu      string `json:"name_ru" gorm:"size:100;not null;default:''"`  // 俄文名称
	Description string `json:"description" gorm:"size:1000"`                 // 描述
	Tags        string `json:"tags" gorm:"size:255;default:''"`              // 方法论标签，逗号分隔，如 agile,scrum
	IsDefault   bool   `json:"is_default" gorm:"default:false"`              // 是否默认框架
	IsSystem    bool   `json:"is_system" gorm:"default:false"`               // 是否系统预置
	SortOrder   int    `json:"sort_order" gorm:"default:0"`

	// 适配条件（为空/0 表示该框架不声明此约束）
	DurationMonthsMax int    `json:"duration_months_max" gorm:"default:0"` // 项目时长上限（月）
	TeamSizeMax       int    `json:"team_size_max" gorm:"default:0"`       // 团队人数上限
	MinMaturity       string `json:"min_maturity" gorm:"size:50"`          // 最低流程成熟度
	RiskTolerances    string `json:"risk_tolerances" gorm:"size:255"`      // 允许的风险容忍度，逗号分隔

	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	Phases    []FrameworkPhase `json:"phases,omitempty" gorm:"foreignKey:FrameworkID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (Framework) TableName() string {
	return "frameworks"
}

// TagList 返回方法论标签列表
func (f *Framework) TagList() []string {
	return splitList(f.Tags)
}

// HasTag 检查框架是否带有指定标签（大小写不敏感）
func (f *Framework) HasTag(tag string) bool {
	for _, t := range f.TagList() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// RiskToleranceList 返回允许的风险容忍度列表
func (f *Framework) RiskToleranceList() []string {
	return splitList(f.RiskTolerances)
}

// AllowsRiskTolerance 检查风险容忍度是否在允许集合中（大小写不敏感）
func (f *Framework) AllowsRiskTolerance(value string) bool {
	for _, v := range f.RiskToleranceList() {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// FrameworkPhase 框架阶段表，属于一个框架，按 SortOrder 排序
type FrameworkPhase struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	FrameworkID   uint            `json:"framework_id" gorm:"uniqueIndex:idx_framework_phase_order;not null"`
	Name          string          `json:"name" gorm:"size:100;not null;default:''"`
	NameRu        string          `json:"name_ru" gorm:"size:100;not null;default:''"`
	SortOrder     int             `json:"sort_order" gorm:"uniqueIndex:idx_framework_phase_order;not null"` // 阶段序号，框架内唯一
	DurationWeeks int             `json:"duration_weeks" gorm:"default:0"`                                  // 预估时长（周）
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	Tasks         []FrameworkTask `json:"tasks,omitempty" gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (FrameworkPhase) TableName() string {
	return "framework_phases"
}

// FrameworkTask 框架任务模板表，属于一个阶段
type FrameworkTask struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	PhaseID            uint      `json:"phase_id" gorm:"index;not null"`
	Name               string    `json:"name" gorm:"size:255;not null;default:''"`
	NameRu             string    `json:"name_ru" gorm:"size:255;not null;default:''"`
	Description        string    `json:"description" gorm:"size:1000"`
	IsRequired         bool      `json:"is_required" gorm:"default:true"` // 生成路线图时只实例化必选任务
	EstimatedHours     int       `json:"estimated_hours" gorm:"default:0"`
	AcceptanceCriteria string    `json:"acceptance_criteria" gorm:"type:text"`
	ArtifactKeys       string    `json:"artifact_keys" gorm:"size:500;default:''"` // 应产出的工件目录标识，逗号分隔
	DependsOn          string    `json:"depends_on" gorm:"size:500;default:''"`    // 依赖任务标识，逗号分隔
	SortOrder          int       `json:"sort_order" gorm:"default:0"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (FrameworkTask) TableName() string {
	return "framework_tasks"
}

// ArtifactKeyList 返回任务应产出的工件目录标识列表
func (t *FrameworkTask) ArtifactKeyList() []string {
	return splitList(t.ArtifactKeys)
}

// splitList 拆分逗号分隔的字段值，去掉空项和首尾空白
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
