package model

import "time"

// ProjectRoadmap 项目路线图表，由框架实例化而来
type ProjectRoadmap struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ProjectID   uint           `json:"project_id" gorm:"index;not null"`
	FrameworkID uint           `json:"framework_id" gorm:"index;not null"`
	IsActive    bool           `json:"is_active" gorm:"default:true"` // 每个项目同一时刻只保留一个激活路线图
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	Framework   *Framework     `json:"framework,omitempty" gorm:"foreignKey:FrameworkID"`
	Phases      []ProjectPhase `json:"phases,omitempty" gorm:"foreignKey:RoadmapID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (ProjectRoadmap) TableName() string {
	return "project_roadmaps"
}

// ProjectPhase 项目阶段表，框架阶段在路线图中的实例
type ProjectPhase struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	RoadmapID     uint          `json:"roadmap_id" gorm:"uniqueIndex:idx_roadmap_phase_order;not null"`
	Name          string        `json:"name" gorm:"size:100;not null;default:''"`
	NameRu        string        `json:"name_ru" gorm:"size:100;not null;default:''"`
	SortOrder     int           `json:"sort_order" gorm:"uniqueIndex:idx_roadmap_phase_order;not null"` // 路线图内唯一
	DurationWeeks int           `json:"duration_weeks" gorm:"default:0"`
	Status        string        `json:"status" gorm:"size:50;default:'not-started'"` // not-started, in-progress, completed, on-hold
	Progress      int           `json:"progress" gorm:"default:0"`                   // 0-100
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	Tasks         []ProjectTask `json:"tasks,omitempty" gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (ProjectPhase) TableName() string {
	return "project_phases"
}

// ProjectTask 项目任务表，框架任务模板在阶段中的实例
type ProjectTask struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	PhaseID            uint               `json:"phase_id" gorm:"index;not null"`
	Name               string             `json:"name" gorm:"size:255;not null;default:''"`
	NameRu             string             `json:"name_ru" gorm:"size:255;not null;default:''"`
	Description        string             `json:"description" gorm:"size:1000"`
	Status             string             `json:"status" gorm:"size:50;default:'todo'"`      // todo, in-progress, done
	Priority           string             `json:"priority" gorm:"size:20;default:'medium'"`  // low, medium, high
	EstimatedHours     int                `json:"estimated_hours" gorm:"default:0"`
	ActualHours        int                `json:"actual_hours" gorm:"default:0"`
	Assignee           string             `json:"assignee" gorm:"size:255"`
	AcceptanceCriteria string             `json:"acceptance_criteria" gorm:"type:text"`
	SortOrder          int                `json:"sort_order" gorm:"default:0"`
	CreatedAt          time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	ArtifactLinks      []TaskArtifactLink `json:"artifact_links,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (ProjectTask) TableName() string {
	return "project_tasks"
}

// TaskArtifactLink 任务与项目工件的关联表
type TaskArtifactLink struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	TaskID     uint             `json:"task_id" gorm:"uniqueIndex:idx_task_artifact;not null"`
	ArtifactID uint             `json:"artifact_id" gorm:"uniqueIndex:idx_task_artifact;not null"`
	Status     string           `json:"status" gorm:"size:50;default:'not-started'"`
	Required   bool             `json:"required" gorm:"default:true"`
	CreatedAt  time.Time        `json:"created_at" gorm:"autoCreateTime"`
	Artifact   *ProjectArtifact `json:"artifact,omitempty" gorm:"foreignKey:ArtifactID"`
}

// TableName 指定表名
func (TaskArtifactLink) TableName() string {
	return "task_artifact_links"
}
