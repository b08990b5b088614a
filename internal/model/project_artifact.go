package model

import "time"

// ProjectArtifact 项目工件表，工件目录条目在项目中的实例
// 版本号单调递增，每次更新恰好 +1
type ProjectArtifact struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProjectID  uint      `json:"project_id" gorm:"uniqueIndex:idx_project_artifact_key;not null"`
	CatalogKey string    `json:"catalog_key" gorm:"size:50;uniqueIndex:idx_project_artifact_key;not null"` // 工件目录标识
	Name       string    `json:"name" gorm:"size:255;not null;default:''"`
	NameRu     string    `json:"name_ru" gorm:"size:255;not null;default:''"`
	Status     string    `json:"status" gorm:"size:50;default:'not-started'"` // not-started, draft, in-review, approved, obsolete
	Stage      string    `json:"stage" gorm:"size:50"`
	Format     string    `json:"format" gorm:"size:20;default:'OTHER'"`
	Version    int       `json:"version" gorm:"default:1"`
	FileID     *uint     `json:"file_id" gorm:"index"` // 最近一次关联的上传文件
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ProjectArtifact) TableName() string {
	return "project_artifacts"
}
