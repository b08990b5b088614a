package model

import "time"

// ProjectFile 上传文件表，保存分类结果（工件标识 + 置信度）
type ProjectFile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProjectID    uint      `json:"project_id" gorm:"index;not null"`
	OriginalName string    `json:"original_name" gorm:"size:255;not null"`
	StoredName   string    `json:"stored_name" gorm:"size:255;not null"` // 落盘文件名（UUID + 扩展名）
	Size         int64     `json:"size" gorm:"default:0"`
	ContentType  string    `json:"content_type" gorm:"size:100"`
	ArtifactKey  string    `json:"artifact_key" gorm:"size:50"` // 分类出的工件目录标识，未识别为空
	Confidence   float64   `json:"confidence" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ProjectFile) TableName() string {
	return "project_files"
}
