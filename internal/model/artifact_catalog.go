package model

import "time"

// 工件文件格式标签
const (
	FormatDOCX  = "DOCX"
	FormatXLSX  = "XLSX"
	FormatPDF   = "PDF"
	FormatBPMN  = "BPMN"
	FormatPNG   = "PNG"
	FormatOther = "OTHER"
)

// 工件生命周期阶段标签
const (
	StageInitiation = "initiation-discovery"
	StageAnalysis   = "analysis-modeling"
	StageDesign     = "solution-design-planning"
	StageMonitoring = "monitoring-evaluation"
)

// ArtifactCatalogEntry 工件目录表（参考数据，启动时预置，核心逻辑只读）
type ArtifactCatalogEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"size:50;uniqueIndex;not null"`     // 工件标识，如 BRD, SRS
	Name        string    `json:"name" gorm:"size:255;not null;default:''"`    // 英文名称
	NameRu      string    `json:"name_ru" gorm:"size:255;not null;default:''"` // 俄文名称
	Area        string    `json:"area" gorm:"size:100"`                        // 分类领域，如 requirements, process
	Stage       string    `json:"stage" gorm:"size:50"`                        // 生命周期阶段标签
	Format      string    `json:"format" gorm:"size:20;default:'OTHER'"`       // 文件格式标签
	Description string    `json:"description" gorm:"size:1000"`
	Keywords    string    `json:"keywords" gorm:"size:500;default:''"` // 识别关键词，逗号分隔
	Requires    string    `json:"requires" gorm:"size:255;default:''"` // 依赖的其他目录工件，逗号分隔
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ArtifactCatalogEntry) TableName() string {
	return "artifact_catalog"
}

// KeywordList 返回识别关键词列表
func (e *ArtifactCatalogEntry) KeywordList() []string {
	return splitList(e.Keywords)
}

// RequiresList 返回依赖的目录工件标识列表
func (e *ArtifactCatalogEntry) RequiresList() []string {
	return splitList(e.Requires)
}
