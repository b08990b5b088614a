package repository

import (
	"errors"

	"github.com/bacompass/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// CatalogRepository 参考数据仓储：框架目录与工件目录，核心逻辑只读
type CatalogRepository interface {
	ListFrameworks() ([]model.Framework, error)
	GetFramework(id uint) (*model.Framework, error)
	GetFrameworkByKey(key string) (*model.Framework, error)
	ListArtifactCatalog() ([]model.ArtifactCatalogEntry, error)
	GetCatalogEntry(key string) (*model.ArtifactCatalogEntry, error)
}

type ProjectRepository interface {
	Create(project *model.Project) error
	List() ([]model.Project, error)
	Get(id uint) (*model.Project, error)
	GetBasic(id uint) (*model.Project, error)
	Save(project *model.Project) error
	Delete(id uint) error
}

type RoadmapRepository interface {
	Get(id uint) (*model.ProjectRoadmap, error)
	GetFull(id uint) (*model.ProjectRoadmap, error)
	GetActiveByProject(projectID uint) (*model.ProjectRoadmap, error)
	Delete(id uint) error
	GetPhase(id uint) (*model.ProjectPhase, error)
	SavePhase(phase *model.ProjectPhase) error
	GetTask(id uint) (*model.ProjectTask, error)
	SaveTask(task *model.ProjectTask) error
	GetTasksByPhase(phaseID uint) ([]model.ProjectTask, error)
}

type ArtifactRepository interface {
	Create(artifact *model.ProjectArtifact) error
	Get(id uint) (*model.ProjectArtifact, error)
	FindByProjectAndKey(projectID uint, catalogKey string) (*model.ProjectArtifact, error)
	GetByProject(projectID uint) ([]model.ProjectArtifact, error)
	// Update 保存修改并把版本号恰好 +1
	Update(artifact *model.ProjectArtifact) error
}

type FileRepository interface {
	Create(file *model.ProjectFile) error
	Get(id uint) (*model.ProjectFile, error)
	GetByProject(projectID uint) ([]model.ProjectFile, error)
}
