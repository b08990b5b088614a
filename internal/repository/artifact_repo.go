package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bacompass/backend/internal/model"
)

type artifactRepository struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

func (r *artifactRepository) Create(artifact *model.ProjectArtifact) error {
	if artifact.Version <= 0 {
		artifact.Version = 1
	}
	return r.db.Create(artifact).Error
}

func (r *artifactRepository) Get(id uint) (*model.ProjectArtifact, error) {
	var artifact model.ProjectArtifact
	err := r.db.First(&artifact, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepository) FindByProjectAndKey(projectID uint, catalogKey string) (*model.ProjectArtifact, error) {
	var artifact model.ProjectArtifact
	err := r.db.Where("project_id = ? AND catalog_key = ?", projectID, catalogKey).First(&artifact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepository) GetByProject(projectID uint) ([]model.ProjectArtifact, error) {
	var artifacts []model.ProjectArtifact
	err := r.db.Where("project_id = ?", projectID).Order("catalog_key").Find(&artifacts).Error
	return artifacts, err
}

// Update 保存修改，版本号恰好 +1（单调递增，不回退不跳号）
func (r *artifactRepository) Update(artifact *model.ProjectArtifact) error {
	artifact.Version++
	return r.db.Save(artifact).Error
}
