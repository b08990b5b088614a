package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bacompass/backend/internal/model"
)

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.ProjectFile) error {
	return r.db.Create(file).Error
}

func (r *fileRepository) Get(id uint) (*model.ProjectFile, error) {
	var file model.ProjectFile
	err := r.db.First(&file, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) GetByProject(projectID uint) ([]model.ProjectFile, error) {
	var files []model.ProjectFile
	err := r.db.Where("project_id = ?", projectID).Order("created_at desc").Find(&files).Error
	return files, err
}
