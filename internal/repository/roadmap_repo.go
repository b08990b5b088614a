package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bacompass/backend/internal/model"
)

type roadmapRepository struct {
	db *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) RoadmapRepository {
	return &roadmapRepository{db: db}
}

func (r *roadmapRepository) Get(id uint) (*model.ProjectRoadmap, error) {
	var roadmap model.ProjectRoadmap
	err := r.db.First(&roadmap, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &roadmap, nil
}

// preloadRoadmapTree 按序号预加载阶段→任务→工件关联
func preloadRoadmapTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Framework").
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Preload("Phases.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Preload("Phases.Tasks.ArtifactLinks").
		Preload("Phases.Tasks.ArtifactLinks.Artifact")
}

// GetFull 获取路线图完整树（阶段→任务→工件关联）
func (r *roadmapRepository) GetFull(id uint) (*model.ProjectRoadmap, error) {
	var roadmap model.ProjectRoadmap
	err := preloadRoadmapTree(r.db).First(&roadmap, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &roadmap, nil
}

func (r *roadmapRepository) GetActiveByProject(projectID uint) (*model.ProjectRoadmap, error) {
	var roadmap model.ProjectRoadmap
	err := preloadRoadmapTree(r.db).
		Where("project_id = ? AND is_active = ?", projectID, true).
		First(&roadmap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &roadmap, nil
}

func (r *roadmapRepository) Delete(id uint) error {
	return r.db.Delete(&model.ProjectRoadmap{}, id).Error
}

func (r *roadmapRepository) GetPhase(id uint) (*model.ProjectPhase, error) {
	var phase model.ProjectPhase
	err := r.db.First(&phase, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &phase, nil
}

func (r *roadmapRepository) SavePhase(phase *model.ProjectPhase) error {
	return r.db.Save(phase).Error
}

func (r *roadmapRepository) GetTask(id uint) (*model.ProjectTask, error) {
	var task model.ProjectTask
	err := r.db.First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *roadmapRepository) SaveTask(task *model.ProjectTask) error {
	return r.db.Save(task).Error
}

func (r *roadmapRepository) GetTasksByPhase(phaseID uint) ([]model.ProjectTask, error) {
	var tasks []model.ProjectTask
	err := r.db.Where("phase_id = ?", phaseID).Order("sort_order").Find(&tasks).Error
	return tasks, err
}
