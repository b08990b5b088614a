package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bacompass/backend/internal/model"
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// preloadPhases 按序号预加载阶段与任务
func preloadPhases(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Preload("Phases.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		})
}

func (r *catalogRepository) ListFrameworks() ([]model.Framework, error) {
	var frameworks []model.Framework
	err := preloadPhases(r.db).Order("sort_order").Find(&frameworks).Error
	return frameworks, err
}

func (r *catalogRepository) GetFramework(id uint) (*model.Framework, error) {
	var framework model.Framework
	err := preloadPhases(r.db).First(&framework, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &framework, nil
}

func (r *catalogRepository) GetFrameworkByKey(key string) (*model.Framework, error) {
	var framework model.Framework
	// 条件走结构体，列名由方言自行引用（key 在 MySQL 里是保留字）
	err := preloadPhases(r.db).Where(&model.Framework{Key: key}).First(&framework).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &framework, nil
}

func (r *catalogRepository) ListArtifactCatalog() ([]model.ArtifactCatalogEntry, error) {
	var entries []model.ArtifactCatalogEntry
	err := r.db.
		Order("sort_order").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&entries).Error
	return entries, err
}

func (r *catalogRepository) GetCatalogEntry(key string) (*model.ArtifactCatalogEntry, error) {
	var entry model.ArtifactCatalogEntry
	err := r.db.Where(&model.ArtifactCatalogEntry{Key: key}).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}
