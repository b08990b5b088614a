package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bacompass/backend/internal/model"
)

func InitDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		// 使用 github.com/glebarez/sqlite 驱动
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate 迁移全部表结构（测试里也会用到）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Framework{},
		&model.FrameworkPhase{},
		&model.FrameworkTask{},
		&model.ArtifactCatalogEntry{},
		&model.Project{},
		&model.ProjectRoadmap{},
		&model.ProjectPhase{},
		&model.ProjectTask{},
		&model.ProjectArtifact{},
		&model.TaskArtifactLink{},
		&model.ProjectFile{},
	)
}
