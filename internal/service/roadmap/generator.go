// Package roadmap 把选定框架实例化为项目路线图：
// 阶段、必选任务、工件记录与任务-工件关联，在单个事务内全部创建。
package roadmap

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/repository"
	"github.com/bacompass/backend/internal/service/statemachine"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrFrameworkNotFound = errors.New("framework not found")
)

// Generator 路线图生成器。持有 *gorm.DB 以便在单个事务里完成级联创建，
// 测试用内存 sqlite 替换。
type Generator struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	catalogRepo repository.CatalogRepository
	roadmapRepo repository.RoadmapRepository
}

func NewGenerator(db *gorm.DB, projectRepo repository.ProjectRepository, catalogRepo repository.CatalogRepository, roadmapRepo repository.RoadmapRepository) *Generator {
	return &Generator{
		db:          db,
		projectRepo: projectRepo,
		catalogRepo: catalogRepo,
		roadmapRepo: roadmapRepo,
	}
}

// Generate 生成项目路线图。写入前先校验项目与框架存在；
// 全部创建跑在一个事务里，任一步失败则整体回滚，不留半成品。
// 旧的激活路线图在同一事务里取消激活，保证项目只有一个激活路线图。
func (g *Generator) Generate(projectID, frameworkID uint) (*model.ProjectRoadmap, error) {
	if _, err := g.projectRepo.GetBasic(projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}

	framework, err := g.catalogRepo.GetFramework(frameworkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFrameworkNotFound
		}
		return nil, fmt.Errorf("获取框架失败: %w", err)
	}

	var roadmapID uint
	err = g.db.Transaction(func(tx *gorm.DB) error {
		// 取消同项目旧路线图的激活状态
		if err := tx.Model(&model.ProjectRoadmap{}).
			Where("project_id = ? AND is_active = ?", projectID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("取消旧路线图激活失败: %w", err)
		}

		roadmap := &model.ProjectRoadmap{
			ProjectID:   projectID,
			FrameworkID: framework.ID,
			IsActive:    true,
		}
		if err := tx.Create(roadmap).Error; err != nil {
			return fmt.Errorf("创建路线图失败: %w", err)
		}
		roadmapID = roadmap.ID

		for _, phaseDef := range framework.Phases {
			phase := &model.ProjectPhase{
				RoadmapID:     roadmap.ID,
				Name:          phaseDef.Name,
				NameRu:        phaseDef.NameRu,
				SortOrder:     phaseDef.SortOrder,
				DurationWeeks: phaseDef.DurationWeeks,
				Status:        string(statemachine.PhaseStatusNotStarted),
				Progress:      0,
			}
			if err := tx.Create(phase).Error; err != nil {
				return fmt.Errorf("创建阶段失败: phase=%s: %w", phaseDef.Name, err)
			}

			for _, taskDef := range phaseDef.Tasks {
				// 只实例化必选任务
				if !taskDef.IsRequired {
					continue
				}

				task := &model.ProjectTask{
					PhaseID:            phase.ID,
					Name:               taskDef.Name,
					NameRu:             taskDef.NameRu,
					Description:        taskDef.Description,
					Status:             string(statemachine.TaskStatusTodo),
					Priority:           "medium",
					EstimatedHours:     taskDef.EstimatedHours,
					AcceptanceCriteria: taskDef.AcceptanceCriteria,
					SortOrder:          taskDef.SortOrder,
				}
				if err := tx.Create(task).Error; err != nil {
					return fmt.Errorf("创建任务失败: task=%s: %w", taskDef.Name, err)
				}

				for _, catalogKey := range taskDef.ArtifactKeyList() {
					artifact, err := g.resolveArtifact(tx, projectID, catalogKey, phaseDef.SortOrder)
					if err != nil {
						return err
					}
					if artifact == nil {
						// 目录里没有该条目，跳过这一条关联，不影响其余生成
						continue
					}

					link := &model.TaskArtifactLink{
						TaskID:     task.ID,
						ArtifactID: artifact.ID,
						Status:     string(statemachine.ArtifactStatusNotStarted),
						Required:   true,
					}
					if err := tx.Create(link).Error; err != nil {
						return fmt.Errorf("创建任务工件关联失败: %w", err)
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	klog.V(6).Infof("路线图生成完成: projectID=%d, frameworkKey=%s, roadmapID=%d", projectID, framework.Key, roadmapID)

	// 事务提交后重新读出完整树
	return g.roadmapRepo.GetFull(roadmapID)
}

// resolveArtifact 查找或创建任务应产出的项目工件。
// 目录里查不到条目时返回 (nil, nil)，调用方跳过该关联。
func (g *Generator) resolveArtifact(tx *gorm.DB, projectID uint, catalogKey string, phaseOrder int) (*model.ProjectArtifact, error) {
	var existing model.ProjectArtifact
	err := tx.Where("project_id = ? AND catalog_key = ?", projectID, catalogKey).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查找项目工件失败: key=%s: %w", catalogKey, err)
	}

	var entry model.ArtifactCatalogEntry
	err = tx.Where(&model.ArtifactCatalogEntry{Key: catalogKey}).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			klog.V(6).Infof("工件目录缺少条目，跳过关联: key=%s", catalogKey)
			return nil, nil
		}
		return nil, fmt.Errorf("查找工件目录失败: key=%s: %w", catalogKey, err)
	}

	artifact := &model.ProjectArtifact{
		ProjectID:  projectID,
		CatalogKey: entry.Key,
		Name:       entry.Name,
		NameRu:     entry.NameRu,
		Status:     string(statemachine.ArtifactStatusNotStarted),
		Stage:      stageForPhaseOrder(phaseOrder),
		Format:     formatFromCatalog(entry.Format),
		Version:    1,
	}
	if err := tx.Create(artifact).Error; err != nil {
		return nil, fmt.Errorf("创建项目工件失败: key=%s: %w", catalogKey, err)
	}
	return artifact, nil
}
