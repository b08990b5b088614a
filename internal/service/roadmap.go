package service

import (
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/repository"
	"github.com/bacompass/backend/internal/service/roadmap"
	"github.com/bacompass/backend/internal/service/statemachine"
)

var (
	ErrRoadmapNotFound   = errors.New("roadmap not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrFrameworkNotFound = errors.New("framework not found")
	ErrUnknownStatus     = errors.New("unknown status value")
)

// RoadmapService 路线图服务：生成、查询、任务与工件状态流转
type RoadmapService struct {
	generator    *roadmap.Generator
	catalogRepo  repository.CatalogRepository
	roadmapRepo  repository.RoadmapRepository
	artifactRepo repository.ArtifactRepository
	taskSM       *statemachine.TaskStateMachine
	artifactSM   *statemachine.ArtifactStateMachine
}

func NewRoadmapService(generator *roadmap.Generator, catalogRepo repository.CatalogRepository, roadmapRepo repository.RoadmapRepository, artifactRepo repository.ArtifactRepository) *RoadmapService {
	return &RoadmapService{
		generator:    generator,
		catalogRepo:  catalogRepo,
		roadmapRepo:  roadmapRepo,
		artifactRepo: artifactRepo,
		taskSM:       statemachine.NewTaskStateMachine(),
		artifactSM:   statemachine.NewArtifactStateMachine(),
	}
}

// Generate 按选定框架生成项目路线图
func (s *RoadmapService) Generate(projectID, frameworkID uint) (*model.ProjectRoadmap, error) {
	result, err := s.generator.Generate(projectID, frameworkID)
	switch {
	case errors.Is(err, roadmap.ErrProjectNotFound):
		return nil, ErrProjectNotFound
	case errors.Is(err, roadmap.ErrFrameworkNotFound):
		return nil, ErrFrameworkNotFound
	case err != nil:
		return nil, err
	}
	return result, nil
}

// GenerateByKey 按框架标识生成路线图，供前端不持有数字 ID 时使用
func (s *RoadmapService) GenerateByKey(projectID uint, frameworkKey string) (*model.ProjectRoadmap, error) {
	framework, err := s.catalogRepo.GetFrameworkByKey(frameworkKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFrameworkNotFound
		}
		return nil, err
	}
	return s.Generate(projectID, framework.ID)
}

// GetActive 获取项目当前激活的路线图（完整树）
func (s *RoadmapService) GetActive(projectID uint) (*model.ProjectRoadmap, error) {
	active, err := s.roadmapRepo.GetActiveByProject(projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, err
	}
	return s.roadmapRepo.GetFull(active.ID)
}

// Delete 删除路线图（级联删除阶段、任务与关联）
func (s *RoadmapService) Delete(id uint) error {
	if _, err := s.roadmapRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoadmapNotFound
		}
		return err
	}
	return s.roadmapRepo.Delete(id)
}

// UpdateTaskStatus 更新任务状态。迁移必须通过任务状态机校验，
// 之后重算所属阶段的进度与状态。
func (s *RoadmapService) UpdateTaskStatus(taskID uint, status string) (*model.ProjectTask, error) {
	if !statemachine.IsValidTaskStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, status)
	}

	task, err := s.roadmapRepo.GetTask(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if err := s.taskSM.Transition(statemachine.TaskStatus(task.Status), statemachine.TaskStatus(status), task.ID); err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.roadmapRepo.SaveTask(task); err != nil {
		return nil, fmt.Errorf("保存任务失败: %w", err)
	}

	if err := s.recomputePhaseProgress(task.PhaseID); err != nil {
		return nil, err
	}
	return task, nil
}

// recomputePhaseProgress 按任务完成比例重算阶段进度。
// 挂起（on-hold）的阶段只更新进度数值，不改状态。
func (s *RoadmapService) recomputePhaseProgress(phaseID uint) error {
	phase, err := s.roadmapRepo.GetPhase(phaseID)
	if err != nil {
		return err
	}
	tasks, err := s.roadmapRepo.GetTasksByPhase(phaseID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	done := 0
	started := 0
	for _, t := range tasks {
		switch statemachine.TaskStatus(t.Status) {
		case statemachine.TaskStatusDone:
			done++
			started++
		case statemachine.TaskStatusInProgress:
			started++
		}
	}

	phase.Progress = done * 100 / len(tasks)
	if phase.Status != string(statemachine.PhaseStatusOnHold) {
		switch {
		case done == len(tasks):
			phase.Status = string(statemachine.PhaseStatusCompleted)
		case started > 0:
			phase.Status = string(statemachine.PhaseStatusInProgress)
		default:
			phase.Status = string(statemachine.PhaseStatusNotStarted)
		}
	}

	if err := s.roadmapRepo.SavePhase(phase); err != nil {
		return fmt.Errorf("保存阶段进度失败: %w", err)
	}
	klog.V(6).Infof("阶段进度已重算: phaseID=%d, progress=%d, status=%s", phase.ID, phase.Progress, phase.Status)
	return nil
}

// UpdateArtifactStatus 更新项目工件状态。迁移必须通过工件状态机校验，
// 保存时版本号 +1。
func (s *RoadmapService) UpdateArtifactStatus(artifactID uint, status string) (*model.ProjectArtifact, error) {
	if !statemachine.IsValidArtifactStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, status)
	}

	artifact, err := s.artifactRepo.Get(artifactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArtifactNotFound
		}
		return nil, err
	}

	if err := s.artifactSM.Transition(statemachine.ArtifactStatus(artifact.Status), statemachine.ArtifactStatus(status), artifact.ID); err != nil {
		return nil, err
	}

	artifact.Status = status
	if err := s.artifactRepo.Update(artifact); err != nil {
		return nil, fmt.Errorf("保存工件失败: %w", err)
	}
	return artifact, nil
}

// ListArtifacts 列出项目的全部工件
func (s *RoadmapService) ListArtifacts(projectID uint) ([]model.ProjectArtifact, error) {
	return s.artifactRepo.GetByProject(projectID)
}
