package service

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/repository"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectNameEmpty = errors.New("project name is empty")
)

// InterviewInput 访谈表单输入，保存为项目画像
type InterviewInput struct {
	DurationBucket string `json:"duration_bucket"`
	TeamSizeBucket string `json:"team_size_bucket"`
	MaturityBucket string `json:"maturity_bucket"`
	PreferredStyle string `json:"preferred_style"`
	RiskTolerance  string `json:"risk_tolerance"`
	Goals          string `json:"goals"`
	Stakeholders   string `json:"stakeholders"`
}

// ProjectService 项目管理服务
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// Create 创建项目
func (s *ProjectService) Create(name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameEmpty
	}

	project := &model.Project{
		Name:        name,
		Description: description,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}

	klog.V(6).Infof("项目创建成功: id=%d, name=%s", project.ID, project.Name)
	return project, nil
}

// List 列出全部项目
func (s *ProjectService) List() ([]model.Project, error) {
	return s.projectRepo.List()
}

// Get 获取项目详情（含关联文件）
func (s *ProjectService) Get(id uint) (*model.Project, error) {
	project, err := s.projectRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Delete 删除项目
func (s *ProjectService) Delete(id uint) error {
	if _, err := s.projectRepo.GetBasic(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return s.projectRepo.Delete(id)
}

// SaveInterview 保存访谈产出的项目画像。画像字段整体覆盖，
// 自由文本字段（目标、干系人）不参与推荐打分，仅存档。
func (s *ProjectService) SaveInterview(id uint, in InterviewInput) (*model.Project, error) {
	project, err := s.projectRepo.GetBasic(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	project.DurationBucket = in.DurationBucket
	project.TeamSizeBucket = in.TeamSizeBucket
	project.MaturityBucket = in.MaturityBucket
	project.PreferredStyle = in.PreferredStyle
	project.RiskTolerance = in.RiskTolerance
	project.Goals = in.Goals
	project.Stakeholders = in.Stakeholders

	if err := s.projectRepo.Save(project); err != nil {
		return nil, fmt.Errorf("保存访谈画像失败: %w", err)
	}

	klog.V(6).Infof("访谈画像已保存: projectID=%d", id)
	return project, nil
}
