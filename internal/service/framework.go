package service

import (
	"context"
	"errors"

	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/repository"
	"github.com/bacompass/backend/internal/service/recommend"
)

var ErrNoFrameworksAvailable = errors.New("no frameworks available")

// FrameworkService 框架目录与推荐服务
type FrameworkService struct {
	catalogRepo  repository.CatalogRepository
	hintProvider recommend.HintProvider
}

func NewFrameworkService(catalogRepo repository.CatalogRepository, hintProvider recommend.HintProvider) *FrameworkService {
	return &FrameworkService{
		catalogRepo:  catalogRepo,
		hintProvider: hintProvider,
	}
}

// List 列出全部框架（含阶段与任务模板）
func (s *FrameworkService) List() ([]model.Framework, error) {
	return s.catalogRepo.ListFrameworks()
}

// Recommend 按项目画像推荐框架。先尽力获取 AI 提示（失败降级为 nil），
// 再走纯算法打分；候选集为空时返回 ErrNoFrameworksAvailable。
func (s *FrameworkService) Recommend(ctx context.Context, profile recommend.Profile) ([]recommend.Scored, error) {
	frameworks, err := s.catalogRepo.ListFrameworks()
	if err != nil {
		return nil, err
	}
	if len(frameworks) == 0 {
		return nil, ErrNoFrameworksAvailable
	}

	var hint *recommend.Hint
	if s.hintProvider != nil {
		hint = s.hintProvider.Hint(ctx, profile, frameworks)
	}

	results := recommend.Recommend(profile, frameworks, hint)
	klog.V(6).Infof("框架推荐完成: candidates=%d, results=%d, hint=%v", len(frameworks), len(results), hint != nil)
	return results, nil
}
