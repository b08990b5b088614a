package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/repository"
	"github.com/bacompass/backend/internal/service/classifier"
	"github.com/bacompass/backend/internal/service/statemachine"
)

var ErrEmptyFile = errors.New("uploaded file is empty")

// TextExtractor 文档文本抽取接口（internal/pkg/extractor.Client 实现）
type TextExtractor interface {
	Configured() bool
	Extract(ctx context.Context, fileName string, data []byte) (string, error)
}

// FileService 文件上传与分类服务。
// 上传流水线：落盘 -> 尽力抽取文本 -> 按目录分类 -> 记录分类结果 ->
// 置信度达标时自动创建/更新项目工件。
type FileService struct {
	uploadDir     string
	autoThreshold float64
	fileRepo      repository.FileRepository
	artifactRepo  repository.ArtifactRepository
	catalogRepo   repository.CatalogRepository
	projectRepo   repository.ProjectRepository
	extractor     TextExtractor
}

func NewFileService(
	uploadDir string,
	autoThreshold float64,
	fileRepo repository.FileRepository,
	artifactRepo repository.ArtifactRepository,
	catalogRepo repository.CatalogRepository,
	projectRepo repository.ProjectRepository,
	extractor TextExtractor,
) *FileService {
	return &FileService{
		uploadDir:     uploadDir,
		autoThreshold: autoThreshold,
		fileRepo:      fileRepo,
		artifactRepo:  artifactRepo,
		catalogRepo:   catalogRepo,
		projectRepo:   projectRepo,
		extractor:     extractor,
	}
}

// UploadResult 上传流水线的完整结果
type UploadResult struct {
	File           *model.ProjectFile     `json:"file"`
	Classification classifier.Result      `json:"classification"`
	Artifact       *model.ProjectArtifact `json:"artifact,omitempty"` // 置信度达标时创建/更新的工件
}

// Upload 处理一次文件上传
func (s *FileService) Upload(ctx context.Context, projectID uint, originalName, contentType string, data []byte) (*UploadResult, error) {
	if _, err := s.projectRepo.GetBasic(projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	// 落盘文件名用 UUID，避免重名覆盖和路径注入
	storedName := uuid.New().String() + filepath.Ext(originalName)
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, storedName), data, 0644); err != nil {
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	// 文本抽取是外部服务，失败只影响分类信号，不影响上传
	content := ""
	if s.extractor != nil && s.extractor.Configured() {
		text, err := s.extractor.Extract(ctx, originalName, data)
		if err != nil {
			klog.V(6).Infof("文本抽取失败，仅按文件名分类: file=%s, error=%v", originalName, err)
		} else {
			content = text
		}
	}

	catalog, err := s.catalogRepo.ListArtifactCatalog()
	if err != nil {
		return nil, fmt.Errorf("读取工件目录失败: %w", err)
	}
	result := classifier.Classify(catalog, originalName, content)

	file := &model.ProjectFile{
		ProjectID:    projectID,
		OriginalName: originalName,
		StoredName:   storedName,
		Size:         int64(len(data)),
		ContentType:  contentType,
		ArtifactKey:  result.ArtifactKey,
		Confidence:   result.Confidence,
	}
	if err := s.fileRepo.Create(file); err != nil {
		return nil, fmt.Errorf("保存文件记录失败: %w", err)
	}

	upload := &UploadResult{File: file, Classification: result}

	if result.ArtifactKey != "" && result.Confidence >= s.autoThreshold {
		artifact, err := s.syncArtifact(projectID, result.ArtifactKey, file.ID)
		if err != nil {
			return nil, err
		}
		upload.Artifact = artifact
	}

	klog.V(6).Infof("文件上传完成: projectID=%d, file=%s, artifactKey=%s, confidence=%.2f",
		projectID, originalName, result.ArtifactKey, result.Confidence)
	return upload, nil
}

// syncArtifact 置信度达标时把上传文件挂到项目工件上：
// 工件已存在则更新（版本 +1，未开始的推进到草稿），不存在则按目录条目创建。
func (s *FileService) syncArtifact(projectID uint, catalogKey string, fileID uint) (*model.ProjectArtifact, error) {
	artifact, err := s.artifactRepo.FindByProjectAndKey(projectID, catalogKey)
	if err == nil {
		artifact.FileID = &fileID
		if artifact.Status == string(statemachine.ArtifactStatusNotStarted) {
			artifact.Status = string(statemachine.ArtifactStatusDraft)
		}
		if err := s.artifactRepo.Update(artifact); err != nil {
			return nil, fmt.Errorf("更新项目工件失败: key=%s: %w", catalogKey, err)
		}
		return artifact, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	entry, err := s.catalogRepo.GetCatalogEntry(catalogKey)
	if err != nil {
		// 分类结果来自目录本身，条目理应存在；查不到按目录缺失跳过
		if errors.Is(err, repository.ErrNotFound) {
			klog.V(6).Infof("工件目录缺少条目，跳过自动创建: key=%s", catalogKey)
			return nil, nil
		}
		return nil, err
	}

	artifact = &model.ProjectArtifact{
		ProjectID:  projectID,
		CatalogKey: entry.Key,
		Name:       entry.Name,
		NameRu:     entry.NameRu,
		Status:     string(statemachine.ArtifactStatusDraft),
		Stage:      entry.Stage,
		Format:     entry.Format,
		FileID:     &fileID,
	}
	if err := s.artifactRepo.Create(artifact); err != nil {
		return nil, fmt.Errorf("创建项目工件失败: key=%s: %w", catalogKey, err)
	}
	return artifact, nil
}

// ListByProject 列出项目的上传文件
func (s *FileService) ListByProject(projectID uint) ([]model.ProjectFile, error) {
	return s.fileRepo.GetByProject(projectID)
}
