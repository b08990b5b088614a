package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/repository"
)

// stubExtractor 可控的文本抽取桩
type stubExtractor struct {
	configured bool
	text       string
	err        error
}

func (s *stubExtractor) Configured() bool { return s.configured }

func (s *stubExtractor) Extract(_ context.Context, _ string, _ []byte) (string, error) {
	return s.text, s.err
}

func newFileService(t *testing.T, db *gorm.DB, extractor TextExtractor) (*FileService, string) {
	t.Helper()
	uploadDir := t.TempDir()
	svc := NewFileService(
		uploadDir,
		0.5,
		repository.NewFileRepository(db),
		repository.NewArtifactRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewProjectRepository(db),
		extractor,
	)
	return svc, uploadDir
}

func seedUploadProject(t *testing.T, db *gorm.DB) *model.Project {
	t.Helper()
	if err := InitCatalog(db); err != nil {
		t.Fatalf("InitCatalog error: %v", err)
	}
	project := &model.Project{Name: "CRM rollout"}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project error: %v", err)
	}
	return project
}

func TestUploadAutoCreatesArtifact(t *testing.T) {
	db := setupServiceDB(t)
	project := seedUploadProject(t, db)
	svc, uploadDir := newFileService(t, db, &stubExtractor{})

	// BRD_v2.docx：标识命中 0.5 + 格式 0.3 + 关键词 0.2，远超阈值
	result, err := svc.Upload(context.Background(), project.ID, "BRD_v2.docx", "application/msword", []byte("dummy"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if result.Classification.ArtifactKey != "BRD" {
		t.Fatalf("expected BRD classification, got %+v", result.Classification)
	}
	if result.File.ArtifactKey != "BRD" || result.File.Confidence != result.Classification.Confidence {
		t.Fatalf("classification not persisted on file record: %+v", result.File)
	}

	// 落盘文件名是 UUID + 原扩展名
	if filepath.Ext(result.File.StoredName) != ".docx" {
		t.Fatalf("stored name must keep extension: %s", result.File.StoredName)
	}
	if _, err := os.Stat(filepath.Join(uploadDir, result.File.StoredName)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	// 置信度达标，自动创建草稿工件并挂上文件
	if result.Artifact == nil {
		t.Fatal("expected auto-created artifact")
	}
	if result.Artifact.Status != "draft" || result.Artifact.Version != 1 {
		t.Fatalf("unexpected artifact state: %+v", result.Artifact)
	}
	if result.Artifact.FileID == nil || *result.Artifact.FileID != result.File.ID {
		t.Fatalf("artifact must reference uploaded file: %+v", result.Artifact)
	}
	if result.Artifact.Stage != model.StageInitiation || result.Artifact.Format != model.FormatDOCX {
		t.Fatalf("artifact must inherit catalog stage/format: %+v", result.Artifact)
	}
}

func TestUploadReuploadBumpsVersion(t *testing.T) {
	db := setupServiceDB(t)
	project := seedUploadProject(t, db)
	svc, _ := newFileService(t, db, &stubExtractor{})

	first, err := svc.Upload(context.Background(), project.ID, "BRD_draft.docx", "", []byte("v1"))
	if err != nil {
		t.Fatalf("first Upload error: %v", err)
	}
	second, err := svc.Upload(context.Background(), project.ID, "BRD_final.docx", "", []byte("v2"))
	if err != nil {
		t.Fatalf("second Upload error: %v", err)
	}

	// 同一工件不重复创建，版本恰好 +1，文件指针换成新上传
	var count int64
	db.Model(&model.ProjectArtifact{}).Where("project_id = ? AND catalog_key = ?", project.ID, "BRD").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single BRD artifact, got %d", count)
	}
	if second.Artifact.Version != first.Artifact.Version+1 {
		t.Fatalf("expected version %d, got %d", first.Artifact.Version+1, second.Artifact.Version)
	}
	if *second.Artifact.FileID != second.File.ID {
		t.Fatalf("artifact must point at the latest file: %+v", second.Artifact)
	}
}

func TestUploadBelowThresholdSkipsArtifact(t *testing.T) {
	db := setupServiceDB(t)
	project := seedUploadProject(t, db)
	svc, _ := newFileService(t, db, &stubExtractor{})

	result, err := svc.Upload(context.Background(), project.ID, "meeting_notes.txt", "text/plain", []byte("notes"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if result.Artifact != nil {
		t.Fatalf("expected no artifact below threshold, got %+v", result.Artifact)
	}

	var count int64
	db.Model(&model.ProjectArtifact{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no artifacts, got %d", count)
	}
}

func TestUploadExtractorFailureDegrades(t *testing.T) {
	db := setupServiceDB(t)
	project := seedUploadProject(t, db)
	svc, _ := newFileService(t, db, &stubExtractor{configured: true, err: errors.New("extractor down")})

	// 抽取失败只丢内容信号，按文件名照常分类
	result, err := svc.Upload(context.Background(), project.ID, "BRD.docx", "", []byte("dummy"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if result.Classification.ArtifactKey != "BRD" {
		t.Fatalf("expected name-only classification, got %+v", result.Classification)
	}
}

func TestUploadContentSignalFromExtractor(t *testing.T) {
	db := setupServiceDB(t)
	project := seedUploadProject(t, db)

	// 文件名无信号，内容里出现标识与关键词：0.3 + 0.1 >= 0.4
	svc, _ := newFileService(t, db, &stubExtractor{
		configured: true,
		text:       "Реестр рисков проекта. RISK-REGISTER, вероятность и влияние.",
	})

	result, err := svc.Upload(context.Background(), project.ID, "upload.bin", "", []byte("dummy"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if result.Classification.ArtifactKey != "RISK-REGISTER" {
		t.Fatalf("expected RISK-REGISTER from content signals, got %+v", result.Classification)
	}
}

func TestUploadUnknownProject(t *testing.T) {
	db := setupServiceDB(t)
	seedUploadProject(t, db)
	svc, _ := newFileService(t, db, &stubExtractor{})

	if _, err := svc.Upload(context.Background(), 9999, "BRD.docx", "", []byte("x")); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
