package roadmap

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/pkg/database"
	"github.com/bacompass/backend/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func newGenerator(db *gorm.DB) *Generator {
	return NewGenerator(
		db,
		repository.NewProjectRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewRoadmapRepository(db),
	)
}

func seedProject(t *testing.T, db *gorm.DB) *model.Project {
	t.Helper()
	project := &model.Project{Name: "Billing revamp"}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project error: %v", err)
	}
	return project
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	entries := []model.ArtifactCatalogEntry{
		{Key: "BRD", Name: "Business Requirements Document", Format: "DOCX"},
		{Key: "PROCESS-MAP", Name: "Process Map", Format: "BPMN"},
		{Key: "KPI-SHEET", Name: "KPI Sheet", Format: "XLSX"},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("create catalog entry error: %v", err)
		}
	}
}

func seedFramework(t *testing.T, db *gorm.DB) *model.Framework {
	t.Helper()
	framework := &model.Framework{
		Key:  "scrum-ba",
		Name: "Scrum BA Track",
		Tags: "agile,scrum",
		Phases: []model.FrameworkPhase{
			{
				Name:      "Discovery",
				SortOrder: 1,
				Tasks: []model.FrameworkTask{
					{Name: "Collect requirements", IsRequired: true, ArtifactKeys: "BRD", SortOrder: 1},
					{Name: "Optional workshop", IsRequired: false, SortOrder: 2},
				},
			},
			{
				Name:      "Analysis",
				SortOrder: 2,
				Tasks: []model.FrameworkTask{
					{Name: "Model as-is process", IsRequired: true, ArtifactKeys: "PROCESS-MAP", SortOrder: 1},
				},
			},
			{
				Name:      "Design",
				SortOrder: 3,
				Tasks: []model.FrameworkTask{
					{Name: "Refine requirements", IsRequired: true, ArtifactKeys: "BRD", SortOrder: 1},
				},
			},
			{
				Name:      "Monitoring",
				SortOrder: 4,
				Tasks: []model.FrameworkTask{
					{Name: "Track KPIs", IsRequired: true, ArtifactKeys: "KPI-SHEET,UNKNOWN-KEY", SortOrder: 1},
				},
			},
		},
	}
	if err := db.Create(framework).Error; err != nil {
		t.Fatalf("create framework error: %v", err)
	}
	return framework
}

func TestGenerateFullRoadmap(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	project := seedProject(t, db)
	framework := seedFramework(t, db)

	result, err := newGenerator(db).Generate(project.ID, framework.ID)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !result.IsActive {
		t.Fatal("expected roadmap to be active")
	}
	if len(result.Phases) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(result.Phases))
	}

	// 必选任务逐一实例化，非必选任务不生成
	totalTasks := 0
	for _, phase := range result.Phases {
		if phase.Status != "not-started" || phase.Progress != 0 {
			t.Fatalf("unexpected phase init state: %+v", phase)
		}
		totalTasks += len(phase.Tasks)
		for _, task := range phase.Tasks {
			if task.Status != "todo" || task.Priority != "medium" {
				t.Fatalf("unexpected task init state: %+v", task)
			}
		}
	}
	if totalTasks != 4 {
		t.Fatalf("expected 4 required tasks, got %d", totalTasks)
	}

	// 阶段序号分段决定新建工件的生命周期阶段
	var brd model.ProjectArtifact
	if err := db.Where("project_id = ? AND catalog_key = ?", project.ID, "BRD").First(&brd).Error; err != nil {
		t.Fatalf("load BRD artifact error: %v", err)
	}
	if brd.Stage != model.StageInitiation {
		t.Fatalf("expected BRD stage %s, got %s", model.StageInitiation, brd.Stage)
	}
	if brd.Format != model.FormatDOCX || brd.Version != 1 {
		t.Fatalf("unexpected BRD state: %+v", brd)
	}

	var processMap model.ProjectArtifact
	if err := db.Where("project_id = ? AND catalog_key = ?", project.ID, "PROCESS-MAP").First(&processMap).Error; err != nil {
		t.Fatalf("load PROCESS-MAP artifact error: %v", err)
	}
	if processMap.Stage != model.StageAnalysis {
		t.Fatalf("expected stage %s, got %s", model.StageAnalysis, processMap.Stage)
	}

	var kpi model.ProjectArtifact
	if err := db.Where("project_id = ? AND catalog_key = ?", project.ID, "KPI-SHEET").First(&kpi).Error; err != nil {
		t.Fatalf("load KPI-SHEET artifact error: %v", err)
	}
	if kpi.Stage != model.StageMonitoring {
		t.Fatalf("expected stage %s, got %s", model.StageMonitoring, kpi.Stage)
	}

	// BRD 在第三阶段被复用，不再新建
	var artifactCount int64
	db.Model(&model.ProjectArtifact{}).Where("project_id = ?", project.ID).Count(&artifactCount)
	if artifactCount != 3 {
		t.Fatalf("expected 3 artifacts, got %d", artifactCount)
	}

	// UNKNOWN-KEY 目录缺失，只跳过该关联
	var linkCount int64
	db.Model(&model.TaskArtifactLink{}).Count(&linkCount)
	if linkCount != 4 {
		t.Fatalf("expected 4 links (BRD x2, PROCESS-MAP, KPI-SHEET), got %d", linkCount)
	}
}

func TestGenerateReusesExistingArtifact(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	project := seedProject(t, db)
	framework := seedFramework(t, db)

	existing := &model.ProjectArtifact{
		ProjectID:  project.ID,
		CatalogKey: "BRD",
		Name:       "Business Requirements Document",
		Status:     "draft",
		Stage:      model.StageInitiation,
		Format:     model.FormatDOCX,
		Version:    4,
	}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("create existing artifact error: %v", err)
	}

	if _, err := newGenerator(db).Generate(project.ID, framework.ID); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	var artifacts []model.ProjectArtifact
	db.Where("project_id = ? AND catalog_key = ?", project.ID, "BRD").Find(&artifacts)
	if len(artifacts) != 1 {
		t.Fatalf("expected existing artifact to be reused, got %d rows", len(artifacts))
	}
	if artifacts[0].Version != 4 || artifacts[0].Status != "draft" {
		t.Fatalf("existing artifact must not be mutated: %+v", artifacts[0])
	}

	var link model.TaskArtifactLink
	if err := db.Where("artifact_id = ?", existing.ID).First(&link).Error; err != nil {
		t.Fatalf("expected link to existing artifact: %v", err)
	}
}

func TestGenerateAtomicRollback(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	project := seedProject(t, db)
	framework := seedFramework(t, db)

	// 删掉任务表，让事务中途的任务插入必然失败，验证整体回滚
	if err := db.Migrator().DropTable(&model.ProjectTask{}); err != nil {
		t.Fatalf("drop table error: %v", err)
	}

	if _, err := newGenerator(db).Generate(project.ID, framework.ID); err == nil {
		t.Fatal("expected Generate to fail")
	}

	// 失败后不留任何半成品
	var roadmapCount, phaseCount, linkCount, artifactCount int64
	db.Model(&model.ProjectRoadmap{}).Where("project_id = ?", project.ID).Count(&roadmapCount)
	db.Model(&model.ProjectPhase{}).Count(&phaseCount)
	db.Model(&model.TaskArtifactLink{}).Count(&linkCount)
	db.Model(&model.ProjectArtifact{}).Where("project_id = ?", project.ID).Count(&artifactCount)

	if roadmapCount != 0 || phaseCount != 0 || linkCount != 0 || artifactCount != 0 {
		t.Fatalf("expected full rollback, got roadmaps=%d phases=%d links=%d artifacts=%d",
			roadmapCount, phaseCount, linkCount, artifactCount)
	}
}

func TestGenerateDeactivatesPreviousRoadmap(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	project := seedProject(t, db)
	framework := seedFramework(t, db)

	gen := newGenerator(db)
	first, err := gen.Generate(project.ID, framework.ID)
	if err != nil {
		t.Fatalf("first Generate error: %v", err)
	}
	second, err := gen.Generate(project.ID, framework.ID)
	if err != nil {
		t.Fatalf("second Generate error: %v", err)
	}

	var activeCount int64
	db.Model(&model.ProjectRoadmap{}).
		Where("project_id = ? AND is_active = ?", project.ID, true).
		Count(&activeCount)
	if activeCount != 1 {
		t.Fatalf("expected exactly one active roadmap, got %d", activeCount)
	}

	var reloaded model.ProjectRoadmap
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("load first roadmap error: %v", err)
	}
	if reloaded.IsActive {
		t.Fatal("expected first roadmap to be deactivated")
	}
	if !second.IsActive {
		t.Fatal("expected second roadmap to be active")
	}
}

func TestGenerateNotFoundErrors(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	project := seedProject(t, db)
	framework := seedFramework(t, db)

	gen := newGenerator(db)

	if _, err := gen.Generate(9999, framework.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := gen.Generate(project.ID, 9999); !errors.Is(err, ErrFrameworkNotFound) {
		t.Fatalf("expected ErrFrameworkNotFound, got %v", err)
	}

	// 校验失败不能留下任何写入
	var roadmapCount int64
	db.Model(&model.ProjectRoadmap{}).Count(&roadmapCount)
	if roadmapCount != 0 {
		t.Fatalf("expected no roadmaps, got %d", roadmapCount)
	}
}
