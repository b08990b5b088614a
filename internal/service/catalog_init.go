package service

import (
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
)

// InitCatalog 初始化预置参考数据：工件目录与方法论框架。
// 幂等：已存在系统预置数据时跳过；全部写入跑在一个事务里。
func InitCatalog(db *gorm.DB) error {
	if err := initArtifactCatalog(db); err != nil {
		return err
	}
	return initFrameworks(db)
}

// initArtifactCatalog 初始化工件目录
func initArtifactCatalog(db *gorm.DB) error {
	// 检查是否已存在目录数据
	var count int64
	db.Model(&model.ArtifactCatalogEntry{}).Count(&count)
	if count > 0 {
		return nil
	}

	entries := []model.ArtifactCatalogEntry{
		{
			Key: "BRD", Name: "Business Requirements Document", NameRu: "Бизнес-требования (BRD)",
			Area: "requirements", Stage: model.StageInitiation, Format: model.FormatDOCX,
			Description: "High-level business needs, goals and success criteria.",
			Keywords:    "brd,business requirements,бизнес-требования,требования",
			SortOrder:   1,
		},
		{
			Key: "STAKEHOLDER-MATRIX", Name: "Stakeholder Matrix", NameRu: "Матрица стейкхолдеров",
			Area: "stakeholders", Stage: model.StageInitiation, Format: model.FormatXLSX,
			Description: "Stakeholder list with influence, interest and RACI roles.",
			Keywords:    "stakeholder,raci,стейкхолдер,заинтересованные стороны",
			SortOrder:   2,
		},
		{
			Key: "VISION-SCOPE", Name: "Vision and Scope Document", NameRu: "Видение и границы проекта",
			Area: "requirements", Stage: model.StageInitiation, Format: model.FormatDOCX,
			Description: "Project vision, scope boundaries and key constraints.",
			Keywords:    "vision,scope,видение,границы",
			SortOrder:   3,
		},
		{
			Key: "PROCESS-MAP", Name: "As-Is Process Map", NameRu: "Карта процессов as-is",
			Area: "process", Stage: model.StageAnalysis, Format: model.FormatBPMN,
			Description: "Current-state business process model.",
			Keywords:    "process,bpmn,as-is,процесс,карта процессов",
			SortOrder:   4,
		},
		{
			Key: "SRS", Name: "Software Requirements Specification", NameRu: "Спецификация требований (ТЗ)",
			Area: "requirements", Stage: model.StageAnalysis, Format: model.FormatDOCX,
			Description: "Detailed functional and non-functional requirements.",
			Keywords:    "srs,specification,тз,спецификация",
			Requires:    "BRD",
			SortOrder:   5,
		},
		{
			Key: "USER-STORIES", Name: "User Story Backlog", NameRu: "Бэклог пользовательских историй",
			Area: "requirements", Stage: model.StageAnalysis, Format: model.FormatXLSX,
			Description: "Prioritized backlog of user stories with acceptance criteria.",
			Keywords:    "user story,backlog,stories,бэклог,история",
			SortOrder:   6,
		},
		{
			Key: "USE-CASE", Name: "Use Case Specification", NameRu: "Спецификация сценариев использования",
			Area: "requirements", Stage: model.StageAnalysis, Format: model.FormatDOCX,
			Description: "Actor-goal use cases with main and alternative flows.",
			Keywords:    "use case,сценарий,прецедент",
			SortOrder:   7,
		},
		{
			Key: "GAP-ANALYSIS", Name: "Gap Analysis Report", NameRu: "Отчет о gap-анализе",
			Area: "analysis", Stage: model.StageAnalysis, Format: model.FormatDOCX,
			Description: "Differences between current and target state with remediation options.",
			Keywords:    "gap,analysis,разрыв,gap-анализ",
			Requires:    "PROCESS-MAP",
			SortOrder:   8,
		},
		{
			Key: "TO-BE-MODEL", Name: "To-Be Process Model", NameRu: "Модель процессов to-be",
			Area: "process", Stage: model.StageDesign, Format: model.FormatBPMN,
			Description: "Target-state business process model.",
			Keywords:    "to-be,target process,целевой процесс",
			Requires:    "PROCESS-MAP,GAP-ANALYSIS",
			SortOrder:   9,
		},
		{
			Key: "RISK-REGISTER", Name: "Risk Register", NameRu: "Реестр рисков",
			Area: "planning", Stage: model.StageDesign, Format: model.FormatXLSX,
			Description: "Identified risks with probability, impact and mitigation.",
			Keywords:    "risk,register,риск,реестр рисков",
			SortOrder:   10,
		},
		{
			Key: "KPI-SHEET", Name: "KPI Tracking Sheet", NameRu: "Таблица KPI",
			Area: "monitoring", Stage: model.StageMonitoring, Format: model.FormatXLSX,
			Description: "Key performance indicators with targets and actuals.",
			Keywords:    "kpi,metric,метрика,показатель",
			SortOrder:   11,
		},
		{
			Key: "LESSONS-LEARNED", Name: "Lessons Learned Report", NameRu: "Отчет об извлеченных уроках",
			Area: "monitoring", Stage: model.StageMonitoring, Format: model.FormatDOCX,
			Description: "Retrospective findings and recommendations for future projects.",
			Keywords:    "lessons,retrospective,ретроспектива,уроки",
			SortOrder:   12,
		},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	klog.V(6).Infof("工件目录初始化完成: %d 条", len(entries))
	return nil
}

// initFrameworks 初始化方法论框架（含阶段与任务模板）
func initFrameworks(db *gorm.DB) error {
	// 检查是否已存在默认框架
	var count int64
	db.Model(&model.Framework{}).Where(&model.Framework{Key: "hybrid-ba"}).Count(&count)
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// 1. Scrum BA：短周期、小团队、高风险容忍
		scrumBA := &model.Framework{
			Key:               "scrum-ba",
			Name:              "Scrum BA Track",
			NameRu:            "Scrum для бизнес-аналитика",
			Description:       "Iterative requirements work inside Scrum: backlog refinement, sprint-scoped analysis, continuous stakeholder feedback.",
			Tags:              "agile,scrum",
			IsSystem:          true,
			SortOrder:         1,
			DurationMonthsMax: 6,
			TeamSizeMax:       7,
			RiskTolerances:    "Высокий,Средний,high,medium",
			Phases: []model.FrameworkPhase{
				{
					Name: "Discovery", NameRu: "Исследование", SortOrder: 1, DurationWeeks: 2,
					Tasks: []model.FrameworkTask{
						{
							Name: "Capture business goals", NameRu: "Зафиксировать бизнес-цели",
							IsRequired: true, EstimatedHours: 16,
							AcceptanceCriteria: "Goals and success criteria agreed with the sponsor.",
							ArtifactKeys:       "BRD", SortOrder: 1,
						},
						{
							Name: "Map stakeholders", NameRu: "Составить карту стейкхолдеров",
							IsRequired: true, EstimatedHours: 8,
							ArtifactKeys: "STAKEHOLDER-MATRIX", SortOrder: 2,
						},
					},
				},
				{
					Name: "Backlog Build-Up", NameRu: "Формирование бэклога", SortOrder: 2, DurationWeeks: 3,
					Tasks: []model.FrameworkTask{
						{
							Name: "Write user stories", NameRu: "Написать пользовательские истории",
							IsRequired: true, EstimatedHours: 24,
							AcceptanceCriteria: "Stories sized and prioritized, acceptance criteria attached.",
							ArtifactKeys:       "USER-STORIES", SortOrder: 1,
						},
						{
							Name: "Model current processes", NameRu: "Смоделировать текущие процессы",
							IsRequired: false, EstimatedHours: 16,
							ArtifactKeys: "PROCESS-MAP", SortOrder: 2,
						},
					},
				},
				{
					Name: "Sprint Analysis", NameRu: "Анализ в спринтах", SortOrder: 3, DurationWeeks: 8,
					Tasks: []model.FrameworkTask{
						{
							Name: "Refine backlog each sprint", NameRu: "Груминг бэклога каждый спринт",
							IsRequired: true, EstimatedHours: 40,
							DependsOn: "Write user stories", SortOrder: 1,
						},
						{
							Name: "Maintain risk register", NameRu: "Вести реестр рисков",
							IsRequired: false, EstimatedHours: 8,
							ArtifactKeys: "RISK-REGISTER", SortOrder: 2,
						},
					},
				},
				{
					Name: "Review and Retro", NameRu: "Обзор и ретроспектива", SortOrder: 4, DurationWeeks: 1,
					Tasks: []model.FrameworkTask{
						{
							Name: "Track delivery KPIs", NameRu: "Отслеживать KPI поставки",
							IsRequired: true, EstimatedHours: 8,
							ArtifactKeys: "KPI-SHEET", SortOrder: 1,
						},
						{
							Name: "Run retrospective", NameRu: "Провести ретроспективу",
							IsRequired: true, EstimatedHours: 4,
							ArtifactKeys: "LESSONS-LEARNED", SortOrder: 2,
						},
					},
				},
			},
		}
		if err := tx.Create(scrumBA).Error; err != nil {
			return err
		}

		// 2. Waterfall BA：长周期、完整文档、低风险容忍，要求一定流程成熟度
		waterfallBA := &model.Framework{
			Key:            "waterfall-ba",
			Name:           "Waterfall BA Track",
			NameRu:         "Каскадная модель для бизнес-аналитика",
			Description:    "Sequential, documentation-heavy analysis: full requirements sign-off before design starts.",
			Tags:           "waterfall",
			IsSystem:       true,
			SortOrder:      2,
			MinMaturity:    "Частично",
			RiskTolerances: "Низкий,low",
			Phases: []model.FrameworkPhase{
				{
					Name: "Initiation", NameRu: "Инициация", SortOrder: 1, DurationWeeks: 3,
					Tasks: []model.FrameworkTask{
						{
							Name: "Define vision and scope", NameRu: "Определить видение и границы",
							IsRequired: true, EstimatedHours: 24,
							ArtifactKeys: "VISION-SCOPE,BRD", SortOrder: 1,
						},
						{
							Name: "Identify stakeholders", NameRu: "Выявить стейкхолдеров",
							IsRequired: true, EstimatedHours: 12,
							ArtifactKeys: "STAKEHOLDER-MATRIX", SortOrder: 2,
						},
					},
				},
				{
					Name: "Requirements Analysis", NameRu: "Анализ требований", SortOrder: 2, DurationWeeks: 6,
					Tasks: []model.FrameworkTask{
						{
							Name: "Specify requirements", NameRu: "Специфицировать требования",
							IsRequired: true, EstimatedHours: 60,
							AcceptanceCriteria: "SRS reviewed and signed off by all key stakeholders.",
							ArtifactKeys:       "SRS,USE-CASE", SortOrder: 1,
						},
						{
							Name: "Document as-is processes", NameRu: "Задокументировать процессы as-is",
							IsRequired: true, EstimatedHours: 32,
							ArtifactKeys: "PROCESS-MAP", SortOrder: 2,
						},
						{
							Name: "Perform gap analysis", NameRu: "Провести gap-анализ",
							IsRequired: true, EstimatedHours: 24,
							ArtifactKeys: "GAP-ANALYSIS", DependsOn: "Document as-is processes", SortOrder: 3,
						},
					},
				},
				{
					Name: "Solution Design", NameRu: "Проектирование решения", SortOrder: 3, DurationWeeks: 6,
					Tasks: []model.FrameworkTask{
						{
							Name: "Model to-be processes", NameRu: "Смоделировать процессы to-be",
							IsRequired: true, EstimatedHours: 40,
							ArtifactKeys: "TO-BE-MODEL", SortOrder: 1,
						},
						{
							Name: "Build risk register", NameRu: "Составить реестр рисков",
							IsRequired: true, EstimatedHours: 16,
							ArtifactKeys: "RISK-REGISTER", SortOrder: 2,
						},
					},
				},
				{
					Name: "Monitoring", NameRu: "Мониторинг", SortOrder: 4, DurationWeeks: 4,
					Tasks: []model.FrameworkTask{
						{
							Name: "Track KPIs against baseline", NameRu: "Отслеживать KPI относительно базовой линии",
							IsRequired: true, EstimatedHours: 16,
							ArtifactKeys: "KPI-SHEET", SortOrder: 1,
						},
						{
							Name: "Compile lessons learned", NameRu: "Собрать извлеченные уроки",
							IsRequired: false, EstimatedHours: 8,
							ArtifactKeys: "LESSONS-LEARNED", SortOrder: 2,
						},
					},
				},
			},
		}
		if err := tx.Create(waterfallBA).Error; err != nil {
			return err
		}

		// 3. Lean BA：极短周期、最小团队，只做价值验证必需的产物
		leanBA := &model.Framework{
			Key:               "lean-ba",
			Name:              "Lean BA Track",
			NameRu:            "Lean для бизнес-аналитика",
			Description:       "Minimal-artifact analysis for short validation projects: hypothesis, measure, learn.",
			Tags:              "lean,agile",
			IsSystem:          true,
			SortOrder:         3,
			DurationMonthsMax: 3,
			TeamSizeMax:       3,
			RiskTolerances:    "Высокий,high",
			Phases: []model.FrameworkPhase{
				{
					Name: "Problem Framing", NameRu: "Постановка проблемы", SortOrder: 1, DurationWeeks: 1,
					Tasks: []model.FrameworkTask{
						{
							Name: "State the problem and hypothesis", NameRu: "Сформулировать проблему и гипотезу",
							IsRequired: true, EstimatedHours: 8,
							ArtifactKeys: "VISION-SCOPE", SortOrder: 1,
						},
					},
				},
				{
					Name: "Rapid Analysis", NameRu: "Быстрый анализ", SortOrder: 2, DurationWeeks: 2,
					Tasks: []model.FrameworkTask{
						{
							Name: "Sketch key user stories", NameRu: "Набросать ключевые истории",
							IsRequired: true, EstimatedHours: 12,
							ArtifactKeys: "USER-STORIES", SortOrder: 1,
						},
					},
				},
				{
					Name: "Measure", NameRu: "Измерение", SortOrder: 3, DurationWeeks: 2,
					Tasks: []model.FrameworkTask{
						{
							Name: "Define and track metrics", NameRu: "Определить и отслеживать метрики",
							IsRequired: true, EstimatedHours: 8,
							ArtifactKeys: "KPI-SHEET", SortOrder: 1,
						},
					},
				},
			},
		}
		if err := tx.Create(leanBA).Error; err != nil {
			return err
		}

		// 4. Hybrid BA：默认框架，无硬性适配条件，兜底推荐
		hybridBA := &model.Framework{
			Key:         "hybrid-ba",
			Name:        "Hybrid BA Track",
			NameRu:      "Гибридный подход для бизнес-аналитика",
			Description: "Waterfall-style upfront analysis with iterative delivery: a safe middle ground when the profile fits nothing cleanly.",
			Tags:        "hybrid,agile,waterfall",
			IsDefault:   true,
			IsSystem:    true,
			SortOrder:   4,
			Phases: []model.FrameworkPhase{
				{
					Name: "Discovery", NameRu: "Исследование", SortOrder: 1, DurationWeeks: 2,
					Tasks: []model.FrameworkTask{
						{
							Name: "Capture business requirements", NameRu: "Зафиксировать бизнес-требования",
							IsRequired: true, EstimatedHours: 20,
							ArtifactKeys: "BRD,STAKEHOLDER-MATRIX", SortOrder: 1,
						},
					},
				},
				{
					Name: "Analysis", NameRu: "Анализ", SortOrder: 2, DurationWeeks: 4,
					Tasks: []model.FrameworkTask{
						{
							Name: "Detail requirements", NameRu: "Детализировать требования",
							IsRequired: true, EstimatedHours: 40,
							ArtifactKeys: "SRS,USER-STORIES", SortOrder: 1,
						},
						{
							Name: "Model processes", NameRu: "Смоделировать процессы",
							IsRequired: false, EstimatedHours: 24,
							ArtifactKeys: "PROCESS-MAP", SortOrder: 2,
						},
					},
				},
				{
					Name: "Planning", NameRu: "Планирование", SortOrder: 3, DurationWeeks: 2,
					Tasks: []model.FrameworkTask{
						{
							Name: "Plan delivery and risks", NameRu: "Спланировать поставку и риски",
							IsRequired: true, EstimatedHours: 16,
							ArtifactKeys: "RISK-REGISTER", SortOrder: 1,
						},
					},
				},
				{
					Name: "Evaluation", NameRu: "Оценка", SortOrder: 4, DurationWeeks: 2,
					Tasks: []model.FrameworkTask{
						{
							Name: "Evaluate outcomes", NameRu: "Оценить результаты",
							IsRequired: true, EstimatedHours: 12,
							ArtifactKeys: "KPI-SHEET,LESSONS-LEARNED", SortOrder: 1,
						},
					},
				},
			},
		}
		return tx.Create(hybridBA).Error
	})
}
