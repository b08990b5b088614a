package classifier

import (
	"reflect"
	"testing"

	"github.com/bacompass/backend/internal/model"
)

func testCatalog() []model.ArtifactCatalogEntry {
	return []model.ArtifactCatalogEntry{
		{
			Key:      "BRD",
			Name:     "Business Requirements Document",
			NameRu:   "Бизнес-требования",
			Format:   model.FormatDOCX,
			Keywords: "business,requirements",
		},
		{
			Key:      "SRS",
			Name:     "Software Requirements Specification",
			NameRu:   "Спецификация требований",
			Format:   model.FormatDOCX,
			Keywords: "software,requirements,specification",
		},
		{
			Key:      "PROCESS-MAP",
			Name:     "Process Map",
			NameRu:   "Карта процессов",
			Format:   model.FormatBPMN,
			Keywords: "process,bpmn,workflow",
		},
	}
}

func TestClassifyBRDScenario(t *testing.T) {
	// 扩展名命中 0.3 + 标识子串命中 0.5 = 0.8
	result := Classify(testCatalog(), "BRD_v2.docx", "")

	if result.ArtifactKey != "BRD" {
		t.Fatalf("expected BRD, got %q", result.ArtifactKey)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", result.Confidence)
	}
	if result.Confidence < 0.5 {
		t.Fatalf("expected confidence above auto-create threshold")
	}
}

func TestClassifyKeyInNameScoresAtLeastHalf(t *testing.T) {
	for _, name := range []string{"brd.txt", "project_SRS_final.bin", "old-process-map-2023"} {
		result := Classify(testCatalog(), name, "")
		if result.ArtifactKey == "" {
			t.Fatalf("expected a match for %q", name)
		}
		if result.Confidence < 0.5 {
			t.Fatalf("file %q: key substring must score >= 0.5, got %v", name, result.Confidence)
		}
	}
}

func TestClassifyEmptyCatalog(t *testing.T) {
	result := Classify(nil, "BRD_v2.docx", "business requirements")

	if result.ArtifactKey != "" {
		t.Fatalf("expected empty artifact key, got %q", result.ArtifactKey)
	}
	if result.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", result.Confidence)
	}
	if len(result.PossibleMatches) != 0 {
		t.Fatalf("expected no matches, got %d", len(result.PossibleMatches))
	}
}

func TestClassifyNoPositiveScore(t *testing.T) {
	result := Classify(testCatalog(), "holiday_photos.zip", "")

	if result.ArtifactKey != "" || len(result.PossibleMatches) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestClassifyContentSignals(t *testing.T) {
	byName := Classify(testCatalog(), "notes.txt", "")
	if byName.ArtifactKey != "" {
		t.Fatalf("expected no match by name alone, got %q", byName.ArtifactKey)
	}

	// 内容中出现标识 0.3 + 两个关键词各 0.1 = 0.5
	withContent := Classify(testCatalog(), "notes.txt", "Draft BRD: business requirements for billing")
	if withContent.ArtifactKey != "BRD" {
		t.Fatalf("expected BRD from content, got %q", withContent.ArtifactKey)
	}
	if withContent.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", withContent.Confidence)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	catalog := testCatalog()
	first := Classify(catalog, "requirements_draft.docx", "software specification")
	for i := 0; i < 5; i++ {
		again := Classify(catalog, "requirements_draft.docx", "software specification")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("classification not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestClassifyTieBreakByKey(t *testing.T) {
	catalog := []model.ArtifactCatalogEntry{
		{Key: "ZZZ-PLAN", Format: model.FormatDOCX},
		{Key: "AAA-PLAN", Format: model.FormatDOCX},
	}
	// 两个条目都只有格式分 0.3，按标识升序取 AAA-PLAN
	result := Classify(catalog, "meeting.docx", "")
	if result.ArtifactKey != "AAA-PLAN" {
		t.Fatalf("expected tie broken by key, got %q", result.ArtifactKey)
	}
}

func TestClassifyLimitsPossibleMatches(t *testing.T) {
	var catalog []model.ArtifactCatalogEntry
	for _, key := range []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7"} {
		catalog = append(catalog, model.ArtifactCatalogEntry{Key: key, Format: model.FormatPDF})
	}

	result := Classify(catalog, "report.pdf", "")
	if len(result.PossibleMatches) != 5 {
		t.Fatalf("expected at most 5 matches, got %d", len(result.PossibleMatches))
	}
}

func TestFormatFromExtension(t *testing.T) {
	cases := map[string]string{
		".docx": model.FormatDOCX,
		"doc":   model.FormatDOCX,
		".xlsx": model.FormatXLSX,
		".csv":  model.FormatXLSX,
		".pdf":  model.FormatPDF,
		".bpmn": model.FormatBPMN,
		".PNG":  model.FormatPNG,
		".jpeg": model.FormatPNG,
		".zip":  model.FormatOther,
		"":      model.FormatOther,
	}
	for ext, want := range cases {
		if got := FormatFromExtension(ext); got != want {
			t.Fatalf("FormatFromExtension(%q) = %q, want %q", ext, got, want)
		}
	}
}
