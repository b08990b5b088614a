package roadmap

import (
	"strings"

	"github.com/bacompass/backend/internal/model"
)

// 阶段序号 → 工件生命周期阶段的分段表。
// 新建工件的阶段由它首次出现的阶段序号决定。
var stageBands = []struct {
	maxOrder int
	stage    string
}{
	{1, model.StageInitiation},
	{2, model.StageAnalysis},
	{3, model.StageDesign},
}

// stageForPhaseOrder 按阶段序号查分段表，超出所有分段归入监控评估
func stageForPhaseOrder(order int) string {
	for _, band := range stageBands {
		if order <= band.maxOrder {
			return band.stage
		}
	}
	return model.StageMonitoring
}

// 目录条目格式字符串 → 格式标签的子串判定表，先命中先生效
var formatPatterns = []struct {
	substrings []string
	format     string
}{
	{[]string{"doc"}, model.FormatDOCX},
	{[]string{"xls", "csv"}, model.FormatXLSX},
	{[]string{"pdf"}, model.FormatPDF},
	{[]string{"bpmn"}, model.FormatBPMN},
	{[]string{"png", "jpg", "image"}, model.FormatPNG},
}

// formatFromCatalog 从目录条目声明的格式字符串推导格式标签
func formatFromCatalog(declared string) string {
	declaredLower := strings.ToLower(declared)
	for _, p := range formatPatterns {
		for _, sub := range p.substrings {
			if strings.Contains(declaredLower, sub) {
				return p.format
			}
		}
	}
	return model.FormatOther
}
