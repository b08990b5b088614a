// Package classifier 按文件名（可选加抽取文本）给上传文件匹配工件目录条目。
// 纯内存字符串打分，不依赖外部状态，相同输入必然得到相同输出。
package classifier

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bacompass/backend/internal/model"
)

// 各信号的固定权重，命中即累加
const (
	weightFormatMatch      = 0.3 // 扩展名对应条目声明的格式
	weightKeyInName        = 0.5 // 条目标识出现在文件名中
	weightNameInName       = 0.4 // 条目名称出现在文件名中（每个语言变体单独计）
	weightKeywordInName    = 0.2 // 每个关键词出现在文件名中
	weightKeyInContent     = 0.3 // 条目标识出现在文本内容中
	weightKeywordInContent = 0.1 // 每个关键词出现在文本内容中
)

// maxPossibleMatches 候选列表最多保留的条目数
const maxPossibleMatches = 5

// Match 单个候选条目及其得分
type Match struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// Result 分类结果：最佳匹配 + 置信度 + 候选列表
// 目录为空或没有条目得分为正时 ArtifactKey 为空、Confidence 为 0
type Result struct {
	ArtifactKey     string  `json:"artifact_key"`
	Confidence      float64 `json:"confidence"`
	PossibleMatches []Match `json:"possible_matches"`
}

// Classify 对目录中每个条目独立打分，返回得分为正的前若干候选
// content 可以为空串，表示没有抽取到文本
func Classify(catalog []model.ArtifactCatalogEntry, fileName, content string) Result {
	nameLower := strings.ToLower(fileName)
	contentLower := strings.ToLower(content)
	format := FormatFromExtension(filepath.Ext(fileName))

	matches := make([]Match, 0, len(catalog))
	for i := range catalog {
		score := scoreEntry(&catalog[i], nameLower, contentLower, format)
		if score > 0 {
			matches = append(matches, Match{Key: catalog[i].Key, Score: score})
		}
	}

	// 得分降序，同分按条目标识升序，保证结果确定
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Key < matches[j].Key
	})

	if len(matches) > maxPossibleMatches {
		matches = matches[:maxPossibleMatches]
	}

	result := Result{PossibleMatches: matches}
	if len(matches) > 0 {
		result.ArtifactKey = matches[0].Key
		result.Confidence = matches[0].Score
	}
	return result
}

// scoreEntry 对单个目录条目累加各信号得分
func scoreEntry(entry *model.ArtifactCatalogEntry, nameLower, contentLower, format string) float64 {
	score := 0.0

	if format != model.FormatOther && format == entry.Format {
		score += weightFormatMatch
	}

	keyLower := strings.ToLower(entry.Key)
	if keyLower != "" && strings.Contains(nameLower, keyLower) {
		score += weightKeyInName
	}

	for _, name := range []string{entry.Name, entry.NameRu} {
		if name != "" && strings.Contains(nameLower, strings.ToLower(name)) {
			score += weightNameInName
		}
	}

	for _, keyword := range entry.KeywordList() {
		if strings.Contains(nameLower, strings.ToLower(keyword)) {
			score += weightKeywordInName
		}
	}

	if contentLower != "" {
		if keyLower != "" && strings.Contains(contentLower, keyLower) {
			score += weightKeyInContent
		}
		for _, keyword := range entry.KeywordList() {
			if strings.Contains(contentLower, strings.ToLower(keyword)) {
				score += weightKeywordInContent
			}
		}
	}

	return score
}

// 扩展名分组，组内任一命中即归入该格式，未命中归入 OTHER
var formatExtensions = []struct {
	format     string
	extensions []string
}{
	{model.FormatDOCX, []string{".doc", ".docx", ".rtf"}},
	{model.FormatXLSX, []string{".xls", ".xlsx", ".csv"}},
	{model.FormatPDF, []string{".pdf"}},
	{model.FormatBPMN, []string{".bpmn", ".bpmn2", ".xml"}},
	{model.FormatPNG, []string{".png", ".jpg", ".jpeg", ".svg"}},
}

// FormatFromExtension 把文件扩展名映射到格式标签，第一个命中的分组生效
func FormatFromExtension(ext string) string {
	extLower := strings.ToLower(ext)
	if extLower != "" && !strings.HasPrefix(extLower, ".") {
		extLower = "." + extLower
	}
	for _, group := range formatExtensions {
		for _, e := range group.extensions {
			if extLower == e {
				return group.format
			}
		}
	}
	return model.FormatOther
}
