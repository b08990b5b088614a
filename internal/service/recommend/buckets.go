package recommend

import "strings"

// 访谈画像的枚举值来自问卷（俄文界面），打分前先映射成数值/序数。
// 同时接受英文别名，便于 API 直接调用。

// durationMonths 时长区间 → 代表月数
var durationMonths = map[string]int{
	"до 1 мес":    1,
	"менее 1 мес": 1,
	"<1mo":        1,
	"1-3 мес":     3,
	"1-3mo":       3,
	"3-6 мес":     6,
	"3-6mo":       6,
	"более 6 мес": 12,
	">6mo":        12,
}

// teamSizeHeadcount 团队规模区间 → 代表人数
var teamSizeHeadcount = map[string]int{
	"1-3":     3,
	"4-7":     7,
	">7":      15,
	"более 7": 15,
}

// maturityOrdinal 流程成熟度 → 序数（越大越成熟）
var maturityOrdinal = map[string]int{
	"ничего":            0,
	"none":              0,
	"частично":          1,
	"partial":           1,
	"ключевые процессы": 2,
	"key-processes":     2,
	"полный bpmn":       3,
	"full-bpmn":         3,
}

// styleTags 偏好风格关键词 → 框架标签，只检查这三个显式映射
var styleTags = []struct {
	keyword string
	tag     string
}{
	{"agile", "agile"},
	{"waterfall", "waterfall"},
	{"lean", "lean"},
}

const (
	defaultDurationMonths = 6 // 未填写/无法识别时按中等时长处理
	defaultTeamHeadcount  = 7
)

// DurationToMonths 把时长区间映射为代表月数
func DurationToMonths(bucket string) int {
	if months, ok := durationMonths[normalize(bucket)]; ok {
		return months
	}
	return defaultDurationMonths
}

// TeamSizeToHeadcount 把团队规模区间映射为代表人数
func TeamSizeToHeadcount(bucket string) int {
	if headcount, ok := teamSizeHeadcount[normalize(bucket)]; ok {
		return headcount
	}
	return defaultTeamHeadcount
}

// MaturityToOrdinal 把成熟度描述映射为序数，未识别按 0（无流程）处理
func MaturityToOrdinal(bucket string) int {
	if ordinal, ok := maturityOrdinal[normalize(bucket)]; ok {
		return ordinal
	}
	return 0
}

// StyleToTag 把偏好风格映射为框架标签，未映射返回空串
func StyleToTag(style string) string {
	styleLower := normalize(style)
	for _, m := range styleTags {
		if strings.Contains(styleLower, m.keyword) {
			return m.tag
		}
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
