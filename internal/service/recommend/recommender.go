// Package recommend 按项目画像给方法论框架打分并排序。
// 每个信号是一条独立的规则（命中加分/违反扣分），便于单独调权重和测试。
package recommend

import (
	"sort"

	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
)

// Profile 访谈产出的项目画像，打分输入
type Profile struct {
	DurationBucket string `json:"duration_bucket"`
	TeamSizeBucket string `json:"team_size_bucket"`
	MaturityBucket string `json:"maturity_bucket"`
	PreferredStyle string `json:"preferred_style"`
	RiskTolerance  string `json:"risk_tolerance"`
}

// Hint 外部 AI 给出的推荐提示
type Hint struct {
	FrameworkKey string `json:"recommended_framework"`
	Rationale    string `json:"rationale"`
}

// Scored 单个框架的打分结果，按请求产生，不落库
type Scored struct {
	Framework     model.Framework `json:"framework"`
	Score         int             `json:"score"`
	AIRecommended bool            `json:"ai_recommended"`
	AIRationale   string          `json:"ai_rationale,omitempty"`
}

// 各信号分值。时长超限的扣分（-30）比适配加分（+20）重，
// 保证时长不合适的框架在其他信号同分时排在合适的框架之后；
// AI 提示分值（+50）大于其余信号之和，提示有效时基本起决定作用。
const (
	scoreDurationFit     = 20
	scoreDurationOverrun = -30
	scoreRiskFit         = 15
	scoreStyleFit        = 25
	scoreTeamFit         = 10
	scoreMaturityFit     = 15
	scoreMaturityLack    = -20
	scoreDefaultBonus    = 5
	scoreAIHint          = 50
)

// maxRecommendations 最多返回的推荐数
const maxRecommendations = 3

// fallbackScore 兜底推荐的名义分值
const fallbackScore = 1

// signal 单条打分规则
type signal struct {
	name  string
	score func(p Profile, f *model.Framework, hint *Hint) int
}

var signals = []signal{
	{"duration", scoreDuration},
	{"risk", scoreRisk},
	{"style", scoreStyle},
	{"team", scoreTeam},
	{"maturity", scoreMaturity},
	{"default", scoreDefault},
	{"ai-hint", scoreHint},
}

// scoreDuration 项目时长在框架上限内 +20，超限 -30
func scoreDuration(p Profile, f *model.Framework, _ *Hint) int {
	if f.DurationMonthsMax <= 0 {
		return 0
	}
	if DurationToMonths(p.DurationBucket) <= f.DurationMonthsMax {
		return scoreDurationFit
	}
	return scoreDurationOverrun
}

// scoreRisk 风险容忍度在框架允许集合内 +15
func scoreRisk(p Profile, f *model.Framework, _ *Hint) int {
	if p.RiskTolerance == "" || f.RiskTolerances == "" {
		return 0
	}
	if f.AllowsRiskTolerance(p.RiskTolerance) {
		return scoreRiskFit
	}
	return 0
}

// scoreStyle 偏好风格命中框架标签 +25
func scoreStyle(p Profile, f *model.Framework, _ *Hint) int {
	tag := StyleToTag(p.PreferredStyle)
	if tag != "" && f.HasTag(tag) {
		return scoreStyleFit
	}
	return 0
}

// scoreTeam 团队规模在框架上限内 +10
func scoreTeam(p Profile, f *model.Framework, _ *Hint) int {
	if f.TeamSizeMax <= 0 {
		return 0
	}
	if TeamSizeToHeadcount(p.TeamSizeBucket) <= f.TeamSizeMax {
		return scoreTeamFit
	}
	return 0
}

// scoreMaturity 流程成熟度达到框架要求 +15，不足 -20
func scoreMaturity(p Profile, f *model.Framework, _ *Hint) int {
	if f.MinMaturity == "" {
		return 0
	}
	if MaturityToOrdinal(p.MaturityBucket) >= MaturityToOrdinal(f.MinMaturity) {
		return scoreMaturityFit
	}
	return scoreMaturityLack
}

// scoreDefault 目录默认框架 +5
func scoreDefault(_ Profile, f *model.Framework, _ *Hint) int {
	if f.IsDefault {
		return scoreDefaultBonus
	}
	return 0
}

// scoreHint AI 提示命中该框架 +50
func scoreHint(_ Profile, f *model.Framework, hint *Hint) int {
	if hint != nil && hint.FrameworkKey == f.Key {
		return scoreAIHint
	}
	return 0
}

// Recommend 给全部候选框架打分，返回得分为正的前三名。
// 没有任何框架得分为正时回退到默认框架（无默认则取第一个），名义分值 1，
// 保证调用方总能拿到至少一条推荐。hint 可以为 nil。
func Recommend(profile Profile, frameworks []model.Framework, hint *Hint) []Scored {
	if len(frameworks) == 0 {
		return nil
	}

	scored := make([]Scored, 0, len(frameworks))
	for i := range frameworks {
		f := &frameworks[i]
		total := 0
		for _, sig := range signals {
			total += sig.score(profile, f, hint)
		}
		entry := Scored{Framework: frameworks[i], Score: total}
		if hint != nil && hint.FrameworkKey == f.Key {
			entry.AIRecommended = true
			entry.AIRationale = hint.Rationale
		}
		scored = append(scored, entry)
		klog.V(6).Infof("框架打分: key=%s, score=%d", f.Key, total)
	}

	// 总分降序，同分按框架标识升序，保证结果确定
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Framework.Key < scored[j].Framework.Key
	})

	positive := make([]Scored, 0, maxRecommendations)
	for _, s := range scored {
		if s.Score <= 0 {
			break
		}
		positive = append(positive, s)
		if len(positive) == maxRecommendations {
			break
		}
	}

	if len(positive) > 0 {
		return positive
	}

	// 兜底：默认框架或第一个框架
	fallback := frameworks[0]
	for i := range frameworks {
		if frameworks[i].IsDefault {
			fallback = frameworks[i]
			break
		}
	}
	klog.V(6).Infof("所有框架得分非正，回退到默认框架: key=%s", fallback.Key)
	return []Scored{{Framework: fallback, Score: fallbackScore}}
}
