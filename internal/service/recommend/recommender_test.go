package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacompass/backend/internal/model"
)

// 访谈示例画像：短周期小团队、偏好敏捷、无流程基础
func agileProfile() Profile {
	return Profile{
		DurationBucket: "1-3 мес",
		TeamSizeBucket: "4-7",
		MaturityBucket: "Ничего",
		PreferredStyle: "Agile/Scrum",
		RiskTolerance:  "Средний",
	}
}

func testFrameworks() []model.Framework {
	return []model.Framework{
		{
			Key:               "scrum-ba",
			Name:              "Scrum BA Track",
			Tags:              "agile,scrum",
			DurationMonthsMax: 6,
			TeamSizeMax:       10,
		},
		{
			Key:               "waterfall-ba",
			Name:              "Waterfall BA Track",
			Tags:              "waterfall",
			DurationMonthsMax: 3,
			IsDefault:         true,
		},
	}
}

func TestRecommendAgileOverWaterfall(t *testing.T) {
	result := Recommend(agileProfile(), testFrameworks(), nil)

	require.NotEmpty(t, result)
	assert.Equal(t, "scrum-ba", result[0].Framework.Key)
	// 风格 +25，时长 +20，团队 +10
	assert.Equal(t, 55, result[0].Score)

	require.Len(t, result, 2)
	assert.Equal(t, "waterfall-ba", result[1].Framework.Key)
	// 仅时长 +20 和默认 +5
	assert.Equal(t, 25, result[1].Score)
}

func TestRecommendAIHintAddsExactlyFifty(t *testing.T) {
	profile := agileProfile()
	frameworks := testFrameworks()

	without := Recommend(profile, frameworks, nil)
	hint := &Hint{FrameworkKey: "waterfall-ba", Rationale: "регуляторные требования"}
	with := Recommend(profile, frameworks, hint)

	scoreOf := func(result []Scored, key string) int {
		for _, s := range result {
			if s.Framework.Key == key {
				return s.Score
			}
		}
		t.Fatalf("framework %s missing from result", key)
		return 0
	}

	assert.Equal(t, scoreOf(without, "waterfall-ba")+50, scoreOf(with, "waterfall-ba"))
	// 25+50=75 > 55，提示直接改变排名
	assert.Equal(t, "waterfall-ba", with[0].Framework.Key)
	assert.True(t, with[0].AIRecommended)
	assert.Equal(t, "регуляторные требования", with[0].AIRationale)
	assert.False(t, with[1].AIRecommended)
}

func TestRecommendDurationOverrunPenalty(t *testing.T) {
	// 同等其他信号下，超限框架必须排在适配框架之后
	frameworks := []model.Framework{
		{Key: "long-fit", Tags: "agile", DurationMonthsMax: 12},
		{Key: "short-only", Tags: "agile", DurationMonthsMax: 3},
	}
	profile := Profile{DurationBucket: "более 6 мес", PreferredStyle: "Agile"}

	result := Recommend(profile, frameworks, nil)
	require.NotEmpty(t, result)
	assert.Equal(t, "long-fit", result[0].Framework.Key)
	assert.Equal(t, 45, result[0].Score) // +25 风格 +20 时长
	// short-only: +25 风格 -30 超限 = -5，被过滤
	require.Len(t, result, 1)
}

func TestRecommendMaturityPenalty(t *testing.T) {
	frameworks := []model.Framework{
		{Key: "strict", MinMaturity: "full-bpmn", Tags: "waterfall"},
		{Key: "loose", Tags: "waterfall"},
	}
	profile := Profile{MaturityBucket: "Ничего", PreferredStyle: "Waterfall"}

	result := Recommend(profile, frameworks, nil)
	require.Len(t, result, 2)
	assert.Equal(t, "loose", result[0].Framework.Key)
	assert.Equal(t, 25, result[0].Score)
	assert.Equal(t, 5, result[1].Score) // +25 风格 -20 成熟度不足
}

func TestRecommendRiskToleranceFit(t *testing.T) {
	frameworks := []model.Framework{
		{Key: "risk-aware", RiskTolerances: "Низкий,Средний"},
	}
	withFit := Recommend(Profile{RiskTolerance: "Средний"}, frameworks, nil)
	require.Len(t, withFit, 1)
	assert.Equal(t, 15, withFit[0].Score)

	noFit := Recommend(Profile{RiskTolerance: "Высокий"}, frameworks, nil)
	// 无命中信号，回退兜底
	require.Len(t, noFit, 1)
	assert.Equal(t, fallbackScore, noFit[0].Score)
}

func TestRecommendAtMostThree(t *testing.T) {
	var frameworks []model.Framework
	for _, key := range []string{"f1", "f2", "f3", "f4", "f5"} {
		frameworks = append(frameworks, model.Framework{Key: key, Tags: "agile"})
	}
	result := Recommend(Profile{PreferredStyle: "Agile"}, frameworks, nil)
	assert.Len(t, result, 3)
	for _, s := range result {
		assert.Greater(t, s.Score, 0)
	}
}

func TestRecommendFallbackToDefault(t *testing.T) {
	frameworks := []model.Framework{
		{Key: "alpha"},
		{Key: "beta", IsDefault: true},
	}
	// 画像没有任何信号命中（默认框架 +5 依然为正，所以去掉默认加分场景需要全负）
	profile := Profile{DurationBucket: "более 6 мес"}
	frameworks[0].DurationMonthsMax = 3
	frameworks[1].DurationMonthsMax = 3
	frameworks[1].IsDefault = false
	frameworks[0].IsDefault = false

	result := Recommend(profile, frameworks, nil)
	require.Len(t, result, 1)
	assert.Equal(t, "alpha", result[0].Framework.Key) // 无默认框架时取第一个
	assert.Equal(t, fallbackScore, result[0].Score)

	frameworks[1].IsDefault = true
	result = Recommend(profile, frameworks, nil)
	require.Len(t, result, 1)
	assert.Equal(t, "beta", result[0].Framework.Key)
	assert.Equal(t, fallbackScore, result[0].Score)
}

func TestRecommendEmptyFrameworks(t *testing.T) {
	assert.Nil(t, Recommend(agileProfile(), nil, nil))
}

func TestRecommendTieBreakByKey(t *testing.T) {
	frameworks := []model.Framework{
		{Key: "zeta", Tags: "agile"},
		{Key: "alpha", Tags: "agile"},
	}
	result := Recommend(Profile{PreferredStyle: "Agile"}, frameworks, nil)
	require.Len(t, result, 2)
	assert.Equal(t, "alpha", result[0].Framework.Key)
	assert.Equal(t, "zeta", result[1].Framework.Key)
}

func TestBucketMappings(t *testing.T) {
	assert.Equal(t, 1, DurationToMonths("до 1 мес"))
	assert.Equal(t, 3, DurationToMonths("1-3 мес"))
	assert.Equal(t, 6, DurationToMonths("3-6 мес"))
	assert.Equal(t, 12, DurationToMonths("более 6 мес"))
	assert.Equal(t, 12, DurationToMonths(">6mo"))

	assert.Equal(t, 3, TeamSizeToHeadcount("1-3"))
	assert.Equal(t, 7, TeamSizeToHeadcount("4-7"))
	assert.Equal(t, 15, TeamSizeToHeadcount(">7"))

	assert.Equal(t, 0, MaturityToOrdinal("Ничего"))
	assert.Equal(t, 1, MaturityToOrdinal("Частично"))
	assert.Equal(t, 2, MaturityToOrdinal("Ключевые процессы"))
	assert.Equal(t, 3, MaturityToOrdinal("Полный BPMN"))

	assert.Equal(t, "agile", StyleToTag("Agile/Scrum"))
	assert.Equal(t, "waterfall", StyleToTag("Waterfall"))
	assert.Equal(t, "lean", StyleToTag("Lean/Kanban"))
	assert.Equal(t, "", StyleToTag("Six Sigma"))
}
