package statemachine

import "k8s.io/klog/v2"

// ArtifactStatus 定义项目工件的所有可能状态
type ArtifactStatus string

const (
	ArtifactStatusNotStarted ArtifactStatus = "not-started" // 未开始（初始态）
	ArtifactStatusDraft      ArtifactStatus = "draft"       // 草稿
	ArtifactStatusInReview   ArtifactStatus = "in-review"   // 评审中
	ArtifactStatusApproved   ArtifactStatus = "approved"    // 已批准
	ArtifactStatusObsolete   ArtifactStatus = "obsolete"    // 已废弃
)

// ArtifactTransition 定义工件状态迁移
type ArtifactTransition struct {
	From ArtifactStatus
	To   ArtifactStatus
}

// ArtifactStateMachine 工件状态机
type ArtifactStateMachine struct {
	allowedTransitions map[ArtifactTransition]bool
}

// NewArtifactStateMachine 创建新的工件状态机
func NewArtifactStateMachine() *ArtifactStateMachine {
	sm := &ArtifactStateMachine{
		allowedTransitions: make(map[ArtifactTransition]bool),
	}

	// 定义合法的状态迁移路径
	// not-started -> draft -> in-review -> approved
	// in-review -> draft（评审退回）
	// approved -> draft（批准后返工）
	// draft/in-review/approved -> obsolete，obsolete -> draft（恢复）
	transitions := []ArtifactTransition{
		{ArtifactStatusNotStarted, ArtifactStatusDraft},
		{ArtifactStatusDraft, ArtifactStatusInReview},
		{ArtifactStatusInReview, ArtifactStatusApproved},
		{ArtifactStatusInReview, ArtifactStatusDraft},
		{ArtifactStatusApproved, ArtifactStatusDraft},
		{ArtifactStatusDraft, ArtifactStatusObsolete},
		{ArtifactStatusInReview, ArtifactStatusObsolete},
		{ArtifactStatusApproved, ArtifactStatusObsolete},
		{ArtifactStatusObsolete, ArtifactStatusDraft},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *ArtifactStateMachine) CanTransition(from, to ArtifactStatus) bool {
	if from == to {
		return false
	}
	return sm.allowedTransitions[ArtifactTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *ArtifactStateMachine) ValidateTransition(from, to ArtifactStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			Kind: "artifact",
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *ArtifactStateMachine) Transition(from, to ArtifactStatus, artifactID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("工件状态迁移被拒绝: artifactID=%d, %s -> %s, error=%v",
			artifactID, from, to, err)
		return err
	}

	klog.V(6).Infof("工件状态迁移成功: artifactID=%d, %s -> %s", artifactID, from, to)
	return nil
}

// IsValidArtifactStatus 判断字符串是否为已知工件状态
func IsValidArtifactStatus(status string) bool {
	switch ArtifactStatus(status) {
	case ArtifactStatusNotStarted, ArtifactStatusDraft, ArtifactStatusInReview,
		ArtifactStatusApproved, ArtifactStatusObsolete:
		return true
	}
	return false
}
