package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// TaskStatus 定义项目任务的所有可能状态
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"        // 未开始（初始态）
	TaskStatusInProgress TaskStatus = "in-progress" // 进行中
	TaskStatusDone       TaskStatus = "done"        // 已完成
)

// PhaseStatus 定义项目阶段的所有可能状态
type PhaseStatus string

const (
	PhaseStatusNotStarted PhaseStatus = "not-started"
	PhaseStatusInProgress PhaseStatus = "in-progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
	PhaseStatusOnHold     PhaseStatus = "on-hold"
)

// TaskTransition 定义任务状态迁移
type TaskTransition struct {
	From TaskStatus
	To   TaskStatus
}

// TaskStateMachine 任务状态机
type TaskStateMachine struct {
	// 定义所有合法的状态迁移
	allowedTransitions map[TaskTransition]bool
}

// NewTaskStateMachine 创建新的任务状态机
func NewTaskStateMachine() *TaskStateMachine {
	sm := &TaskStateMachine{
		allowedTransitions: make(map[TaskTransition]bool),
	}

	// 定义合法的状态迁移路径
	// todo -> in-progress -> done
	// done -> in-progress（返工）
	// in-progress -> todo（回退）
	transitions := []TaskTransition{
		{TaskStatusTodo, TaskStatusInProgress},
		{TaskStatusInProgress, TaskStatusDone},
		{TaskStatusInProgress, TaskStatusTodo},
		{TaskStatusDone, TaskStatusInProgress},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *TaskStateMachine) CanTransition(from, to TaskStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[TaskTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *TaskStateMachine) ValidateTransition(from, to TaskStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			Kind: "task",
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *TaskStateMachine) Transition(from, to TaskStatus, taskID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("任务状态迁移被拒绝: taskID=%d, %s -> %s, error=%v",
			taskID, from, to, err)
		return err
	}

	klog.V(6).Infof("任务状态迁移成功: taskID=%d, %s -> %s", taskID, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	Kind string
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid %s state transition: %s -> %s", e.Kind, e.From, e.To)
}

// IsValidTaskStatus 判断字符串是否为已知任务状态
func IsValidTaskStatus(status string) bool {
	switch TaskStatus(status) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
