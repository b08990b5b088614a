package statemachine

import "testing"

func TestTaskStateMachineTransitions(t *testing.T) {
	sm := NewTaskStateMachine()

	allowed := []TaskTransition{
		{TaskStatusTodo, TaskStatusInProgress},
		{TaskStatusInProgress, TaskStatusDone},
		{TaskStatusInProgress, TaskStatusTodo},
		{TaskStatusDone, TaskStatusInProgress},
	}
	for _, tr := range allowed {
		if !sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be allowed", tr.From, tr.To)
		}
	}

	denied := []TaskTransition{
		{TaskStatusTodo, TaskStatusDone}, // 不允许跳过进行中
		{TaskStatusDone, TaskStatusTodo},
		{TaskStatusTodo, TaskStatusTodo}, // 状态不变
	}
	for _, tr := range denied {
		if sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be denied", tr.From, tr.To)
		}
	}

	if err := sm.ValidateTransition(TaskStatusTodo, TaskStatusDone); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestArtifactStateMachineTransitions(t *testing.T) {
	sm := NewArtifactStateMachine()

	allowed := []ArtifactTransition{
		{ArtifactStatusNotStarted, ArtifactStatusDraft},
		{ArtifactStatusDraft, ArtifactStatusInReview},
		{ArtifactStatusInReview, ArtifactStatusApproved},
		{ArtifactStatusInReview, ArtifactStatusDraft},
		{ArtifactStatusApproved, ArtifactStatusObsolete},
		{ArtifactStatusObsolete, ArtifactStatusDraft},
	}
	for _, tr := range allowed {
		if !sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be allowed", tr.From, tr.To)
		}
	}

	denied := []ArtifactTransition{
		{ArtifactStatusNotStarted, ArtifactStatusApproved},
		{ArtifactStatusNotStarted, ArtifactStatusObsolete},
		{ArtifactStatusDraft, ArtifactStatusApproved}, // 必须先评审
		{ArtifactStatusObsolete, ArtifactStatusApproved},
	}
	for _, tr := range denied {
		if sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be denied", tr.From, tr.To)
		}
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	for _, s := range []string{"todo", "in-progress", "done"} {
		if !IsValidTaskStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if IsValidTaskStatus("pending") {
		t.Fatal("expected pending to be invalid")
	}
}
