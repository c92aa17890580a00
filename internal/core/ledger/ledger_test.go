package ledger_test

import (
	"reflect"
	"testing"

	"studyplanner/internal/core/ledger"
)

func TestLedger_RecordAdvancesCurrent(t *testing.T) {
	l := ledger.New(3)

	for i, answer := range []string{"x", "y", "z"} {
		if l.Complete() {
			t.Fatalf("ledger complete before answer %d", i)
		}
		index, ok := l.Record(answer)
		if !ok || index != i {
			t.Fatalf("Record(%q) = %d, %v; want %d, true", answer, index, ok, i)
		}
		if l.Current() != i+1 {
			t.Errorf("expected current %d, got %d", i+1, l.Current())
		}
	}

	if !l.Complete() {
		t.Error("expected ledger to be complete")
	}
	if got, ok := l.Answer(1); !ok || got != "y" {
		t.Errorf("Answer(1) = %q, %v", got, ok)
	}
}

func TestLedger_RecordWhenCompleteIsNoOp(t *testing.T) {
	l := ledger.New(1)
	l.Record("only")

	if _, ok := l.Record("extra"); ok {
		t.Error("expected Record to refuse once complete")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 answer, got %d", l.Len())
	}
}

func TestLedger_AnswerOutOfRange(t *testing.T) {
	l := ledger.New(2)
	l.Record("a")

	for _, index := range []int{-1, 1, 5} {
		if _, ok := l.Answer(index); ok {
			t.Errorf("Answer(%d) should not be found", index)
		}
	}
}

func TestLedger_ResetClearsAnswers(t *testing.T) {
	l := ledger.New(2)
	l.Record("a")
	l.Record("b")
	answers := l.Answers()

	l.Reset(4)

	if l.Len() != 0 || l.Current() != 0 || l.Size() != 4 || l.Complete() {
		t.Errorf("unexpected ledger after reset: len=%d current=%d size=%d", l.Len(), l.Current(), l.Size())
	}
	if !reflect.DeepEqual(answers, []string{"a", "b"}) {
		t.Errorf("copy returned before reset was modified: %v", answers)
	}
}

func TestLedger_EmptyRoundIsComplete(t *testing.T) {
	l := ledger.New(0)
	if !l.Complete() {
		t.Error("expected empty ledger to be complete")
	}
	if _, ok := l.Record("a"); ok {
		t.Error("expected no answers accepted in an empty round")
	}
}
