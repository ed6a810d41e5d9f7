package handler

import (
	"errors"
	"testing"

	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/input"
)

func TestResultStatusString(t *testing.T) {
	tests := []struct {
		status ResultStatus
		want   string
	}{
		{StatusOK, "ok"},
		{StatusNoOp, "no-op"},
		{StatusError, "error"},
		{StatusCancelled, "cancelled"},
		{ResultStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name   string
		result Result
		status ResultStatus
		text   string
	}{
		{"success", Success(), StatusOK, ""},
		{"no-op", NoOpWithMessage("nothing to unindent"), StatusNoOp, "nothing to unindent"},
		{"error", Error(errBoom), StatusError, "boom"},
		{"errorf", Errorf("bad %d", 3), StatusError, "bad 3"},
		{"cancelled", CancelledWithMessage("read-only"), StatusCancelled, "read-only"},
		{"message wins", Error(errBoom).WithMessage("failed"), StatusError, "failed"},
	}
	for _, tt := range tests {
		if tt.result.Status != tt.status {
			t.Errorf("%s: Status = %v, want %v", tt.name, tt.result.Status, tt.status)
		}
		if got := tt.result.StatusText(); got != tt.text {
			t.Errorf("%s: StatusText() = %q, want %q", tt.name, got, tt.text)
		}
	}
	if !Success().IsOK() || Success().IsError() || !Error(errBoom).IsError() {
		t.Error("IsOK/IsError disagree with Status")
	}
}

type fakeNamespace struct{ calls int }

func (f *fakeNamespace) HandleAction(input.Action, *execctx.ExecutionContext) Result {
	f.calls++
	return Success()
}
func (f *fakeNamespace) CanHandle(name string) bool { return name == "fake.run" }
func (f *fakeNamespace) Namespace() string          { return "fake" }

func TestAdapters(t *testing.T) {
	ns := &fakeNamespace{}
	h := NewNamespaceAdapter(ns)
	if r := h.Handle(input.NewAction("fake.run"), execctx.New()); !r.IsOK() || ns.calls != 1 {
		t.Errorf("adapter result = %v, calls = %d", r.Status, ns.calls)
	}

	var nilFunc Func
	if r := nilFunc.Handle(input.NewAction("x"), execctx.New()); !r.IsError() {
		t.Errorf("nil Func status = %v, want error", r.Status)
	}
	f := Func(func(input.Action, *execctx.ExecutionContext) Result { return NoOp() })
	if r := f.Handle(input.NewAction("x"), execctx.New()); r.Status != StatusNoOp {
		t.Errorf("Func status = %v, want no-op", r.Status)
	}
}
