package dispatcher

import (
	"testing"
	"time"

	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/engine/buffer"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	ok := handler.Success()
	ok.Edits = []buffer.Change{{}, {}}
	m.RecordDispatch("editor.indent", 2*time.Millisecond, ok)
	m.RecordDispatch("editor.indent", 4*time.Millisecond, handler.NoOp())
	m.RecordDispatch("editor.unindent", time.Millisecond, handler.Errorf("bad"))

	s, found := m.Command("editor.indent")
	if !found {
		t.Fatal("Command(editor.indent) not found")
	}
	if s.Dispatches != 2 || s.NoOps != 1 || s.Edits != 2 {
		t.Errorf("stats = %+v", s)
	}
	if got := s.AverageDuration(); got != 3*time.Millisecond {
		t.Errorf("AverageDuration() = %v, want 3ms", got)
	}

	all := m.Commands()
	if len(all) != 2 || all[0].Name != "editor.indent" {
		t.Errorf("Commands() = %+v, want editor.indent first", all)
	}
	if all[1].Errors != 1 {
		t.Errorf("unindent errors = %d, want 1", all[1].Errors)
	}

	m.Reset()
	if _, found := m.Command("editor.indent"); found {
		t.Error("Reset should clear stats")
	}
}
