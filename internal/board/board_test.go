package board_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"visualtodo/internal/board"
	"visualtodo/internal/logging"
	"visualtodo/internal/service"
)

func TestResolve_SuccessAppendsAndClearsInput(t *testing.T) {
	b := board.New(nil, nil)
	b.SetInput("mountains")

	task, ok := b.Resolve("mountains", service.ImageResult{RegularURL: "https://img/1.jpg"}, nil)
	if !ok {
		t.Fatal("expected resolve to succeed")
	}
	if task.Name != "mountains" || task.ImageURL != "https://img/1.jpg" || task.Complete {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.ID == uuid.Nil {
		t.Error("expected a task id")
	}
	if b.Input() != "" {
		t.Errorf("expected input cleared, got %q", b.Input())
	}
	if len(b.Tasks()) != 1 {
		t.Errorf("expected 1 task, got %d", len(b.Tasks()))
	}
}

func TestResolve_FailureKeepsStateAndLogs(t *testing.T) {
	var logs bytes.Buffer
	b := board.New(nil, logging.New(&logs, "warn"))
	b.SetInput("x")

	err := fmt.Errorf("%w: unexpected status 500", service.ErrTransport)
	if _, ok := b.Resolve("x", service.ImageResult{}, err); ok {
		t.Fatal("expected resolve to fail")
	}
	if len(b.Tasks()) != 0 {
		t.Errorf("expected empty store, got %d", len(b.Tasks()))
	}
	if b.Input() != "x" {
		t.Errorf("expected input preserved, got %q", b.Input())
	}
	if !strings.Contains(logs.String(), "lookup aborted") || !strings.Contains(logs.String(), "kind=transport") {
		t.Errorf("expected diagnostic log, got %q", logs.String())
	}
}

func TestResolve_EveryFailureClassAborts(t *testing.T) {
	for _, sentinel := range []error{service.ErrMalformedRequest, service.ErrTransport, service.ErrDecode} {
		b := board.New(nil, nil)
		b.SetInput("q")
		b.Resolve("q", service.ImageResult{}, fmt.Errorf("%w: test", sentinel))
		if len(b.Tasks()) != 0 || b.Input() != "q" {
			t.Errorf("%v: expected no change, got tasks=%d input=%q", sentinel, len(b.Tasks()), b.Input())
		}
	}
}

func TestToggleAt(t *testing.T) {
	b := board.New(nil, nil)
	b.Resolve("a", service.ImageResult{RegularURL: "ua"}, nil)
	b.Resolve("b", service.ImageResult{RegularURL: "ub"}, nil)

	b.ToggleAt(1)
	b.ToggleAt(5)
	b.ToggleAt(-1)

	tasks := b.Tasks()
	if tasks[0].Complete || !tasks[1].Complete {
		t.Errorf("expected only second task complete: %+v", tasks)
	}
}

func TestToggle_UnknownID(t *testing.T) {
	b := board.New(nil, nil)
	b.Resolve("a", service.ImageResult{RegularURL: "ua"}, nil)

	b.Toggle(uuid.New())

	if b.Tasks()[0].Complete {
		t.Error("unknown id must not toggle anything")
	}
}
