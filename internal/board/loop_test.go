package board_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"visualtodo/internal/board"
	"visualtodo/internal/service"
	"visualtodo/internal/testutil"
)

// startLoop runs a loop over a fresh board until the test ends.
func startLoop(t *testing.T, finder service.ImageFinder) *board.Loop {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	loop := board.NewLoop(board.New(nil, nil), finder)
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// waitForTasks polls the loop until it holds n tasks.
func waitForTasks(t *testing.T, ctx context.Context, loop *board.Loop, n int) {
	t.Helper()
	for {
		tasks, _, err := loop.Snapshot(ctx)
		if err != nil {
			t.Fatalf("snapshot failed waiting for %d tasks: %v", n, err)
		}
		if len(tasks) == n {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoop_SuccessfulSubmission(t *testing.T) {
	finder := testutil.NewFakeFinder()
	finder.SetImage("mountains", "https://img/1.jpg")
	loop := startLoop(t, finder)
	ctx := testContext(t)

	if err := loop.SetInput(ctx, "mountains"); err != nil {
		t.Fatalf("set input: %v", err)
	}
	if err := loop.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := loop.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}

	tasks, input, err := loop.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Name != "mountains" || got.ImageURL != "https://img/1.jpg" || got.Complete {
		t.Errorf("unexpected task: %+v", got)
	}
	if input != "" {
		t.Errorf("expected input cleared, got %q", input)
	}
}

func TestLoop_ServerErrorPreservesInput(t *testing.T) {
	finder := testutil.NewFakeFinder()
	finder.SetError("x", fmt.Errorf("%w: unexpected status 500", service.ErrTransport))
	loop := startLoop(t, finder)
	ctx := testContext(t)

	loop.SetInput(ctx, "x")
	loop.Submit(ctx)
	loop.Wait(ctx)

	tasks, input, _ := loop.Snapshot(ctx)
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(tasks))
	}
	if input != "x" {
		t.Errorf("expected input %q preserved, got %q", "x", input)
	}
}

func TestLoop_DecodeFailureAppendsNothing(t *testing.T) {
	finder := testutil.NewFakeFinder()
	finder.SetError("y", fmt.Errorf("%w: missing urls.regular", service.ErrDecode))
	loop := startLoop(t, finder)
	ctx := testContext(t)

	loop.SubmitText(ctx, "y")
	loop.Wait(ctx)

	tasks, _, _ := loop.Snapshot(ctx)
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(tasks))
	}
}

func TestLoop_OverlappingSubmissionsAppendInCompletionOrder(t *testing.T) {
	finder := testutil.NewFakeFinder()
	finder.SetImage("a", "https://img/a.jpg")
	finder.SetImage("b", "https://img/b.jpg")
	releaseA := finder.Hold("a")
	releaseB := finder.Hold("b")
	defer releaseA()
	defer releaseB()

	loop := startLoop(t, finder)
	ctx := testContext(t)

	loop.SubmitText(ctx, "a")
	loop.SubmitText(ctx, "b")
	for i := 0; i < 2; i++ {
		select {
		case <-finder.Started():
		case <-ctx.Done():
			t.Fatal("lookups did not start")
		}
	}

	releaseB()
	waitForTasks(t, ctx, loop, 1)
	releaseA()
	if err := loop.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}

	tasks, _, _ := loop.Snapshot(ctx)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "b" || tasks[1].Name != "a" {
		t.Errorf("expected completion order [b a], got [%s %s]", tasks[0].Name, tasks[1].Name)
	}
}

func TestLoop_DuplicateSubmissionsAreNotCoalesced(t *testing.T) {
	finder := testutil.NewFakeFinder()
	finder.SetImage("tea", "https://img/tea.jpg")
	loop := startLoop(t, finder)
	ctx := testContext(t)

	loop.SubmitText(ctx, "tea")
	loop.SubmitText(ctx, "tea")
	loop.Wait(ctx)

	tasks, _, _ := loop.Snapshot(ctx)
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
	if len(finder.Calls()) != 2 {
		t.Errorf("expected 2 lookups, got %v", finder.Calls())
	}
}

func TestLoop_Toggle(t *testing.T) {
	finder := testutil.NewFakeFinder()
	finder.SetImage("a", "ua")
	finder.SetImage("b", "ub")
	loop := startLoop(t, finder)
	ctx := testContext(t)

	loop.SubmitText(ctx, "a")
	loop.Wait(ctx)
	loop.SubmitText(ctx, "b")
	loop.Wait(ctx)

	tasks, _, _ := loop.Snapshot(ctx)
	loop.Toggle(ctx, tasks[0].ID)

	tasks, _, _ = loop.Snapshot(ctx)
	if !tasks[0].Complete || tasks[1].Complete {
		t.Errorf("expected only first task complete: %+v", tasks)
	}
}

func TestLoop_StoppedLoopRejectsEvents(t *testing.T) {
	loop := board.NewLoop(board.New(nil, nil), testutil.NewFakeFinder())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop.Run(ctx)

	if err := loop.SetInput(context.Background(), "late"); err != board.ErrStopped {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}
