package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ka2n/postview/api/record"
	"github.com/ka2n/postview/api/sourceimpl"
)

// failingSource always fails
type failingSource struct {
	calls atomic.Int32
}

func (s *failingSource) FetchAll(ctx context.Context) ([]record.Record, error) {
	s.calls.Add(1)
	return nil, errors.New("unreachable")
}

// blockingSource returns its records only after release is closed
type blockingSource struct {
	release chan struct{}
	records []record.Record
}

func (s *blockingSource) FetchAll(ctx context.Context) ([]record.Record, error) {
	select {
	case <-s.release:
		return s.records, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// countingSource counts FetchAll calls
type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) FetchAll(ctx context.Context) ([]record.Record, error) {
	s.calls.Add(1)
	return []record.Record{{ID: 1, Title: "One"}}, nil
}

func waitDone(t *testing.T, c *ListController) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not settle")
	}
}

var oneTwo = []record.Record{
	{OwnerID: 1, ID: 1, Title: "One", Body: "One"},
	{OwnerID: 2, ID: 2, Title: "Two", Body: "Two"},
}

func TestListControllerPublishesStaticRecords(t *testing.T) {
	c := New(context.Background(), sourceimpl.NewStaticDataSource(oneTwo))
	waitDone(t, c)

	if diff := cmp.Diff(oneTwo, c.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if err := c.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestListControllerSwallowsFailure(t *testing.T) {
	src := &failingSource{}
	var notified atomic.Int32

	c := New(context.Background(), src)
	c.Subscribe(func([]record.Record) { notified.Add(1) })
	waitDone(t, c)

	if got := c.Items(); len(got) != 0 {
		t.Errorf("Items() = %v, want empty", got)
	}
	if c.Err() == nil {
		t.Error("Err() = nil, want the fetch error")
	}

	// still empty later, still no notification, no second attempt
	time.Sleep(20 * time.Millisecond)
	if got := c.Items(); len(got) != 0 {
		t.Errorf("Items() = %v, want empty", got)
	}
	if n := notified.Load(); n != 0 {
		t.Errorf("subscriber called %d times, want 0", n)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("FetchAll called %d times, want 1", n)
	}
}

func TestListControllerFetchesOnce(t *testing.T) {
	src := &countingSource{}
	c := New(context.Background(), src)
	waitDone(t, c)

	_ = c.Items()
	_ = c.Items()
	if n := src.calls.Load(); n != 1 {
		t.Errorf("FetchAll called %d times, want 1", n)
	}
}

func TestListControllersAreIsolated(t *testing.T) {
	a := New(context.Background(), sourceimpl.NewStaticDataSource(oneTwo))
	b := New(context.Background(), sourceimpl.NewStaticDataSource(nil))
	f := New(context.Background(), &failingSource{})
	waitDone(t, a)
	waitDone(t, b)
	waitDone(t, f)

	if diff := cmp.Diff(oneTwo, a.Items()); diff != "" {
		t.Errorf("a.Items() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sourceimpl.DefaultRecords, b.Items()); diff != "" {
		t.Errorf("b.Items() mismatch (-want +got):\n%s", diff)
	}
	if got := f.Items(); len(got) != 0 {
		t.Errorf("f.Items() = %v, want empty", got)
	}

	items := a.Items()
	items[0].Title = "changed"
	if a.Items()[0].Title != "One" {
		t.Error("Items() exposes internal state")
	}
}

func TestListControllerSubscribe(t *testing.T) {
	src := &blockingSource{release: make(chan struct{}), records: oneTwo}
	c := New(context.Background(), src)

	var mu sync.Mutex
	var early, late [][]record.Record
	c.Subscribe(func(rs []record.Record) {
		mu.Lock()
		defer mu.Unlock()
		early = append(early, rs)
	})
	removed := 0
	unsubscribe := c.Subscribe(func([]record.Record) { removed++ })
	unsubscribe()

	close(src.release)
	waitDone(t, c)

	c.Subscribe(func(rs []record.Record) {
		mu.Lock()
		defer mu.Unlock()
		late = append(late, rs)
	})

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([][]record.Record{oneTwo}, early); diff != "" {
		t.Errorf("early subscriber mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]record.Record{oneTwo}, late); diff != "" {
		t.Errorf("late subscriber mismatch (-want +got):\n%s", diff)
	}
	if removed != 0 {
		t.Errorf("removed subscriber called %d times", removed)
	}
}

func TestListControllerDispatcher(t *testing.T) {
	queue := make(chan func(), 1)
	c := New(context.Background(), sourceimpl.NewStaticDataSource(oneTwo), WithDispatcher(func(fn func()) {
		queue <- fn
	}))

	var fn func()
	select {
	case fn = <-queue:
	case <-time.After(5 * time.Second):
		t.Fatal("nothing dispatched")
	}

	if got := c.Items(); len(got) != 0 {
		t.Errorf("Items() before dispatch = %v, want empty", got)
	}
	select {
	case <-c.Done():
		t.Error("Done closed before the update ran")
	default:
	}

	fn()
	waitDone(t, c)
	if diff := cmp.Diff(oneTwo, c.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestListControllerClose(t *testing.T) {
	src := &blockingSource{release: make(chan struct{}), records: oneTwo}
	c := New(context.Background(), src)

	notified := false
	c.Subscribe(func([]record.Record) { notified = true })
	c.Close()
	waitDone(t, c)
	close(src.release)

	time.Sleep(20 * time.Millisecond)
	if got := c.Items(); len(got) != 0 {
		t.Errorf("Items() after Close = %v, want empty", got)
	}
	if notified {
		t.Error("subscriber notified after Close")
	}
}

func TestListControllerDropsLateCompletion(t *testing.T) {
	queue := make(chan func(), 1)
	c := New(context.Background(), sourceimpl.NewStaticDataSource(oneTwo), WithDispatcher(func(fn func()) {
		queue <- fn
	}))

	fn := <-queue
	c.Close()
	fn()

	if got := c.Items(); len(got) != 0 {
		t.Errorf("Items() = %v, want empty", got)
	}
}

func TestNewPanicsWithoutSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(context.Background(), nil)
}
