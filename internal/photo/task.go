package photo

import (
	"context"
	"io"
)

// Task is an in-flight compression started by CompressAsync.
type Task struct {
	done   chan struct{}
	result Result
	err    error
}

// CompressAsync runs Compress on its own goroutine. There is no cancellation
// beyond ctx.
func (p Pipeline) CompressAsync(ctx context.Context, r io.Reader) *Task {
	return p.CompressThen(ctx, r, nil)
}

// CompressThen is CompressAsync with a completion callback. then runs on the
// worker goroutine before Wait returns, so state it touches is settled once
// the task is done.
func (p Pipeline) CompressThen(ctx context.Context, r io.Reader, then func(Result, error)) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result, t.err = p.Compress(ctx, r)
		if then != nil {
			then(t.result, t.err)
		}
	}()
	return t
}

// Wait blocks until the compression and its callback finish.
func (t *Task) Wait() (Result, error) {
	<-t.done
	return t.result, t.err
}

// Done is closed when the result is ready.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
