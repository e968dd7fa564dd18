package interpreter

import (
	"context"
	"fmt"
	"sync"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

// Execution is the deferred result of Start. The program runs on a single
// goroutine; the output sink is called from that goroutine in program order.
type Execution struct {
	done chan struct{}

	mu     sync.Mutex
	result runtime.Value
	err    error
}

// Start begins running program and returns immediately. There is no way to
// cancel a started execution.
func (i *Interpreter) Start(program *ast.Program) *Execution {
	exec := &Execution{done: make(chan struct{})}
	go func() {
		result, err := i.safeExec(program)
		exec.mu.Lock()
		exec.result, exec.err = result, err
		exec.mu.Unlock()
		close(exec.done)
	}()
	return exec
}

// Done is closed once the program has completed or failed.
func (e *Execution) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until the program finishes and returns its outcome.
func (e *Execution) Wait() (runtime.Value, error) {
	<-e.done
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result, e.err
}

// Await is Wait bounded by ctx. Giving up on the wait leaves the program
// running.
func (e *Execution) Await(ctx context.Context) (runtime.Value, error) {
	select {
	case <-e.done:
		return e.Wait()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// safeExec turns a panic escaping the evaluator (including one raised by the
// output sink) into an error on the execution.
func (i *Interpreter) safeExec(program *ast.Program) (result runtime.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return i.Exec(program)
}
