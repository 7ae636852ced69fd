package executor

import (
	"fmt"
	"sync/atomic"

	"github.com/lonng/conduit/internal/log"
)

// Task is a unit of work submitted to an executor.
type Task func()

// executor states
const (
	created int32 = 0
	running int32 = 1
	closed  int32 = 2
)

const taskBacklog = 1 << 8

// Executor runs submitted tasks one at a time on a dedicated goroutine. A
// pipeline bound to an executor gets the single-threaded cooperative model
// its bookkeeping relies on: every stage of every event runs on this one
// goroutine, in submission order.
type Executor struct {
	name    string
	state   atomic.Int32
	chDie   chan struct{}
	chTasks chan Task
}

// New constructs an executor; call Start to begin draining tasks.
func New(name string) *Executor {
	return &Executor{
		name:    name,
		chDie:   make(chan struct{}),
		chTasks: make(chan Task, taskBacklog),
	}
}

// Start launches the executor loop on its own goroutine.
func (e *Executor) Start() {
	if !e.state.CompareAndSwap(created, running) {
		return
	}
	go e.run()
}

// Execute submits a task. Returns false if the executor is not running.
func (e *Executor) Execute(task Task) bool {
	if task == nil || e.state.Load() != running {
		return false
	}
	select {
	case e.chTasks <- task:
		return true
	case <-e.chDie:
		return false
	}
}

// Close stops the executor. The loop exits on one of its next turns; tasks
// still queued then are dropped, and which queued tasks run before that is
// not defined.
func (e *Executor) Close() {
	if !e.state.CompareAndSwap(running, closed) {
		return
	}
	close(e.chDie)
}

// runTask executes one task, containing its panic
func (e *Executor) runTask(task Task) {
	defer func() {
		if v := recover(); v != nil {
			log.Error("executor [%v] task panic.", e.name, fmt.Errorf("%v", v))
		}
	}()
	task()
}

// run is the executor's main loop
func (e *Executor) run() {
	for {
		select {
		case task := <-e.chTasks:
			e.runTask(task)

		case <-e.chDie:
			return
		}
	}
}
