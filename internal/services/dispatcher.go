package services

import (
	"context"
	"fmt"
	"sync"

	"tour_travels_backend/pkg/utils"
)

// Task is a unit of background work. Failures are the task's own concern,
// the dispatcher only recovers panics.
type Task func(ctx context.Context)

// Dispatcher runs submitted tasks on a fixed pool of workers. Submission is
// fire-and-forget: callers never wait for completion and a full queue drops
// the task with a warning instead of blocking the request path.
type Dispatcher struct {
	tasks   chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher starts workers goroutines consuming a queue of queueSize.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &Dispatcher{tasks: make(chan Task, queueSize)}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		d.run(task)
	}
}

func (d *Dispatcher) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError(fmt.Errorf("panic: %v", r), "Background task panicked")
		}
	}()
	task(context.Background())
}

// Submit enqueues a task without blocking. Returns false when the task was
// dropped because the queue is full or the dispatcher is stopped.
func (d *Dispatcher) Submit(task Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		utils.LogWarn(nil, "Dispatcher stopped, dropping background task")
		return false
	}
	select {
	case d.tasks <- task:
		return true
	default:
		utils.LogWarn(nil, "Dispatcher queue full, dropping background task")
		return false
	}
}

// Stop closes the queue and waits for in-flight tasks to finish. Later
// Submit calls drop their task, later Stop calls only wait.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.tasks)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
