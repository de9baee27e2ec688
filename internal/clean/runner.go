package clean

// Runner executes submitted units of work concurrently. Submit must not
// block on task completion.
type Runner interface {
	Submit(task func())
}

// Pool is a Runner that starts a goroutine per task and bounds how many run
// at once with a semaphore.
type Pool struct {
	sem chan struct{}
}

// NewPool returns a pool running at most workers tasks at once.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{sem: make(chan struct{}, workers)}
}

// Submit schedules task. The semaphore is acquired inside the task goroutine
// so Submit never blocks the caller.
func (p *Pool) Submit(task func()) {
	go func() {
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
		task()
	}()
}

// Inline is a Runner that executes each task synchronously inside Submit.
type Inline struct{}

func (Inline) Submit(task func()) { task() }
