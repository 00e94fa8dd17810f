//go:build !release

package mocks

import "sync"

// IFakeCron adds additional capabilities to a fake cron provider.
type IFakeCron interface {
	Run()
	Specs() []string
}

type fakeCron struct {
	sync.Mutex
	jobs  map[int]func()
	specs []string
}

func (c *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	c.Lock()
	defer c.Unlock()

	id := len(c.specs) + 1
	c.jobs[id] = cmd
	c.specs = append(c.specs, spec)
	return id, nil
}

func (c *fakeCron) RemoveFunc(id int) {
	c.Lock()
	defer c.Unlock()
	delete(c.jobs, id)
}

func (c *fakeCron) Stop() {
}

// Run invokes all registered jobs once.
func (c *fakeCron) Run() {
	c.Lock()
	jobs := make([]func(), 0, len(c.jobs))
	for _, v := range c.jobs {
		jobs = append(jobs, v)
	}
	c.Unlock()

	for _, v := range jobs {
		v()
	}
}

// Specs returns all registered schedules.
func (c *fakeCron) Specs() []string {
	c.Lock()
	defer c.Unlock()
	return append([]string{}, c.specs...)
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		jobs: make(map[int]func()),
	}
}
