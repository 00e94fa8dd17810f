package utils

import (
	"github.com/fastlab-io/server/providers"
	"gopkg.in/robfig/cron.v2"
)

// Cron implementation.
type cronProvider struct {
	cron *cron.Cron
}

// NewCron creates a new started scheduler.
func NewCron() providers.ICronProvider {
	p := cronProvider{
		cron: cron.New(),
	}

	p.cron.Start()
	return &p
}

// AddFunc schedules a new job.
func (p *cronProvider) AddFunc(spec string, cmd func()) (int, error) {
	id, err := p.cron.AddFunc(spec, cmd)
	return int(id), err
}

// RemoveFunc removes scheduled job from cron.
func (p *cronProvider) RemoveFunc(id int) {
	p.cron.Remove(cron.EntryID(id))
}

// Stop halts the scheduler. Running jobs are not interrupted.
func (p *cronProvider) Stop() {
	p.cron.Stop()
}
