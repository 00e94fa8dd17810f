// Package health periodically checks instruments reachability.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
)

const (
	// Upper bound of a single probe.
	probeTimeout = 10 * time.Second
	// Problem reported before the first probe.
	notCheckedProblem = "not checked yet"
)

// ConstructHealth has data required for a new health checker.
type ConstructHealth struct {
	Logger   common.ILoggerProvider
	Cron     providers.ICronProvider
	Settings *providers.HealthSettings
	Camera   providers.ICameraProvider
	Motor    providers.IMotorProvider
}

// Probed instrument.
type probe struct {
	name    string
	address string
	check   func(ctx context.Context) error
}

// Health checker implementation.
type checker struct {
	sync.Mutex

	logger   common.ILoggerProvider
	cron     providers.ICronProvider
	settings *providers.HealthSettings
	probes   []*probe
	statuses map[string]*providers.InstrumentStatus
	jobID    int
}

// NewHealthProvider constructs a new health checker.
func NewHealthProvider(ctor *ConstructHealth) providers.IHealthProvider {
	h := &checker{
		logger:   ctor.Logger,
		cron:     ctor.Cron,
		settings: ctor.Settings,
		probes: []*probe{
			{
				name:    "camera",
				address: ctor.Camera.Address(),
				check: func(ctx context.Context) error {
					return ctor.Camera.WithCamera(ctx, func(instrument.ICamera) error { return nil })
				},
			},
			{
				name:    "motor",
				address: ctor.Motor.Address(),
				check: func(ctx context.Context) error {
					return ctor.Motor.WithMotor(ctx, func(instrument.IMotor) error { return nil })
				},
			},
		},
		statuses: make(map[string]*providers.InstrumentStatus),
		jobID:    -1,
	}

	for _, v := range h.probes {
		h.statuses[v.name] = &providers.InstrumentStatus{
			Name:    v.name,
			Address: v.address,
			Problem: notCheckedProblem,
		}
	}

	return h
}

// Start schedules periodic checks.
func (h *checker) Start() error {
	if h.settings.Disabled {
		h.logger.Info("Instruments health check is disabled")
		return nil
	}

	id, err := h.cron.AddFunc(h.settings.Schedule, h.checkAll)
	if err != nil {
		h.logger.Error("Failed to schedule instruments health check", err)
		return err
	}

	h.Lock()
	h.jobID = id
	h.Unlock()
	return nil
}

// Stop cancels periodic checks.
func (h *checker) Stop() {
	h.Lock()
	defer h.Unlock()

	if h.jobID < 0 {
		return
	}

	h.cron.RemoveFunc(h.jobID)
	h.jobID = -1
}

// Status returns results of the last check.
func (h *checker) Status() []*providers.InstrumentStatus {
	h.Lock()
	defer h.Unlock()

	result := make([]*providers.InstrumentStatus, 0, len(h.probes))
	for _, v := range h.probes {
		s := *h.statuses[v.name]
		result = append(result, &s)
	}

	return result
}

// Probes all instruments in parallel.
func (h *checker) checkAll() {
	wg := sync.WaitGroup{}
	for _, v := range h.probes {
		wg.Add(1)
		go func(p *probe) {
			defer wg.Done()
			h.checkOne(p)
		}(v)
	}

	wg.Wait()
}

// Probes a single instrument.
func (h *checker) checkOne(p *probe) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := p.check(ctx)
	status := &providers.InstrumentStatus{
		Name:      p.name,
		Address:   p.address,
		Reachable: nil == err,
		CheckedAt: time.Now().UTC(),
	}

	if err != nil {
		status.Problem = err.Error()
	}

	h.Lock()
	prev := h.statuses[p.name]
	h.statuses[p.name] = status
	h.Unlock()

	if err != nil {
		if prev.Reachable || notCheckedProblem == prev.Problem {
			h.logger.Warn("Instrument is not reachable", common.LogInstrumentToken, p.name,
				common.LogInstrumentHostToken, p.address, common.LogErrorToken, err.Error())
		}

		return
	}

	if !prev.Reachable {
		h.logger.Info("Instrument is reachable", common.LogInstrumentToken, p.name,
			common.LogInstrumentHostToken, p.address)
	}
}
