package workers

import (
	"context"
	"convo-lab/observability"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthWorker samples the server process (memory, CPU, status) for the
// metrics endpoint and the debug page.
type HealthWorker struct {
	log        *slog.Logger
	interval   time.Duration
	monitoring *observability.MonitoringManager
}

func NewHealthWorker(log *slog.Logger, interval time.Duration, monitoring *observability.MonitoringManager) *HealthWorker {
	return &HealthWorker{log: log, interval: interval, monitoring: monitoring}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sample(p)
		}
	}
}

func (w *HealthWorker) sample(p *process.Process) {
	rss, cpu, status, err := selfStats(p)
	if err != nil {
		w.log.Debug("Failed to collect self stats", "error", err)
		return
	}
	w.monitoring.UpdateProcess(p.Pid, status, cpu, rss)
}

// selfStats retrieves memory, CPU and OS status for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
