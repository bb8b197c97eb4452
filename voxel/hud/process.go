package hud

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessSampler reports this process's resource use for the debug overlay,
// refreshing at most once per interval.
type ProcessSampler struct {
	proc  *process.Process
	every time.Duration
	last  time.Time
	line  string
}

func NewProcessSampler(every time.Duration) *ProcessSampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		p = nil
	}
	return &ProcessSampler{proc: p, every: every}
}

// Sample returns the cached line, refreshing it when stale.
func (s *ProcessSampler) Sample(now time.Time) string {
	if s.line != "" && now.Sub(s.last) < s.every {
		return s.line
	}
	s.last = now
	var rss uint64
	var cpu float64
	if s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			rss = mi.RSS
		}
		if v, err := s.proc.CPUPercent(); err == nil {
			cpu = v
		}
	}
	s.line = fmt.Sprintf("rss %d MiB cpu %.1f%% goroutines %d", rss>>20, cpu, runtime.NumGoroutine())
	return s.line
}
