// Package profiling adds optional CPU/heap profiles and a timing summary to
// a cobra command. Everything it prints goes to the writer given to Finish.
package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

// Stopper ends a timed phase.
type Stopper interface {
	Stop()
}

type phase struct {
	name     string
	duration time.Duration
}

type phaseStopper struct {
	p     *Profiler
	name  string
	start time.Time
}

func (s phaseStopper) Stop() {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.p.phases = append(s.p.phases, phase{name: s.name, duration: time.Since(s.start)})
}

type noopStopper struct{}

func (noopStopper) Stop() {}

// Profiler holds profiling flags and the timings collected during a run.
type Profiler struct {
	cpuProfilePath string
	memProfilePath string
	timing         bool
	cpuProfileFile *os.File

	mu         sync.Mutex
	started    time.Time
	phases     []phase
	cycles     int
	cycleTotal time.Duration
	cycleMax   time.Duration
}

// New creates a disabled Profiler.
func New() *Profiler {
	return &Profiler{}
}

// AddFlags adds the profiling flags to cmd.
func (p *Profiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&p.memProfilePath, "mem-profile", "", "Write memory profile to file")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing summary on stderr on exit")
}

// PreRun starts profiling according to the flags. Use it as a cobra
// PersistentPreRunE hook.
func (p *Profiler) PreRun(cmd *cobra.Command, args []string) error {
	p.started = time.Now()

	if p.cpuProfilePath != "" {
		f, err := os.Create(p.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		p.cpuProfileFile = f
	}
	return nil
}

// Start times a named phase. It is a no-op unless --timing is set.
func (p *Profiler) Start(name string) Stopper {
	if p == nil || !p.timing {
		return noopStopper{}
	}
	return phaseStopper{p: p, name: name, start: time.Now()}
}

// ObserveCycle records the duration of one dispatch cycle.
func (p *Profiler) ObserveCycle(d time.Duration) {
	if p == nil || !p.timing {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cycles++
	p.cycleTotal += d
	if d > p.cycleMax {
		p.cycleMax = d
	}
}

// Finish stops the CPU profile, writes the heap profile and prints the
// timing summary to w. It is safe to call when nothing was enabled.
func (p *Profiler) Finish(w io.Writer) {
	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		p.cpuProfileFile.Close()
		p.cpuProfileFile = nil
		fmt.Fprintf(w, "CPU profile written to %s\n", p.cpuProfilePath)
	}

	if p.memProfilePath != "" {
		if err := writeHeapProfile(p.memProfilePath); err != nil {
			fmt.Fprintf(w, "could not write memory profile: %v\n", err)
		} else {
			fmt.Fprintf(w, "Memory profile written to %s\n", p.memProfilePath)
		}
	}

	if p.timing {
		p.Summarize(w)
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

// Summarize prints the collected timings.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(w, "--- Timing Profile ---")
	if !p.started.IsZero() {
		fmt.Fprintf(w, "- total (%v)\n", time.Since(p.started).Round(100*time.Microsecond))
	}
	for _, ph := range p.phases {
		fmt.Fprintf(w, "  - %s (%v)\n", ph.name, ph.duration.Round(100*time.Microsecond))
	}
	if p.cycles > 0 {
		avg := p.cycleTotal / time.Duration(p.cycles)
		fmt.Fprintf(w, "  - %d cycles (avg %v, max %v)\n", p.cycles,
			avg.Round(time.Microsecond), p.cycleMax.Round(time.Microsecond))
	}
	fmt.Fprintln(w, "----------------------")
}
