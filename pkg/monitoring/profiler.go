/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profiler.go
Description: Runtime profiling around analysis runs. Captures a CPU profile for the
duration of a run, writes a heap profile at the end and records memory snapshots
before and after.
*/

package monitoring

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
)

// MemorySnapshot is a subset of runtime.MemStats at one instant
type MemorySnapshot struct {
	Timestamp    time.Time `json:"timestamp"`
	HeapAlloc    uint64    `json:"heap_alloc"`
	HeapSys      uint64    `json:"heap_sys"`
	HeapObjects  uint64    `json:"heap_objects"`
	TotalAlloc   uint64    `json:"total_alloc"`
	GoRoutines   int       `json:"go_routines"`
	NumGC        uint32    `json:"num_gc"`
	PauseTotalNs uint64    `json:"pause_total_ns"`
}

// TakeMemorySnapshot reads the current memory statistics
func TakeMemorySnapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemorySnapshot{
		Timestamp:    time.Now(),
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapObjects:  m.HeapObjects,
		TotalAlloc:   m.TotalAlloc,
		GoRoutines:   runtime.NumGoroutine(),
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// ProfileResult describes one finished profiling session
type ProfileResult struct {
	StartTime   time.Time      `json:"start_time"`
	Duration    time.Duration  `json:"duration"`
	CPUProfile  string         `json:"cpu_profile"`
	HeapProfile string         `json:"heap_profile"`
	Before      MemorySnapshot `json:"before"`
	After       MemorySnapshot `json:"after"`
}

// Allocated returns the bytes allocated during the session
func (r *ProfileResult) Allocated() uint64 {
	return r.After.TotalAlloc - r.Before.TotalAlloc
}

// GCs returns the garbage collections completed during the session
func (r *ProfileResult) GCs() uint32 {
	return r.After.NumGC - r.Before.NumGC
}

// Profiler writes pprof files for one session at a time
type Profiler struct {
	outputDir string
	logger    *logrus.Logger

	running bool
	cpuFile *os.File
	result  *ProfileResult
}

// NewProfiler creates a profiler writing into outputDir
func NewProfiler(outputDir string, logger *logrus.Logger) *Profiler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Profiler{outputDir: outputDir, logger: logger}
}

// Start begins CPU profiling and takes the opening memory snapshot
func (p *Profiler) Start() error {
	if p.running {
		return fmt.Errorf("profiler already running")
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	start := time.Now()
	cpuPath := filepath.Join(p.outputDir, fmt.Sprintf("cpu_%d.prof", start.UnixNano()))
	file, err := os.Create(cpuPath)
	if err != nil {
		return fmt.Errorf("failed to create CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}

	p.cpuFile = file
	p.running = true
	p.result = &ProfileResult{
		StartTime:  start,
		CPUProfile: cpuPath,
		Before:     TakeMemorySnapshot(),
	}
	p.logger.WithField("cpu_profile", cpuPath).Info("CPU profiling started")
	return nil
}

// Stop ends CPU profiling, writes the heap profile and returns the session
func (p *Profiler) Stop() (*ProfileResult, error) {
	if !p.running {
		return nil, fmt.Errorf("profiler not running")
	}
	p.running = false

	pprof.StopCPUProfile()
	if err := p.cpuFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close CPU profile: %w", err)
	}

	result := p.result
	result.Duration = time.Since(result.StartTime)
	result.After = TakeMemorySnapshot()

	heapPath := filepath.Join(p.outputDir, fmt.Sprintf("heap_%d.prof", result.StartTime.UnixNano()))
	file, err := os.Create(heapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create heap profile file: %w", err)
	}
	defer file.Close()
	if err := pprof.WriteHeapProfile(file); err != nil {
		return nil, fmt.Errorf("failed to write heap profile: %w", err)
	}
	result.HeapProfile = heapPath

	p.logger.WithFields(logrus.Fields{
		"duration":     result.Duration,
		"allocated":    result.Allocated(),
		"gcs":          result.GCs(),
		"heap_profile": heapPath,
	}).Info("Profiling stopped")
	return result, nil
}

// IsRunning reports whether a session is active
func (p *Profiler) IsRunning() bool {
	return p.running
}
