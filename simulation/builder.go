package simulation

import (
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/monitoring"
)

// Builder can be used to build a simulation.
type Builder struct {
	l1Config string
	l2Config string
	l3Config string

	outputFileName string

	missTraceFunc cache.MissTraceFunc

	recordingOn   bool
	recordingPath string

	monitorOn   bool
	monitorPort int

	lfsrSeed uint32
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		lfsrSeed: 1,
	}
}

// WithL1 sets the L1 configuration string. Both the instruction and
// the data cache use it.
func (b Builder) WithL1(config string) Builder {
	b.l1Config = config
	return b
}

// WithL2 sets the L2 configuration string.
func (b Builder) WithL2(config string) Builder {
	b.l2Config = config
	return b
}

// WithL3 sets the L3 configuration string.
func (b Builder) WithL3(config string) Builder {
	b.l3Config = config
	return b
}

// WithOutputFileName directs the banner and the final statistics into
// a file instead of standard output.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMissTraceFunc installs the callback fired by the outermost level
// on each miss.
func (b Builder) WithMissTraceFunc(fn cache.MissTraceFunc) Builder {
	b.missTraceFunc = fn
	return b
}

// WithDataRecording stores the miss trace and the final statistics in
// an SQLite database at path. An empty path picks a generated name.
// When a callback is also set with WithMissTraceFunc, that callback
// receives the misses instead and the database holds only the final
// statistics.
func (b Builder) WithDataRecording(path string) Builder {
	b.recordingOn = true
	b.recordingPath = path
	return b
}

// WithMonitoring starts the monitoring server when the simulation is
// built.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithLFSRSeed sets the replacement seed used by every level.
func (b Builder) WithLFSRSeed(seed uint32) Builder {
	b.lfsrSeed = seed
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.l1Config == "" {
		panic("cannot build a simulation without L1 caches")
	}
	if b.l3Config != "" && b.l2Config == "" {
		panic("cannot define L3 without L2 cache")
	}
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

// Build builds the simulation and arms its pipeline.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := NewSimulation()
	s.lfsrSeed = b.lfsrSeed

	if b.recordingOn {
		path := b.recordingPath
		if path == "" {
			path = "cachesim_" + s.id
		}
		s.recorder = datarecording.NewDataRecorder(path)
	}

	s.missTrace = b.missTraceFunc
	if s.missTrace == nil && s.recorder != nil {
		s.missTrace = RecorderMissTrace(s.recorder)
	}

	s.InitL1(b.l1Config)
	if b.l2Config != "" {
		s.InitL2(b.l2Config)
	}
	if b.l3Config != "" {
		s.InitL3(b.l3Config)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		for _, level := range s.levels() {
			s.monitor.RegisterLevel(level)
		}
		s.monitor.StartServer()
	}

	s.Start(b.outputFileName)

	return s
}
