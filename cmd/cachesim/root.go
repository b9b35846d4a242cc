// Package main implements the cachesim command. It replays a memory
// trace file through a configurable cache hierarchy and reports the
// per-level statistics.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/mem"
	"github.com/sarchlab/cachesim/memtrace"
	"github.com/sarchlab/cachesim/simulation"
)

var (
	l1Config string
	l2Config string
	l3Config string

	outputFileName string
	recordingPath  string
	recordingOn    bool

	monitorOn   bool
	monitorPort int

	lfsrSeed uint32
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "cachesim <tracefile>",
	Short: "Replay a memory trace through a simulated cache hierarchy",
	Long: `cachesim reads a memory trace with one access per line (` +
		`"L <addr> size <n>" for loads, "S" for stores, "F" for ` +
		`instruction fetches) and classifies each access against a ` +
		`configurable L1/L2/L3 cache hierarchy. Each level is described ` +
		`as sets:ways:linesize. Per-level statistics are printed when ` +
		`the replay finishes.`,
	Args: cobra.ExactArgs(1),
	Run:  run,
}

func init() {
	// A .env file can override the built-in defaults.
	_ = godotenv.Load()

	rootCmd.Flags().StringVar(&l1Config, "l1",
		envOrDefault("CACHESIM_L1", "64:4:64"),
		"L1 cache configuration (sets:ways:linesize)")
	rootCmd.Flags().StringVar(&l2Config, "l2",
		envOrDefault("CACHESIM_L2", ""),
		"L2 cache configuration, empty to disable")
	rootCmd.Flags().StringVar(&l3Config, "l3",
		envOrDefault("CACHESIM_L3", ""),
		"L3 cache configuration, empty to disable")
	rootCmd.Flags().StringVarP(&outputFileName, "output", "o", "",
		"write the banner and statistics to this file instead of stdout")
	rootCmd.Flags().BoolVar(&recordingOn, "record", false,
		"record the miss trace and final statistics in SQLite")
	rootCmd.Flags().StringVar(&recordingPath, "record-path", "",
		"database path for --record, without the .sqlite3 suffix")
	rootCmd.Flags().BoolVar(&monitorOn, "monitor", false,
		"serve live statistics over HTTP")
	rootCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"port for --monitor, 0 picks a random port")
	rootCmd.Flags().Uint32Var(&lfsrSeed, "seed", 1,
		"replacement LFSR seed")
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func run(_ *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			atexit.Exit(1)
		}
	}()

	sim := buildSimulation()
	atexit.Register(sim.Terminate)

	traceFile, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open trace file: %s\n", err)
		atexit.Exit(1)
	}
	defer traceFile.Close()

	replay(sim, traceFile)
}

func buildSimulation() *simulation.Simulation {
	builder := simulation.MakeBuilder().
		WithL1(l1Config).
		WithOutputFileName(outputFileName).
		WithLFSRSeed(lfsrSeed)

	if l2Config != "" {
		builder = builder.WithL2(l2Config)
	}
	if l3Config != "" {
		builder = builder.WithL3(l3Config)
	}
	if recordingOn {
		builder = builder.WithDataRecording(recordingPath)
	}
	if monitorOn {
		builder = builder.WithMonitoring()
		if monitorPort != 0 {
			builder = builder.WithMonitorPort(monitorPort)
		}
	}

	return builder.Build()
}

func replay(sim *simulation.Simulation, traceFile io.Reader) {
	reader := memtrace.NewReader(traceFile)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot read trace: %s\n", err)
			atexit.Exit(1)
		}

		switch record.Type {
		case mem.Load:
			sim.Load(0, record.Addr, record.Size)
		case mem.Store:
			sim.Store(0, record.Addr, record.Size)
		case mem.Fetch:
			sim.Fetch(0, record.Addr, record.Size)
		}
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
