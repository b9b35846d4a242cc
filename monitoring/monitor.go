// Package monitoring turns a running simulation into a web server so
// the cache hierarchy can be inspected while the host emulator drives
// it.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/cachesim/mem/cache"
)

// Monitor exposes the registered cache levels over HTTP.
type Monitor struct {
	levels []cache.Level

	portNumber int
	actualPort int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterLevel registers a cache level to be monitored.
func (m *Monitor) RegisterLevel(l cache.Level) {
	m.levels = append(m.levels, l)
}

// Port returns the port the server listens on. It is only valid after
// StartServer.
func (m *Monitor) Port() int {
	return m.actualPort
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/list_levels", m.listLevels)
	r.HandleFunc("/api/level/{name}", m.levelStats)
	r.HandleFunc("/api/level_detail/{name}", m.levelDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.HandleFunc("/", m.index)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.actualPort = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(
		os.Stderr,
		"Monitoring simulation with http://localhost:%d\n",
		m.actualPort)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the monitor page in the default browser.
func (m *Monitor) OpenDashboard() {
	err := browser.OpenURL(
		fmt.Sprintf("http://localhost:%d/", m.actualPort))
	dieOnErr(err)
}

func (m *Monitor) index(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, `<html><body><h1>cachesim monitor</h1><ul>
<li><a href="/api/list_levels">/api/list_levels</a></li>
<li>/api/level/{name}</li>
<li>/api/level_detail/{name}</li>
<li><a href="/api/resource">/api/resource</a></li>
<li><a href="/api/profile">/api/profile</a></li>
</ul></body></html>`)
}

func (m *Monitor) listLevels(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, l := range m.levels {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", l.Name())
	}
	fmt.Fprint(w, "]")
}

type levelStatsRsp struct {
	Name     string      `json:"name"`
	Stats    cache.Stats `json:"stats"`
	MissRate float64     `json:"miss_rate"`
}

func (m *Monitor) levelStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	level := m.findLevelOr404(w, name)
	if level == nil {
		return
	}

	stats := level.Stats()
	rsp := levelStatsRsp{
		Name:     level.Name(),
		Stats:    stats,
		MissRate: stats.MissRate(),
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) levelDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	level := m.findLevelOr404(w, name)
	if level == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(level)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findLevelOr404(
	w http.ResponseWriter,
	name string,
) cache.Level {
	for _, l := range m.levels {
		if l.Name() == name {
			return l
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Level not found"))
	dieOnErr(err)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
