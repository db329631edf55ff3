package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fosdem/glboot/lib/config"
	"github.com/fosdem/glboot/lib/gldebug"
	"github.com/fosdem/glboot/lib/metrics"
	"github.com/fosdem/glboot/lib/stats"
	"github.com/gorilla/websocket"
)

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.ApiCfg
	debug  *gldebug.Hub
	logger *slog.Logger

	Stats *stats.Stats

	// ShutdownRequested is polled by the render loop.
	ShutdownRequested atomic.Bool

	mu        sync.Mutex
	glInfo    any
	program   ProgramStatus
	wsClients map[*websocket.Conn]bool
}

type ProgramStatus struct {
	Vertex   string `json:"vertex" example:"shaders/basic.vert"`
	Fragment string `json:"fragment" example:"shaders/basic.frag"`
	Linked   bool   `json:"linked"`
}

type Status struct {
	GL      any          `json:"gl"`
	Program ProgramStatus `json:"program"`
	Stats   stats.Stats  `json:"stats"`
}

func New(cfg *config.ApiCfg, hub *gldebug.Hub, st *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.debug = hub
	a.logger = slog.With("module", "api")
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = st
	if a.Stats == nil {
		a.Stats = stats.New()
	}

	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.HandleFunc("POST /api/kill", a.suicide)
	a.mux.HandleFunc("/api/status", a.getStatus)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	return a
}

// SetGLInfo records the driver description returned in /api/status.
func (a *Api) SetGLInfo(info any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.glInfo = info
}

func (a *Api) SetProgram(p ProgramStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.program = p
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	a.logger.Info("listening", "bind", a.cfg.Bind)
	return a.srv.ListenAndServe()
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

func (a *Api) status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Status{
		GL:      a.glInfo,
		Program: a.program,
		Stats:   a.Stats.Snapshot(),
	}
}

// @Summary	Get driver, program and render loop status
// @Router		/api/status [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	Status
func (a *Api) getStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.status())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode status: %s", err), http.StatusInternalServerError)
		return
	}
}

// @Summary	Close the window and exit
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	a.logger.Info("shutting down as per api request")
	a.ShutdownRequested.Store(true)
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.logger.Warn("could not write response", "err", err)
		return
	}
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}
