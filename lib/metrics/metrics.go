package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

var (
	ShadersCompiled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glboot_shaders_compiled_total",
		Help: "Total number of shader compilations, by stage and result",
	}, []string{"stage", "result"})
	ProgramsLinked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glboot_programs_linked_total",
		Help: "Total number of program links, by result",
	}, []string{"result"})
	DebugMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glboot_gl_debug_messages_total",
		Help: "Total number of messages delivered through GL debug output, by severity",
	}, []string{"severity"})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glboot_frames_rendered_total",
		Help: "Total number of frames swapped to the window",
	})
)

// Init makes the per-stage series visible at zero before anything is compiled.
func Init(stages ...string) {
	for _, stage := range stages {
		ShadersCompiled.WithLabelValues(stage, ResultOK).Add(0)
		ShadersCompiled.WithLabelValues(stage, ResultFailed).Add(0)
	}
	ProgramsLinked.WithLabelValues(ResultOK).Add(0)
	ProgramsLinked.WithLabelValues(ResultFailed).Add(0)
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
