package stats

import (
	"sync"
	"time"

	"github.com/fosdem/glboot/lib/metrics"
)

// Stats is updated by the render loop and read by the API.
type Stats struct {
	Uptime        float64 `json:"uptime"`
	FPS           uint64  `json:"fps"`
	Frames        uint64  `json:"frames"`
	WsClients     int     `json:"ws_clients"`
	DebugMessages uint64  `json:"debug_messages"`

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time

	mu sync.Mutex
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	return s
}

// Update counts one rendered frame.
func (s *Stats) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.Frames++
	s.frameCounter++
	if now.Sub(s.frameTimer) >= 1*time.Second {
		s.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
	}

	s.Uptime = float64(now.Sub(s.start).Nanoseconds()) / 1e9
	metrics.FramesRendered.Inc()
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WsClients = n
}

func (s *Stats) SetDebugMessages(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DebugMessages = n
}

// Snapshot returns a copy safe to marshal on another goroutine.
func (s *Stats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Uptime:        s.Uptime,
		FPS:           s.FPS,
		Frames:        s.Frames,
		WsClients:     s.WsClients,
		DebugMessages: s.DebugMessages,
	}
}
