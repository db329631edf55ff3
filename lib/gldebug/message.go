// Package gldebug models messages delivered through the GL debug output
// extension and fans them out to interested listeners.
package gldebug

import (
	"fmt"
	"log/slog"
)

// Enum values from GL_ARB_debug_output. They are duplicated here so this
// package does not need cgo.
const (
	SourceAPI            uint32 = 0x8246
	SourceWindowSystem   uint32 = 0x8247
	SourceShaderCompiler uint32 = 0x8248
	SourceThirdParty     uint32 = 0x8249
	SourceApplication    uint32 = 0x824A
	SourceOther          uint32 = 0x824B

	TypeError              uint32 = 0x824C
	TypeDeprecatedBehavior uint32 = 0x824D
	TypeUndefinedBehavior  uint32 = 0x824E
	TypePortability        uint32 = 0x824F
	TypePerformance        uint32 = 0x8250
	TypeOther              uint32 = 0x8251

	SeverityHigh         uint32 = 0x9146
	SeverityMedium       uint32 = 0x9147
	SeverityLow          uint32 = 0x9148
	SeverityNotification uint32 = 0x826B
)

// Message is one debug message as handed to the GL debug callback.
type Message struct {
	Source   uint32 `json:"source"`
	Type     uint32 `json:"type"`
	ID       uint32 `json:"id"`
	Severity uint32 `json:"severity"`
	Text     string `json:"message"`
}

func (m Message) IsError() bool {
	return m.Type == TypeError
}

func (m Message) String() string {
	marker := ""
	if m.IsError() {
		marker = "** GL ERROR **"
	}
	return fmt.Sprintf("GL CALLBACK: %s type = 0x%x, severity = 0x%x, message = %s",
		marker, m.Type, m.Severity, m.Text)
}

// Level maps the GL severity onto a slog level.
func (m Message) Level() slog.Level {
	if m.IsError() {
		return slog.LevelError
	}
	switch m.Severity {
	case SeverityHigh:
		return slog.LevelError
	case SeverityMedium:
		return slog.LevelWarn
	case SeverityLow:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func SeverityName(severity uint32) string {
	switch severity {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	case SeverityNotification:
		return "notification"
	default:
		return "unknown"
	}
}

func SourceName(source uint32) string {
	switch source {
	case SourceAPI:
		return "api"
	case SourceWindowSystem:
		return "window_system"
	case SourceShaderCompiler:
		return "shader_compiler"
	case SourceThirdParty:
		return "third_party"
	case SourceApplication:
		return "application"
	default:
		return "other"
	}
}

// FormatGLFWError renders a windowing backend error code and description.
func FormatGLFWError(code int, description string) string {
	return fmt.Sprintf("Error %d: %s", code, description)
}
