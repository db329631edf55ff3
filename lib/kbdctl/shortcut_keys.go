package kbdctl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupShortcutKeys makes Escape and Ctrl+Shift+Q close the window. With a
// captured cursor these are the only way out short of killing the process.
func SetupShortcutKeys(window *glfw.Window) {
	window.SetKeyCallback(keyCallback)
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Release {
		return
	}
	quit := key == glfw.KeyEscape ||
		(key == glfw.KeyQ && mods&glfw.ModControl != 0 && mods&glfw.ModShift != 0)
	if quit {
		slog.Info("told to quit, closing window", "module", "kbdctl")
		w.SetShouldClose(true)
	}
}
