package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fosdem/glboot/lib/api"
	"github.com/fosdem/glboot/lib/config"
	"github.com/fosdem/glboot/lib/gldebug"
	"github.com/fosdem/glboot/lib/kbdctl"
	"github.com/fosdem/glboot/lib/metrics"
	"github.com/fosdem/glboot/lib/rendering"
	"github.com/fosdem/glboot/lib/rendering/shaders"
	"github.com/fosdem/glboot/lib/stats"
	"github.com/fosdem/glboot/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
)

// MakeWindowAndRun opens the window, builds the configured program and
// draws it over the whole window until the window is closed. It must run
// on the main, locked OS thread.
func MakeWindowAndRun(cfg *config.Config) error {
	logger := slog.With("module", "bootstrap")
	metrics.Init(shaders.Vertex.String(), shaders.Fragment.String())

	hub := gldebug.NewHub()
	st := stats.New()

	var a *api.Api
	if cfg.Api != nil {
		a = api.New(cfg.Api, hub, st)
		a.SetProgram(api.ProgramStatus{
			Vertex:   cfg.Program.Vertex.String(),
			Fragment: cfg.Program.Fragment.String(),
		})
		go func() {
			err := a.Serve()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("api server stopped", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = a.Shutdown(ctx)
		}()
	}

	glctx, err := rendering.New(cfg, hub)
	if err != nil {
		return err
	}
	defer glctx.Close()

	if a != nil {
		a.SetGLInfo(glctx.Info())
	}

	program, err := shaders.BuildProgram(rendering.Driver{},
		cfg.Program.Vertex.String(), cfg.Program.Fragment.String())
	if err != nil {
		return err
	}
	defer program.Close()

	if a != nil {
		a.SetProgram(api.ProgramStatus{
			Vertex:   cfg.Program.Vertex.String(),
			Fragment: cfg.Program.Fragment.String(),
			Linked:   true,
		})
	}

	kbdctl.SetupShortcutKeys(glctx.Window)

	quad := rendering.NewFullscreenTriangle()
	defer quad.Close()

	program.Use()
	program.UniformMat4("u_projection", mgl32.Ident4())

	var deltaTimer utils.DeltaTimer
	for !glctx.ShouldClose() {
		if a != nil && a.ShutdownRequested.Load() {
			break
		}

		deltaTimer.Next()
		width, height := glctx.Window.GetFramebufferSize()
		glctx.Clear()
		program.Use()
		program.UniformFloat32("u_time", float32(deltaTimer.Elapsed.Seconds()))
		program.UniformVec3("u_resolution", mgl32.Vec3{float32(width), float32(height), 1})
		quad.Draw()

		glctx.SwapBuffers()

		// Maintenance
		st.Update()
		received, _ := hub.Counts()
		st.SetDebugMessages(received)
		glctx.PollEvents()
	}

	logger.Info("window closed", "frames", st.Snapshot().Frames)
	return nil
}
