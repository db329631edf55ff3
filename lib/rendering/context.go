package rendering

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/glboot/lib/config"
	"github.com/fosdem/glboot/lib/gldebug"
	"github.com/fosdem/glboot/lib/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	gopointer "github.com/mattn/go-pointer"
)

const (
	contextVersionMajor = 4
	contextVersionMinor = 1

	debugOutputExtension = "GL_ARB_debug_output"
)

// Context owns the window, its GL context and the debug output hookup.
// Only one may exist per process and every method must be called from the
// thread that created it.
type Context struct {
	Window *glfw.Window

	info      Info
	debug     *gldebug.Hub
	userParam unsafe.Pointer
	logger    *slog.Logger
}

// New initialises GLFW, opens the window described by cfg, makes its
// context current and loads GL. Debug messages go to hub, which may be
// nil when nobody listens. Unset options in cfg are filled with defaults.
func New(cfg *config.Config, hub *gldebug.Hub) (*Context, error) {
	cfg.ApplyDefaults()
	c := &Context{
		debug:  hub,
		logger: slog.With("module", "rendering"),
	}
	if c.debug == nil {
		c.debug = gldebug.NewHub()
	}

	c.logger.Debug("initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", glfwError(err))
	}

	glfw.WindowHint(glfw.ContextVersionMajor, contextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, contextVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfwBool(*cfg.Window.Resizable))
	glfw.WindowHint(glfw.Floating, glfwBool(*cfg.Window.Floating))
	if *cfg.DebugOutput {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", glfwError(err))
	}
	c.Window = window

	if *cfg.Window.CaptureCursor {
		// hide the cursor and hold it in the center of the window
		window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	window.SetFramebufferSizeCallback(framebufferSizeCallback)
	window.MakeContextCurrent()

	c.info, err = Init()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.logger.Info(fmt.Sprintf("OpenGL version %s / %s / %s", c.info.Vendor, c.info.Renderer, c.info.Version))

	if *cfg.DebugOutput {
		c.enableDebugOutput()
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(utils.ColourFloats(utils.ColourParse(cfg.ClearColour)))

	return c, nil
}

func (c *Context) enableDebugOutput() {
	if !glfw.ExtensionSupported(debugOutputExtension) {
		c.logger.Warn(fmt.Sprintf("%s is not available, continuing without debug output", debugOutputExtension))
		return
	}

	c.userParam = gopointer.Save(c)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS_ARB)
	gl.DebugMessageCallbackARB(debugMessageCallback, c.userParam)
	c.info.DebugOutput = true
	c.logger.Debug("debug output enabled")
}

func debugMessageCallback(source uint32, gltype uint32, id uint32, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	c, ok := gopointer.Restore(userParam).(*Context)
	if !ok || c == nil {
		return
	}
	c.debug.Publish(gldebug.Message{
		Source:   source,
		Type:     gltype,
		ID:       id,
		Severity: severity,
		Text:     message,
	})
}

// framebufferSizeCallback only keeps the viewport in sync with the window.
func framebufferSizeCallback(_ *glfw.Window, width int, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (c *Context) Info() Info {
	return c.info
}

func (c *Context) ShouldClose() bool {
	return c.Window.ShouldClose()
}

// Clear clears the colour and depth buffers.
func (c *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *Context) SwapBuffers() {
	c.Window.SwapBuffers()
}

func (c *Context) PollEvents() {
	glfw.PollEvents()
}

// Close tears down the debug hookup, the window and GLFW. It is safe to
// call on a partially initialised context and more than once.
func (c *Context) Close() {
	if c.userParam != nil {
		// late messages restore to nil and are dropped by the callback
		gopointer.Unref(c.userParam)
		c.userParam = nil
	}
	if c.Window != nil {
		c.Window.Destroy()
		c.Window = nil
		glfw.Terminate()
	}
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// glfwError rewrites binding errors into the "Error <code>: <description>"
// form GLFW error callbacks traditionally print.
func glfwError(err error) error {
	var gerr *glfw.Error
	if errors.As(err, &gerr) {
		return errors.New(gldebug.FormatGLFWError(int(gerr.Code), gerr.Desc))
	}
	return err
}
