package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"chime-frame/pkg/chimes"
	"chime-frame/pkg/logger"
	"chime-frame/pkg/performance"
	"chime-frame/screens/root"
	"chime-frame/ui"
)

const targetFPS = 30

// runSDL opens a fullscreen window and runs the settings UI until the user
// quits or the window is closed.
func runSDL(cli CLI, store chimes.Store, actuator chimes.Actuator) error {
	if err := initializeSDL2(); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}
	defer func() {
		logger.Debug("Shutting down SDL2")
		sdl.Quit()
	}()

	width, height := getDisplayDimensions(cli.Width, cli.Height)
	logger.Info("Starting", "title", cli.Title, "width", width, "height", height)

	window, err := createWindow(cli.Title, width, height)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := createRenderer(window)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer renderer.Destroy()

	fonts, err := ui.LoadFonts(cli.Font, height)
	if err != nil {
		logger.Warn("Drawing without some fonts", "error", err)
	}
	defer fonts.Close()

	screen := root.NewRootScreen(window, renderer, fonts, store, actuator)
	defer screen.Close()

	return runGameLoop(screen)
}

// initializeSDL2 tries the video drivers that make sense for this platform,
// honoring SDL_VIDEODRIVER first.
func initializeSDL2() error {
	var drivers []string
	if env := os.Getenv("SDL_VIDEODRIVER"); env != "" {
		drivers = append(drivers, env)
	}
	if runtime.GOOS == "darwin" {
		drivers = append(drivers, "cocoa", "software", "dummy")
	} else {
		drivers = append(drivers, "kmsdrm", "fbcon", "wayland", "x11", "software", "dummy")
	}

	for _, driver := range drivers {
		if err := tryDriver(driver); err != nil {
			logger.Debug("SDL2 driver failed", "driver", driver, "error", err)
			continue
		}
		logger.Info("SDL2 initialized", "driver", driver)
		return nil
	}
	return errors.New("all SDL2 video drivers failed")
}

func tryDriver(driver string) error {
	sdl.SetHint(sdl.HINT_VIDEODRIVER, driver)
	switch driver {
	case "kmsdrm":
		sdl.SetHint("SDL_KMSDRM_REQUIRE_DRM_MASTER", "1")
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "opengles2")
	case "fbcon":
		sdl.SetHint("SDL_FBDEV", "/dev/fb0")
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "software")
	case "cocoa":
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "opengl")
	default:
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "software")
	}
	sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	if _, err := sdl.GetCurrentVideoDriver(); err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return fmt.Errorf("failed to get video driver: %w", err)
	}
	return nil
}

// getDisplayDimensions returns the size of the first display, or the
// fallback when it cannot be read.
func getDisplayDimensions(fallbackWidth, fallbackHeight int32) (int32, int32) {
	mode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil || mode.W == 0 || mode.H == 0 {
		logger.Warn("Failed to get display mode, using fallback", "error", err)
		return fallbackWidth, fallbackHeight
	}
	return mode.W, mode.H
}

func createWindow(title string, width, height int32) (*sdl.Window, error) {
	return sdl.CreateWindow(title, 0, 0, width, height, sdl.WINDOW_SHOWN|sdl.WINDOW_FULLSCREEN)
}

// createRenderer prefers an accelerated renderer and falls back to software.
func createRenderer(window *sdl.Window) (*sdl.Renderer, error) {
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		logger.Debug("Hardware renderer failed, trying software", "error", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, err
		}
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return renderer, nil
}

// runGameLoop drives update and draw at targetFPS. ErrQuit from the screen
// ends the loop without an error.
func runGameLoop(screen *root.RootScreen) error {
	frameTime := time.Second / targetFPS
	monitor := performance.NewFrameMonitor(targetFPS*5, frameTime)

	for {
		start := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}

		if err := screen.Update(); err != nil {
			if errors.Is(err, root.ErrQuit) {
				return nil
			}
			return fmt.Errorf("update: %w", err)
		}
		updated := time.Now()

		if err := screen.Draw(); err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		drawn := time.Now()

		monitor.Record(updated.Sub(start), drawn.Sub(updated))
		if monitor.Frames()%(targetFPS*60) == 0 {
			r := monitor.Report()
			logger.Debug("Frame timings",
				"avg", r.AvgFrame, "max", r.MaxFrame, "overruns", r.Overruns,
				"heapMB", r.HeapMB, "overBudget", r.OverBudget)
		}

		if elapsed := time.Since(start); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
