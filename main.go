package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"chime-frame/pkg/logger"
	"chime-frame/pkg/motor"
	"chime-frame/pkg/settings"
	"chime-frame/screens/terminal"
)

// CLI is the command line. Every flag can also be set from the environment,
// and a .env file next to the binary is loaded before parsing.
type CLI struct {
	Title    string `help:"Window title." default:"Chime Frame" env:"GAME_TITLE"`
	Settings string `help:"Settings file (.json, .yaml or .db)." type:"path" default:"~/.config/chime-frame/settings.json" env:"CHIME_SETTINGS"`
	Surface  string `help:"Where to draw the settings screen." enum:"sdl,terminal" default:"sdl" env:"CHIME_SURFACE"`

	Motor    string `help:"Vibration motor driver." enum:"log,gpio,sdl" default:"log" env:"CHIME_MOTOR"`
	GPIOPath string `name:"gpio-path" help:"Sysfs value file (or pin directory) of the motor GPIO." default:"/sys/class/gpio/gpio17/value" env:"CHIME_GPIO_PATH"`

	S3Bucket string `name:"s3-bucket" help:"Mirror saved settings to this S3 bucket." env:"S3_BUCKET"`
	S3Prefix string `name:"s3-prefix" help:"Key prefix inside the S3 bucket." default:"chime-frame" env:"S3_PREFIX"`
	S3Region string `name:"s3-region" help:"Region of the S3 bucket." env:"AWS_DEFAULT_REGION"`

	Font   string `help:"TrueType font to render with." type:"path" env:"CHIME_FONT"`
	Width  int32  `help:"Window width when the display size is unknown." default:"240" env:"CHIME_WIDTH"`
	Height int32  `help:"Window height when the display size is unknown." default:"240" env:"CHIME_HEIGHT"`

	LogDir string `name:"log-dir" help:"Directory for rotated log files." type:"path" env:"CHIME_LOG_DIR"`
	Debug  bool   `help:"Enable debug logging." env:"DEBUG"`
}

func main() {
	// SDL must stay on the main thread.
	runtime.LockOSThread()

	envErr := godotenv.Load()

	var cli CLI
	kong.Parse(&cli,
		kong.Name("chime-frame"),
		kong.Description("Hourly haptic chimes with an on-device settings screen."),
		kong.UsageOnError(),
	)

	if err := logger.Init(logger.Config{
		Debug:   cli.Debug,
		Dir:     cli.LogDir,
		Console: cli.Surface != "terminal",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		logger.Debug(".env file not loaded", "error", envErr)
	}

	if err := run(cli); err != nil {
		logger.Error("Exiting", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	var opts []settings.Option
	if cli.S3Bucket != "" {
		mirror, err := settings.NewS3Mirror(cli.S3Bucket, cli.S3Prefix, cli.S3Region)
		if err != nil {
			logger.Warn("S3 mirror disabled", "error", err)
		} else {
			opts = append(opts, settings.WithMirror(mirror))
		}
	}

	store, err := settings.OpenPath(cli.Settings, opts...)
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close settings", "error", err)
		}
	}()
	logger.Info("Settings loaded", "device", store.DeviceID(),
		"frequency", store.GetChimesFrequency(), "duration", store.GetChimesDuration())

	vibe, err := motor.Open(cli.Motor, cli.GPIOPath)
	if err != nil {
		if errors.Is(err, motor.ErrUnknownDriver) {
			return err
		}
		logger.Warn("Motor unavailable, logging buzzes instead", "driver", cli.Motor, "error", err)
		vibe = motor.New(motor.LogDriver{})
	}
	defer vibe.Close()

	if cli.Surface == "terminal" {
		return terminal.Run(store, vibe)
	}
	return runSDL(cli, store, vibe)
}
