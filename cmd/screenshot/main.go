package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"screengrab/pkg/bitmap"
	"screengrab/pkg/device/discovery"
	"screengrab/pkg/device/remote"
	"screengrab/pkg/device/virtual"
	"screengrab/pkg/proto"
	"screengrab/pkg/snapshot"
)

var serial = flag.String("serial", "ttyACM0", "serial name, remote addr or \"virtual\"")
var baud = flag.Int("baud", 115200*4, "serial baud rate")
var output = flag.String("output", "screenshot.png", "output image file")
var timeout = flag.Duration("timeout", time.Minute, "give up when the frame is not complete by then")
var readTimeout = flag.Duration("read-timeout", 500*time.Millisecond, "single read timeout")
var idle = flag.Int("idle", 20, "give up after this many empty reads in a row")
var quiet = flag.Bool("quiet", false, "hide the progress bar")
var debug = flag.Bool("debug", false, "set debug")

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lo.Ternary(*debug, zap.DebugLevel, zap.InfoLevel))
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func open(logger *zap.Logger) (proto.Grabber, error) {
	switch {
	case *serial == "virtual":
		return virtual.Mock(logger, discovery.Width, discovery.Height), nil
	case strings.Contains(*serial, ":"):
		return remote.New(*serial)
	}

	var progress io.Writer = io.Discard
	if !*quiet {
		progress = progressbar.DefaultBytes(discovery.FrameSize, "receiving frame")
	}

	return discovery.Open(
		proto.NewSerial(*serial),
		logger,
		discovery.WithBaudRate(*baud),
		discovery.WithReadTimeout(*readTimeout),
		discovery.WithTimeout(*timeout),
		discovery.WithIdleReads(*idle),
		discovery.WithProgress(progress),
	)
}

func main() {
	flag.Parse()

	logger := newLogger()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if err := run(ctx, logger, afero.NewOsFs()); err != nil {
		logger.With(zap.Error(err)).Error("screenshot failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, fs afero.Fs) error {
	dev, err := open(logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = dev.Close()
	}()

	fb, err := dev.Capture(ctx)
	if err != nil {
		return err
	}

	return snapshot.New(fs, logger).Save(*output, bitmap.Decode(fb))
}
