package discovery

import (
	"context"
	"image"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"screengrab/pkg/bitmap"
	"screengrab/pkg/proto"
)

const (
	Width     = 800
	Height    = 480
	FrameSize = Width * Height * bitmap.BytesPerPixel

	// Screenshot asks the firmware to dump the active layer.
	Screenshot = 'b'
)

var ErrIncompleteFrame = errors.New("device did not deliver a full frame")

// Open connects to the board over serial and returns a grabber bound to it.
func Open(serial *proto.Serial, logger *zap.Logger, opts ...Option) (proto.Grabber, error) {
	dev := New(serial, logger, opts...)

	if err := serial.Open(&proto.Options{
		DTR:         true,
		RTS:         true,
		BaudRate:    dev.baudRate,
		ReadTimeout: dev.readTimeout,
	}); err != nil {
		return nil, err
	}

	logger.With(
		zap.String("serial", serial.Name()),
		zap.Int("baud", dev.baudRate),
	).Debug("port opened")

	return dev, nil
}

func New(port proto.Port, logger *zap.Logger, opts ...Option) *Discovery {
	d := &Discovery{
		port:   port,
		logger: logger,
		bounds: image.Rect(0, 0, Width, Height),
		// options
		baudRate:    115200 * 4,
		readTimeout: proto.DefaultReadTimeout,
		timeout:     time.Minute,
		idleReads:   20,
		chunkSize:   1024,
		progress:    io.Discard,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discovery is an STM32F7 discovery board running the GUI firmware.
type Discovery struct {
	sync.Mutex
	port   proto.Port
	logger *zap.Logger
	bounds image.Rectangle
	// options
	baudRate    int
	readTimeout time.Duration
	timeout     time.Duration
	idleReads   int
	chunkSize   int
	progress    io.Writer
}

func (d *Discovery) Capture(ctx context.Context) (*bitmap.BGRA, error) {
	d.Lock()
	defer d.Unlock()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if f, ok := d.port.(proto.Flusher); ok {
		if err := f.ResetInputBuffer(); err != nil {
			return nil, errors.Wrap(err, "reset input")
		}
	}

	if err := d.sendCMD(Screenshot); err != nil {
		return nil, err
	}

	buf := make([]byte, FrameSize)
	if err := d.recvFrame(ctx, buf); err != nil {
		return nil, err
	}

	return bitmap.FromBytes(buf, d.bounds)
}

func (d *Discovery) Close() error {
	return d.port.Close()
}
