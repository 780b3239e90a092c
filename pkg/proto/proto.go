package proto

import (
	"context"
	"io"

	"screengrab/pkg/bitmap"
)

// Grabber captures one frame from a display device.
type Grabber interface {
	Capture(ctx context.Context) (*bitmap.BGRA, error)
	Close() error
}

// Port is the byte stream a device talks over. A read that times out
// returns 0 bytes and a nil error.
type Port interface {
	io.ReadWriteCloser
}

// Flusher is implemented by ports that can drop pending input.
type Flusher interface {
	ResetInputBuffer() error
}
