package discovery

import (
	"io"
	"time"
)

type Option func(d *Discovery)

func WithBaudRate(baud int) Option {
	return func(d *Discovery) {
		d.baudRate = baud
	}
}

// WithReadTimeout bounds a single read on the port. A read without a
// timeout never reports idle, so values <= 0 keep the default.
func WithReadTimeout(timeout time.Duration) Option {
	return func(d *Discovery) {
		if timeout > 0 {
			d.readTimeout = timeout
		}
	}
}

// WithTimeout bounds a whole capture, zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Discovery) {
		d.timeout = timeout
	}
}

// WithIdleReads gives up after n reads in a row returned nothing, zero disables it.
func WithIdleReads(n int) Option {
	return func(d *Discovery) {
		d.idleReads = n
	}
}

func WithChunkSize(size int) Option {
	return func(d *Discovery) {
		if size > 0 {
			d.chunkSize = size
		}
	}
}

// WithProgress receives a copy of every chunk read from the device.
func WithProgress(w io.Writer) Option {
	return func(d *Discovery) {
		d.progress = w
	}
}
