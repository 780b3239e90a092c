package virtual

import (
	"sync"

	"github.com/pkg/errors"
)

// NewPort simulates the board on the other end of a serial line. Writing
// trigger queues frame for reading, other bytes are ignored.
func NewPort(trigger byte, frame []byte, opts ...PortOption) *Port {
	p := &Port{
		trigger: trigger,
		frame:   frame,
		limit:   -1,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

type PortOption func(p *Port)

// WithLimit makes the device go silent after n bytes of the frame.
func WithLimit(n int) PortOption {
	return func(p *Port) {
		p.limit = n
	}
}

// WithMaxRead caps how many bytes a single Read returns.
func WithMaxRead(n int) PortOption {
	return func(p *Port) {
		p.maxRead = n
	}
}

// WithTrailer appends extra bytes after the frame.
func WithTrailer(bs []byte) PortOption {
	return func(p *Port) {
		p.trailer = bs
	}
}

type Port struct {
	sync.Mutex
	trigger byte
	frame   []byte
	trailer []byte
	limit   int
	maxRead int

	pending []byte
	written []byte
	reads   int
	closed  bool
}

func (p *Port) Write(bs []byte) (int, error) {
	p.Lock()
	defer p.Unlock()

	if p.closed {
		return 0, errors.New("port closed")
	}

	p.written = append(p.written, bs...)
	for _, b := range bs {
		if b != p.trigger {
			continue
		}
		out := append(append([]byte{}, p.frame...), p.trailer...)
		if p.limit >= 0 && p.limit < len(out) {
			out = out[:p.limit]
		}
		p.pending = append(p.pending, out...)
	}

	return len(bs), nil
}

// Read behaves like a serial port whose read timeout expired when nothing
// is pending: it returns 0 and no error.
func (p *Port) Read(bs []byte) (int, error) {
	p.Lock()
	defer p.Unlock()

	if p.closed {
		return 0, errors.New("port closed")
	}

	p.reads++
	if p.maxRead > 0 && len(bs) > p.maxRead {
		bs = bs[:p.maxRead]
	}

	n := copy(bs, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *Port) ResetInputBuffer() error {
	p.Lock()
	defer p.Unlock()
	p.pending = nil
	return nil
}

func (p *Port) Close() error {
	p.Lock()
	defer p.Unlock()
	p.closed = true
	return nil
}

// Written returns everything sent to the device.
func (p *Port) Written() []byte {
	p.Lock()
	defer p.Unlock()
	return append([]byte{}, p.written...)
}

// Pending is how many bytes the device still has queued.
func (p *Port) Pending() int {
	p.Lock()
	defer p.Unlock()
	return len(p.pending)
}

// Reads counts calls to Read.
func (p *Port) Reads() int {
	p.Lock()
	defer p.Unlock()
	return p.reads
}

// Stale queues bytes as if left over from an earlier transfer.
func (p *Port) Stale(bs []byte) {
	p.Lock()
	defer p.Unlock()
	p.pending = append(p.pending, bs...)
}
