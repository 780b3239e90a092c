package proto

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var ErrPortNotFound = errors.New("USB port not found")

// DefaultReadTimeout applies when Options leaves ReadTimeout unset.
const DefaultReadTimeout = 500 * time.Millisecond

type Options struct {
	DTR         bool
	RTS         bool
	BaudRate    int
	ReadTimeout time.Duration
}

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

type Serial struct {
	name string
	port serial.Port
}

func (s *Serial) Name() string {
	return s.name
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (s *Serial) Open(opts *Options) error {
	ports, err := s.Ports()
	if err != nil {
		return errors.Wrap(err, "list ports")
	}

	matched := matchPort(ports, s.name)
	if matched == "" {
		return errors.Wrapf(ErrPortNotFound, "no port matches %q", s.name)
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return errors.Wrapf(err, "open %s", matched)
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		_ = port.Close()
		return err
	}

	if err := port.SetRTS(opts.RTS); err != nil {
		_ = port.Close()
		return err
	}

	timeout := opts.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		_ = port.Close()
		return err
	}

	s.port = port
	return nil
}

// matchPort prefers an exact name, then the first port containing name.
func matchPort(ports []string, name string) string {
	for _, p := range ports {
		if p == name {
			return p
		}
	}
	for _, p := range ports {
		if strings.Contains(p, name) {
			return p
		}
	}
	return ""
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func (s *Serial) ResetInputBuffer() error {
	return s.port.ResetInputBuffer()
}

func (s *Serial) Read(p []byte) (n int, err error) {
	return s.port.Read(p)
}

func (s *Serial) Write(p []byte) (n int, err error) {
	return s.port.Write(p)
}
