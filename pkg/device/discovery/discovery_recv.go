package discovery

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func (d *Discovery) sendCMD(code byte) error {
	start := time.Now()
	if _, err := d.port.Write([]byte{code}); err != nil {
		return errors.Wrap(err, "send command")
	}

	d.logger.With(
		zap.String("cost", time.Since(start).String()),
		zap.String("data", fmt.Sprintf("%x", code)),
	).Debug("transfer")

	return nil
}

// recvFrame fills buf from the port. Nothing past len(buf) is read.
func (d *Discovery) recvFrame(ctx context.Context, buf []byte) error {
	var recv, idle int
	start := time.Now()

	incomplete := func(reason string) error {
		d.logger.With(
			zap.String("recv", bytesize.New(float64(recv)).String()),
			zap.String("cost", time.Since(start).String()),
		).Info("frame incomplete")
		return errors.Wrapf(ErrIncompleteFrame, "%s after %d of %d bytes", reason, recv, len(buf))
	}

	// A read blocked on the port only returns once the port is closed.
	var mu sync.Mutex
	var finished bool
	done := make(chan struct{})
	defer func() {
		mu.Lock()
		finished = true
		mu.Unlock()
		close(done)
	}()

	go func() {
		select {
		case <-done:
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			if !finished {
				d.logger.With(zap.Error(ctx.Err())).Info("closing port to abort read")
				_ = d.port.Close()
			}
		}
	}()

	for recv < len(buf) {
		if err := ctx.Err(); err != nil {
			return incomplete(err.Error())
		}

		end := lo.Ternary(recv+d.chunkSize < len(buf), recv+d.chunkSize, len(buf))
		n, err := d.port.Read(buf[recv:end])
		if n > 0 {
			idle = 0
			_, _ = d.progress.Write(buf[recv : recv+n])
			recv += n
		}

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return incomplete(ctxErr.Error())
			}
			if !errors.Is(err, io.EOF) {
				return errors.Wrap(err, "read frame")
			}
			if recv < len(buf) {
				return incomplete("port closed")
			}
		}

		if n == 0 {
			idle++
			if d.idleReads > 0 && idle >= d.idleReads {
				return incomplete(fmt.Sprintf("%d empty reads", idle))
			}
		}
	}

	d.logger.With(
		zap.String("recv", bytesize.New(float64(recv)).String()),
		zap.String("cost", time.Since(start).String()),
	).Debug("frame received")

	return nil
}
