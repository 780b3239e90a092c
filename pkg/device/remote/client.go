package remote

import (
	"context"
	"image"
	"net/rpc"
	"strings"
	"time"

	"github.com/pkg/errors"

	"screengrab/pkg/bitmap"
	"screengrab/pkg/device/discovery"
	"screengrab/pkg/proto"
)

func New(addr string) (proto.Grabber, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

// Capture stops waiting when ctx is done, the server still finishes its read.
func (c *Client) Capture(ctx context.Context) (*bitmap.BGRA, error) {
	var req CaptureRequest
	if deadline, ok := ctx.Deadline(); ok {
		req.Timeout = time.Until(deadline)
	}

	var resp FrameResponse
	call := c.rpc.Go("Service.Capture", req, &resp, make(chan *rpc.Call, 1))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.Done:
	}

	if call.Error != nil {
		return nil, remoteError(call.Error)
	}

	return bitmap.FromBytes(resp.Pix, image.Rect(0, 0, resp.Width, resp.Height))
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

// remoteError restores sentinels that net/rpc flattens into strings.
func remoteError(err error) error {
	var se rpc.ServerError
	if !errors.As(err, &se) {
		return err
	}

	msg := string(se)
	for _, sentinel := range []error{discovery.ErrIncompleteFrame, proto.ErrPortNotFound} {
		if msg == sentinel.Error() {
			return sentinel
		}
		if reason := strings.TrimSuffix(msg, ": "+sentinel.Error()); reason != msg {
			return errors.Wrap(sentinel, reason)
		}
	}

	return err
}
