package remote

import "time"

type CaptureRequest struct {
	// Timeout bounds the capture on the server side, zero keeps the device default.
	Timeout time.Duration
}

type FrameResponse struct {
	Width  int
	Height int
	// Pix is the framebuffer in device byte order.
	Pix []byte
}
