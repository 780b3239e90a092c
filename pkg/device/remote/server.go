package remote

import (
	"context"
	"net/http"
	"net/rpc"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"screengrab/pkg/proto"
)

// Proxy serves dev over HTTP RPC for the lifetime of the app.
func Proxy(dev proto.Grabber, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	handler, err := NewHandler(dev, logger)
	if err != nil {
		return err
	}
	srv.Handler = handler

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("serve failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("listening")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return dev.Close()
		},
	})

	return nil
}

func NewHandler(dev proto.Grabber, logger *zap.Logger) (http.Handler, error) {
	server := rpc.NewServer()
	if err := server.Register(&Service{dev: dev, logger: logger}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, server)
	return mux, nil
}

type Service struct {
	dev    proto.Grabber
	logger *zap.Logger
}

func (s *Service) Capture(req CaptureRequest, resp *FrameResponse) error {
	start := time.Now()

	ctx := context.Background()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	fb, err := s.dev.Capture(ctx)
	if err != nil {
		s.logger.With(zap.Error(err)).Info("capture failed")
		return err
	}

	b := fb.Bounds()
	resp.Width = b.Dx()
	resp.Height = b.Dy()
	resp.Pix = fb.Pix()

	s.logger.With(zap.String("cost", time.Since(start).String())).Debug("capture served")
	return nil
}
