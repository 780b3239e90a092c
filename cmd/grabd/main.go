package main

import (
	"net/http"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"screengrab/pkg/device/discovery"
	"screengrab/pkg/device/remote"
	"screengrab/pkg/device/virtual"
	"screengrab/pkg/proto"
)

var serial = flag.String("serial", "ttyACM0", "serial name or \"virtual\"")
var listen = flag.String("listen", ":9123", "listen addr")
var baud = flag.Int("baud", 115200*4, "serial baud rate")
var timeout = flag.Duration("timeout", time.Minute, "capture timeout")

func main() {
	flag.Parse()

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			func() (*zap.Logger, error) {
				return zap.NewDevelopment()
			},
			func() (*proto.Serial, *http.Server) {
				return proto.NewSerial(*serial),
					&http.Server{Addr: *listen}
			},
			func(s *proto.Serial, logger *zap.Logger) (proto.Grabber, error) {
				if *serial == "virtual" {
					return virtual.Mock(logger, discovery.Width, discovery.Height), nil
				}
				return discovery.Open(s, logger,
					discovery.WithBaudRate(*baud),
					discovery.WithTimeout(*timeout),
				)
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
