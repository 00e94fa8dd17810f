// Package main contains simulated instruments server.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/systems/logger"
	"github.com/fastlab-io/server/systems/plico"
	"github.com/fastlab-io/server/systems/simulator"
	"github.com/jessevdk/go-flags"
)

// Simulator arguments.
type options struct {
	Host       string `long:"host" default:"localhost" description:"Interface to listen on."`
	CameraPort int    `long:"camera-port" default:"7100" description:"Camera server port."`
	MotorPort  int    `long:"motor-port" default:"7200" description:"Motor server port."`
	Width      int    `long:"width" default:"640" description:"Frame width."`
	Height     int    `long:"height" default:"480" description:"Frame height."`
	Axes       int    `long:"axes" default:"2" description:"Number of motor axes."`
	LogLevel   string `short:"l" long:"level" default:"info" description:"Log level."`
}

func main() {
	opts := &options{}
	_, err := flags.Parse(opts)
	if err != nil {
		os.Exit(1)
	}

	log, err := logger.NewLoggerProvider(&logger.ConstructLogger{
		Provider: logger.ProviderConsole,
		Level:    opts.LogLevel,
	})
	if err != nil {
		panic(err)
	}

	servers := []*plico.Server{
		serve(log, opts.Host, opts.CameraPort, &plico.ConstructServer{
			Name:   "simulated camera",
			Camera: simulator.NewCamera(opts.Width, opts.Height),
			Logger: logger.NewPluginLogger(&logger.ConstructPluginLogger{
				SystemLogger: log, System: "camera", Provider: "simulator"}),
		}),
		serve(log, opts.Host, opts.MotorPort, &plico.ConstructServer{
			Name:  "simulated motor",
			Motor: simulator.NewMotor(opts.Axes),
			Logger: logger.NewPluginLogger(&logger.ConstructPluginLogger{
				SystemLogger: log, System: "motor", Provider: "simulator"}),
		}),
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("Received stop command, exiting", common.LogSystemToken, "simulator")
	for _, v := range servers {
		v.Stop()
	}

	log.Flush()
}

// Starts a single instruments server.
func serve(log common.ILoggerProvider, host string, port int, ctor *plico.ConstructServer) *plico.Server {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		log.Fatal("Failed to listen", err, common.LogURLToken, fmt.Sprintf("%s:%d", host, port))
	}

	srv := plico.NewServer(ctor)
	go func() {
		err := srv.Serve(lis)
		if err != nil {
			log.Error("Instruments server stopped", err, common.LogURLToken, lis.Addr().String())
		}
	}()

	return srv
}
