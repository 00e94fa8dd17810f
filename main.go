package main

import (
	"github.com/fastlab-io/server/server"
	"github.com/fastlab-io/server/settings"
	"github.com/jessevdk/go-flags"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		panic(err)
	}

	s := settings.Load(options)
	s.SystemLogger().Info("Starting Fast Lab IO server")

	srv, err := server.NewServer(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start Fast Lab IO server", err)
	}

	srv.Start()
}
