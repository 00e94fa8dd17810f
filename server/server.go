// Package server contains Fast Lab IO HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/systems/camera"
	"github.com/fastlab-io/server/systems/health"
	"github.com/fastlab-io/server/systems/motor"
	"github.com/fastlab-io/server/systems/sessions"
	"github.com/gobwas/glob"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	// Logger system representation.
	logSystem = "server"
	// Time given to in-flight requests on stop.
	shutdownTimeout = 5 * time.Second
)

// FastLabServer exposes instruments over HTTP.
type FastLabServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider
	Camera   camera.ICameraService
	Motor    motor.IMotorService
	Health   providers.IHealthProvider
	Sessions providers.ISessionsProvider

	wsSettings websocket.Upgrader
	origins    []glob.Glob
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer constructs a new server.
func NewServer(settings providers.ISettingsProvider) (*FastLabServer, error) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &FastLabServer{
		Settings: settings,
		Logger:   settings.SystemLogger(),
		Camera: camera.NewCameraService(&camera.ConstructCamera{
			Settings: settings.CameraSettings(),
			Dialer:   settings.CameraDialer(),
			Logger:   settings.PluginLogger("camera", "plico"),
		}),
		Motor: motor.NewMotorService(&motor.ConstructMotor{
			Settings: settings.MotorSettings(),
			Dialer:   settings.MotorDialer(),
			Logger:   settings.PluginLogger("motor", "plico"),
		}),
		Sessions: sessions.NewSessionsProvider(settings.PluginLogger("sessions", "memory")),

		ctx:    ctx,
		cancel: cancel,
	}

	server.Health = health.NewHealthProvider(&health.ConstructHealth{
		Logger:   settings.PluginLogger("health", "cron"),
		Cron:     settings.Cron(),
		Settings: settings.HealthSettings(),
		Camera:   server.Camera,
		Motor:    server.Motor,
	})

	server.origins = compileOrigins(settings.ServerSettings().AllowedOrigins, server.Logger)
	server.wsSettings = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin: func(r *http.Request) bool {
			return server.isOriginAllowed(r.Header.Get("Origin"))
		},
	}

	return server, nil
}

// Start launches the server and blocks until stop signal.
func (s *FastLabServer) Start() {
	port := s.Settings.ServerSettings().Port
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	err := s.Health.Start()
	if err != nil {
		s.Logger.Error("Failed to start instruments health check", err, common.LogSystemToken, logSystem)
	}

	go func() {
		err := s.httpServer.ListenAndServe()
		if err != nil && http.ErrServerClosed != err {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", port), common.LogSystemToken, logSystem,
		"camera", s.Camera.Address(), "motor", s.Motor.Address())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	s.Logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
	s.Stop()
}

// Stop terminates streams and waits for in-flight requests.
func (s *FastLabServer) Stop() {
	s.cancel()
	s.Health.Stop()
	s.Settings.Cron().Stop()

	if nil != s.httpServer {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := s.httpServer.Shutdown(ctx)
		if err != nil {
			s.Logger.Error("Failed to stop server gracefully", err, common.LogSystemToken, logSystem)
		}
	}

	s.Logger.Flush()
}

// Router returns HTTP handler with all APIs and middlewares.
func (s *FastLabServer) Router() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	cors := handlers.CORS(
		handlers.AllowedOriginValidator(s.isOriginAllowed),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}),
		handlers.PrintRecoveryStack(false),
	)

	return recovery(cors(router))
}

// All API registration.
func (s *FastLabServer) registerAPI(router *mux.Router) {
	router.HandleFunc("/", s.root).Methods(http.MethodGet)

	publicRouter := router.PathPrefix(routePublic).Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/status", s.getStatus).Methods(http.MethodGet)
	apiRouter.Use(s.authMiddleware)
	apiRouter.Use(s.logMiddleware)

	cameraRouter := router.PathPrefix(routeCamera).Subrouter()
	cameraRouter.HandleFunc("/frame", s.getFrame).Methods(http.MethodGet)
	cameraRouter.HandleFunc("/exposure", s.setExposure).Methods(http.MethodPut)
	cameraRouter.HandleFunc("/gain", s.setGain).Methods(http.MethodPut)
	cameraRouter.HandleFunc("/ws/camera/stream", s.handleCameraStream).Methods(http.MethodGet)
	cameraRouter.Use(s.authMiddleware)
	cameraRouter.Use(s.logMiddleware)

	motorRouter := router.PathPrefix(routeMotor).Subrouter()
	motorRouter.HandleFunc("/move", s.moveMotor).Methods(http.MethodPut)
	motorRouter.HandleFunc("/position", s.getMotorPosition).Methods(http.MethodGet)
	motorRouter.HandleFunc("/speed", s.setMotorSpeed).Methods(http.MethodPut)
	motorRouter.Use(s.authMiddleware)
	motorRouter.Use(s.logMiddleware)
}
