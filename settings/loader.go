// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/fastlab-io/server/plugins/common"
	"github.com/fastlab-io/server/plugins/instrument"
	"github.com/fastlab-io/server/providers"
	"github.com/fastlab-io/server/systems/logger"
	"github.com/fastlab-io/server/systems/plico"
	"github.com/fastlab-io/server/systems/security"
	"github.com/fastlab-io/server/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
	// Logger flush schedule.
	flushSchedule = "@every 10s"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config string `short:"c" long:"config" description:"Config file location. Defaults to configs/fastlab.yaml."`
	Port   int    `short:"p" long:"port" description:"HTTP port, overrides config value."`
	Logger string `short:"l" long:"log" description:"Logger provider, overrides config value." choice:"console" choice:"json"` // nolint: staticcheck
}

// Config file structure.
type fileSettings struct {
	Server providers.ServerSettings `yaml:"server"`
	Camera providers.CameraSettings `yaml:"camera"`
	Motor  providers.MotorSettings  `yaml:"motor"`
	Logger providers.LoggerSettings `yaml:"logger"`
	Health providers.HealthSettings `yaml:"health"`
}

// System settings.
type settingsProvider struct {
	logger           common.ILoggerProvider
	cron             providers.ICronProvider
	validator        providers.IValidatorProvider
	securityProvider providers.ISecurityProvider

	file *fileSettings

	cameraDialer instrument.CameraDialer
	motorDialer  instrument.MotorDialer
}

// Load system configuration.
// Any configuration problem is fatal.
func Load(options *StartUpOptions) providers.ISettingsProvider {
	bootLogger := logger.NewConsoleLogger()
	s, err := load(options, bootLogger)
	if err != nil {
		bootLogger.Fatal("Failed to load settings", err, common.LogSystemToken, logSystem)
		return nil
	}

	s.cron = utils.NewCron()
	_, err = s.cron.AddFunc(flushSchedule, func() {
		s.logger.Flush()
	})

	if err != nil {
		s.logger.Fatal("Failed to register logger flushing", err, common.LogSystemToken, logSystem)
	}

	return s
}

// Loads and validates configuration without side effects on the process.
func load(options *StartUpOptions, bootLogger common.ILoggerProvider) (*settingsProvider, error) {
	s := &settingsProvider{
		logger:       bootLogger,
		file:         &fileSettings{},
		cameraDialer: plico.DialCamera,
		motorDialer:  plico.DialMotor,
	}

	s.validator = utils.NewValidator(bootLogger)

	location := options.Config
	if "" == location {
		location = utils.GetDefaultConfigFile()
	} else {
		utils.ConfigDir = filepath.Dir(location)
	}

	err := s.loadFile(location)
	if err != nil {
		return nil, err
	}

	s.applyOptions(options)

	if !s.validator.Validate(s.file) {
		return nil, &ErrInvalidSettings{File: location}
	}

	sysLogger, err := logger.NewLoggerProvider(&logger.ConstructLogger{
		Provider: s.file.Logger.Provider,
		Level:    s.file.Logger.Level,
	})
	if err != nil {
		return nil, errors.Wrap(err, "logger")
	}

	s.logger = sysLogger
	s.validator.SetLogger(sysLogger)

	s.securityProvider = security.NewSecurityProvider(&security.ConstructSecurityProvider{
		Logger: s.PluginLogger("security", "basic"),
		Users:  s.file.Server.Users,
	})

	return s, nil
}

// Reads config file, missing file means defaults.
func (s *settingsProvider) loadFile(location string) error {
	data, err := ioutil.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Settings are not defined, using the default ones",
				common.LogSystemToken, logSystem, common.LogFileToken, location)
			return nil
		}

		return errors.Wrap(err, "read failed")
	}

	tpl := newTemplateProvider(&constructTemplate{Logger: s.logger})
	data, err = tpl.Process(data)
	if err != nil {
		return errors.Wrap(err, "template failed")
	}

	err = yaml.Unmarshal(data, s.file)
	if err != nil {
		return errors.Wrap(err, "parse failed")
	}

	s.logger.Info("Settings loaded", common.LogSystemToken, logSystem, common.LogFileToken, location)
	return nil
}

// Applies command line overrides.
func (s *settingsProvider) applyOptions(options *StartUpOptions) {
	if options.Port > 0 {
		s.file.Server.Port = options.Port
	}

	if "" != options.Logger {
		s.file.Logger.Provider = strings.ToLower(options.Logger)
	}
}
