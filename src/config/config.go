package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/workpost-net/workpost/src/common"
)

// Default configuration values.
const (
	DefaultLogLevel         = "debug"
	DefaultBindAddr         = "127.0.0.1:42000"
	DefaultServiceAddr      = "127.0.0.1:8000"
	DefaultHeartbeatTimeout = 25 * time.Millisecond
	DefaultMineTarget       = uint64(16)
	DefaultMineBudget       = uint64(100000)
)

// Config contains all the configuration properties of a workpost node.
type Config struct {
	// DataDir is the top-level directory containing configuration and data,
	// notably peers.json.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, duplicates log output to a file via an lfshook.
	LogFile string `mapstructure:"log-file"`

	// BindAddr is the local address:port where this node gossips with other
	// nodes over UDP.
	BindAddr string `mapstructure:"listen"`

	// NoService disables the HTTP info service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the HTTP info service.
	ServiceAddr string `mapstructure:"service-listen"`

	// HeartbeatTimeout is the pause between iterations of the node loop. A
	// Ping is broadcast to every peer once per iteration.
	HeartbeatTimeout time.Duration `mapstructure:"heartbeat"`

	// AnswerGetTip is a compatibility flag: when set, a GetTip message is
	// answered with SharePost of the current tip. The historical protocol
	// defines the message but leaves it unhandled.
	AnswerGetTip bool `mapstructure:"answer-get-tip"`

	// Mine enables the background miner.
	Mine bool `mapstructure:"mine"`

	// MineTarget is the local score a mined post must reach. The network
	// difficulty is fixed; there is no retargeting.
	MineTarget uint64 `mapstructure:"mine-target"`

	// MineBudget is the number of attempts per mining round.
	MineBudget uint64 `mapstructure:"mine-budget"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:          DefaultDataDir(),
		LogLevel:         DefaultLogLevel,
		BindAddr:         DefaultBindAddr,
		ServiceAddr:      DefaultServiceAddr,
		HeartbeatTimeout: DefaultHeartbeatTimeout,
		MineTarget:       DefaultMineTarget,
		MineBudget:       DefaultMineBudget,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Logger returns a formatted logrus Entry, with prefix set to "workpost".
// When LogFile is set, output is duplicated to the file.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			if _, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err != nil {
				c.logger.Infof("Failed to open %s, using default stderr", c.LogFile)
			} else {
				pathMap := lfshook.PathMap{}
				for _, level := range logrus.AllLevels {
					pathMap[level] = c.LogFile
				}
				c.logger.Hooks.Add(lfshook.NewHook(pathMap, &logrus.TextFormatter{}))
			}
		}
	}
	return c.logger.WithField("prefix", "workpost")
}

// DefaultDataDir returns the default directory name for top-level workpost
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Workpost")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Workpost")
		} else {
			return filepath.Join(home, ".workpost")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
