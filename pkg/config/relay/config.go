package relay

import (
	goflag "flag"

	"github.com/openjam/jamroom/pkg/config"
	"github.com/openjam/jamroom/pkg/config/monitoring"
	"github.com/openjam/jamroom/pkg/config/shared"
	flag "github.com/spf13/pflag"
)

type Config struct {
	Relay Relay `fig:"relay"`
}

type Relay struct {
	Debug      bool              `fig:"debug"`
	LockFile   string            `fig:"lockFile"`
	Server     shared.Server     `fig:"server"`
	Monitoring monitoring.Config `fig:"monitoring"`

	// SendBuffer bounds the per-connection outbound queue;
	// a participant whose buffer is full loses envelopes instead
	// of stalling the fan-out to everyone else.
	SendBuffer int `fig:"sendBuffer" default:"64"`
	// MaxSessionSize caps participants per session, 0 is unlimited.
	// A host/join past the cap is answered with a closed connection.
	MaxSessionSize int `fig:"maxSessionSize"`
}

func NewConfig(path string) (conf Config, err error) {
	err = config.LoadConfig(&conf, path)
	if conf.Relay.Monitoring.URLPrefix == "" {
		conf.Relay.Monitoring.URLPrefix = "/relay"
	}
	return
}

func (c *Config) AddFlags(fs *flag.FlagSet) *Config {
	c.Relay.Server.WithFlags(fs)
	fs.BoolVarP(&c.Relay.Debug, "verbose", "v", c.Relay.Debug, "enable debug logging")
	fs.StringVar(&c.Relay.LockFile, "lock", c.Relay.LockFile, "single-instance lock file path")
	fs.IntVar(&c.Relay.MaxSessionSize, "maxSession", c.Relay.MaxSessionSize, "participants per session cap, 0 is unlimited")
	return c
}

func (c *Config) ParseFlags() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	c.AddFlags(flag.CommandLine)
	flag.Parse()
}
