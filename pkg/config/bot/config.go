package bot

import (
	goflag "flag"
	"time"

	"github.com/openjam/jamroom/pkg/config"
	"github.com/openjam/jamroom/pkg/motion"
	flag "github.com/spf13/pflag"
)

type Config struct {
	Bot Bot `fig:"bot"`
}

type Bot struct {
	Debug    bool   `fig:"debug"`
	Relay    string `fig:"relay" default:"ws://localhost:8000/ws"`
	GameCode string `fig:"gameCode"`
	Host     bool   `fig:"host"`

	Tick         time.Duration `fig:"tick" default:"50ms"`
	SendInterval time.Duration `fig:"sendInterval" default:"100ms"`
	SendEpsilon  float64       `fig:"sendEpsilon" default:"0.001"`

	Motion motion.Config `fig:"motion"`
}

func NewConfig(path string) (conf Config, err error) {
	err = config.LoadConfig(&conf, path)
	return
}

func (c *Config) AddFlags(fs *flag.FlagSet) *Config {
	fs.BoolVarP(&c.Bot.Debug, "verbose", "v", c.Bot.Debug, "enable debug logging")
	fs.StringVar(&c.Bot.Relay, "relay", c.Bot.Relay, "relay websocket endpoint")
	fs.StringVarP(&c.Bot.GameCode, "game", "g", c.Bot.GameCode, "game code to join, generated when hosting without one")
	fs.BoolVar(&c.Bot.Host, "host", c.Bot.Host, "host the session instead of joining")
	return c
}

func (c *Config) ParseFlags() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	c.AddFlags(flag.CommandLine)
	flag.Parse()
}
