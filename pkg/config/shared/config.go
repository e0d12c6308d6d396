package shared

import (
	"github.com/spf13/pflag"
)

type Server struct {
	Address string `fig:"address" default:":8000"`
	Https   bool   `fig:"https"`
	Tls     Tls    `fig:"tls"`
}

type Tls struct {
	Address   string `fig:"address" default:":443"`
	Domain    string `fig:"domain"`
	HttpsCert string `fig:"httpsCert"`
	HttpsKey  string `fig:"httpsKey"`
}

// GetAddr returns the address the server should bind to,
// which is the TLS one when HTTPS is on.
func (s *Server) GetAddr() string {
	if s.Https {
		return s.Tls.Address
	}
	return s.Address
}

func (s *Server) WithFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Address, "address", s.Address, "server address")
	fs.BoolVar(&s.Https, "https", s.Https, "serve HTTPS")
}
