package be

import (
	"accountd/be/biz/config"
	"accountd/be/biz/middleware"
	"accountd/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const defaultAddr = "0.0.0.0:8080"

// NewEngine builds the http server with the global middleware suite and all
// routes. Configuration, logger and storage must be initialised before.
func NewEngine() *server.Hertz {
	addr := config.GetServerConf().Addr
	if addr == "" {
		addr = defaultAddr
	}

	h := server.New(
		server.WithHostPorts(addr),
		server.WithCustomValidator(validate.Default()),
	)
	h.Use(middleware.Suite()...)
	register(h)
	return h
}
