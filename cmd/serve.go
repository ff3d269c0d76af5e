package cmd

import (
	"github.com/gin-gonic/gin"

	"github.com/samuelcardenasg23/book-play/internal/server"
)

var runServer = func(app *App, srv *server.Server) error {
	return srv.Run(app.Context())
}

// ServeCmd runs the JSON API.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(app *App) error {
	svc, err := app.SearchService()
	if err != nil {
		return err
	}
	mapper, err := app.Mapper()
	if err != nil {
		return err
	}

	addr := app.Config.ServerAddr
	if s.Addr != "" {
		addr = s.Addr
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(server.Options{
		Addr:           addr,
		AllowedOrigins: app.Config.AllowedOrigins,
	}, server.NewHandler(svc, mapper))

	return runServer(app, srv)
}
