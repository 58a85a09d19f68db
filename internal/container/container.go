package container

import (
	"context"

	"cogdash/domain/survey"
	"cogdash/internal"
	"cogdash/internal/config"
	"cogdash/internal/dataset"
	"cogdash/internal/errors"
	"cogdash/ui"
)

// Container holds the dashboard's dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger
	Loader *dataset.Loader

	server *ui.Server
}

// New creates a new dependency container. The configured log level also
// becomes the process-wide default so every component logs at that level.
func New(cfg *config.Config) *Container {
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	internal.DefaultLogger = logger

	return &Container{
		Config: cfg,
		Logger: logger,
		Loader: dataset.NewLoader(Source(cfg), Columns(cfg)),
	}
}

// Source returns the data source described by cfg
func Source(cfg *config.Config) dataset.Source {
	return dataset.Source{Path: cfg.Data.File, Sheet: cfg.Data.Sheet, Table: cfg.Data.Table}
}

// Columns returns the column map described by cfg
func Columns(cfg *config.Config) survey.ColumnMap {
	return survey.ColumnMap{
		Gender:        cfg.Columns.Gender,
		Memory:        cfg.Columns.Memory,
		Concentration: cfg.Columns.Concentration,
	}
}

// Server builds the dashboard server on first use
func (c *Container) Server() (*ui.Server, error) {
	if c.server != nil {
		return c.server, nil
	}

	server, err := ui.NewServer(c.Loader, ui.ServerConfig{
		Page: ui.PageOptions{
			Title:          c.Config.Page.Title,
			FooterMarkdown: c.Config.Page.FooterMarkdown,
		},
		MetricsEnabled: c.Config.Metrics.Enabled,
	}, c.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dashboard server")
	}
	c.server = server
	return server, nil
}

// Serve starts the dashboard on the configured port and blocks
func (c *Container) Serve() error {
	server, err := c.Server()
	if err != nil {
		return err
	}
	return server.Start(":" + c.Config.Server.Port)
}

// Check loads the source once, as a render would, and reports the row count
func (c *Container) Check(ctx context.Context) (int, error) {
	table, err := c.Loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	return table.Len(), nil
}
