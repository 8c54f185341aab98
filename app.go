package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"terrawatch/models"
	"terrawatch/processor"
	"terrawatch/render"
	"terrawatch/session"
	"terrawatch/store"

	"github.com/rs/zerolog"
)

type App struct {
	cfg      Config
	log      zerolog.Logger
	ctrl     *session.Controller
	renderer render.Renderer
	runs     store.RunLog
	now      func() time.Time
}

func newApp(ctx context.Context, cfg Config, logger zerolog.Logger) (*App, error) {
	ctrl, err := newController(cfg)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(cfg.Renderer)
	if err != nil {
		return nil, err
	}
	runs, err := store.Open(ctx, store.Settings{
		Driver:     cfg.StoreDriver,
		SQLitePath: cfg.SQLitePath,
		MongoURI:   cfg.MongoURI,
		MongoDB:    cfg.MongoDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}

	return &App{
		cfg:      cfg,
		log:      logger,
		ctrl:     ctrl,
		renderer: renderer,
		runs:     runs,
		now:      time.Now,
	}, nil
}

// newController picks the remote processor when PROCESSOR_URL is set.
func newController(cfg Config) (*session.Controller, error) {
	var gen session.Generator = session.StubGenerator{}
	if cfg.ProcessorURI != "" {
		c, err := processor.NewClient(cfg.ProcessorURI, nil)
		if err != nil {
			return nil, err
		}
		gen = c
	}
	return session.NewController(session.DefaultZoneTable(), gen), nil
}

func (a *App) close(ctx context.Context) { _ = a.runs.Close(ctx) }

// renderPass is everything the dashboard and the analysis API show for one pass.
type renderPass struct {
	view  session.View
	frame render.Frame
	token string
}

// evaluate runs one render pass. A reported pass is logged and gets an export
// token; failing to log never fails the pass.
func (a *App) evaluate(ctx context.Context, in session.Input) (renderPass, error) {
	logger := zerolog.Ctx(ctx)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	view, err := a.ctrl.Evaluate(ctx, in)
	if err != nil {
		return renderPass{}, err
	}
	frame, err := a.renderer.Render(view.Zone, view.State == models.StateReported)
	if err != nil {
		return renderPass{}, fmt.Errorf("render %s: %w", a.renderer.Kind(), err)
	}
	pass := renderPass{view: view, frame: frame}
	if view.State != models.StateReported {
		return pass, nil
	}

	now := a.now()
	run, err := a.runs.Record(ctx, models.Run{
		Zone:      view.Zone.Name,
		Start:     view.Period.Start,
		End:       view.Period.End,
		Renderer:  string(a.renderer.Kind()),
		Generator: a.ctrl.Generator().Name(),
		CreatedAt: now,
	})
	if err != nil {
		logger.Error().Err(err).Str("zone", view.Zone.Name).Msg("failed to record analysis run")
	} else {
		logger.Info().Str("run", run.ID).Str("zone", view.Zone.Name).Str("period", view.Period.String()).Msg("analysis reported")
	}

	pass.token, err = signExportToken(a.cfg.JWTSecret, view.Zone.Name, view.Period, *view.Report, now)
	if err != nil {
		return renderPass{}, fmt.Errorf("sign export token: %w", err)
	}
	return pass, nil
}

// downloadURLs maps each export format to its download link.
func downloadURLs(token string) map[string]string {
	q := url.Values{"token": {token}}.Encode()
	return map[string]string{
		"txt": "/api/export/txt?" + q,
		"csv": "/api/export/csv?" + q,
	}
}
