package app

import (
	"context"
	"errors"
	_ "expvar" // registers /debug/vars on the debug server
	"fmt"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof on the debug server
	"time"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/config"
	"github.com/byxorna/wrench/pkg/logging"
	pipeline "github.com/byxorna/wrench/pkg/net/http"
	"github.com/byxorna/wrench/pkg/prefs"
	"github.com/byxorna/wrench/pkg/runtime"
	"github.com/byxorna/wrench/pkg/screen"
	"github.com/byxorna/wrench/pkg/session"
	"github.com/byxorna/wrench/pkg/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services is everything a front end needs, built from the configuration.
type Services struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	API      *api.Client
	Session  *session.Store
	Theme    *theme.Manager

	debug *http.Server
}

// Open loads the configuration at path and wires the services. The session
// is restored from the token file when one exists; failing to reach the
// backend at this point is logged, not returned.
func Open(ctx context.Context, path string) (*Services, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		if logPath, err = runtime.StateFile(runtime.LogFileName); err != nil {
			return nil, fmt.Errorf("unable to locate log file: %w", err)
		}
	}
	logger, err := logging.New(logging.LogLevel(cfg.Log.Level), cfg.Log.Format, logPath)
	if err != nil {
		return nil, err
	}

	tokenPath, err := runtime.File(runtime.TokenFileName)
	if err != nil {
		return nil, fmt.Errorf("unable to locate token file: %w", err)
	}
	prefsPath, err := runtime.ConfigFile(runtime.PreferencesFileName)
	if err != nil {
		return nil, fmt.Errorf("unable to locate preferences file: %w", err)
	}

	store := session.New(pipeline.TokenFile(tokenPath), logger.Named("session"))

	reg, metrics := pipeline.NewRegistry()
	httpClient := pipeline.NewClient(http.DefaultTransport, pipeline.Options{
		Logger:  logger.Named("http"),
		Tokens:  store,
		Metrics: metrics,
	})
	client, err := api.New(cfg.API.BaseURL, httpClient)
	if err != nil {
		return nil, err
	}

	if err := store.Init(ctx, client); err != nil {
		logger.Warn("unable to restore session", zap.Error(err))
	}

	th := theme.New(prefs.NewFile(prefsPath), nil, nil, logger.Named("theme"))
	th.Init()

	logger.Info("wrench started",
		zap.String("api", client.BaseURL()),
		zap.Bool("authenticated", store.Current().IsAuthenticated()))

	return &Services{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		API:      client,
		Session:  store,
		Theme:    th,
	}, nil
}

// Tabs builds the configured screens, notifying on n.
func (s *Services) Tabs(n screen.Notifier) (*screen.Set, []Tab, error) {
	set := screen.NewSet(s.API, n, s.Logger.Named("screen"), s.Config.LowStockThreshold)
	tabs, err := NewTabs(set, s.Config.Screens, s.Config.LowStockThreshold)
	if err != nil {
		return nil, nil, err
	}
	return set, tabs, nil
}

// ServeDebug starts pprof, expvar and /metrics on the configured debug
// address. It does nothing when no address is configured.
func (s *Services) ServeDebug() {
	if s.Config.DebugAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/debug/", http.DefaultServeMux)
	mux.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	s.debug = &http.Server{Addr: s.Config.DebugAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	s.Logger.Info("listening for debug requests", zap.String("addr", s.Config.DebugAddr))
	go func() {
		if err := s.debug.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("debug server stopped", zap.Error(err))
		}
	}()
}

// Close tears down the session, theme and debug server. The persisted token
// is kept for the next run.
func (s *Services) Close() {
	if s.debug != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = s.debug.Shutdown(ctx)
		cancel()
	}
	s.Session.Teardown()
	s.Theme.Close()
	_ = s.Logger.Sync()
}

// Run starts the interactive application and blocks until it exits.
func Run(ctx context.Context, s *Services, useAltScreen bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := NewEvents()
	set, tabs, err := s.Tabs(events)
	if err != nil {
		return err
	}
	defer set.CancelAll()

	m, err := NewApplication(ctx, tabs, s.Session, s.Theme, events, s.Logger.Named("app"))
	if err != nil {
		return err
	}
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if useAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(*m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("unable to run application: %w", err)
	}
	return nil
}
