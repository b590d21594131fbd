package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ilinovom/posts-browser/internal/config"
	"github.com/ilinovom/posts-browser/internal/repository"
	"github.com/ilinovom/posts-browser/internal/service"
	"github.com/ilinovom/posts-browser/internal/widget"
	"github.com/ilinovom/posts-browser/pkg/jsonplaceholder"
)

const shutdownTimeout = 5 * time.Second

// App wires the posts widget to its store, the API client and a front end.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	store  repository.Store
	widget *widget.Widget
}

func New(cfg *config.Config, store repository.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := jsonplaceholder.NewClient(cfg.APIBaseURL, nil)
	posts := service.NewPostsService(client)
	return &App{
		cfg:    cfg,
		log:    logger,
		store:  store,
		widget: widget.New(store, posts, logger.Named("widget")),
	}
}

// Widget exposes the underlying widget for one-shot commands.
func (a *App) Widget() *widget.Widget {
	return a.widget
}

// Restore loads the saved state. Problems with saved data are reported on
// the status line and logged; they never stop the app.
func (a *App) Restore(ctx context.Context) {
	if err := a.widget.Restore(ctx); err != nil {
		a.log.Warn("restore saved state", zap.Error(err))
	}
}

// RunTUI restores the saved state and runs the terminal UI until the user
// quits or ctx is cancelled.
func (a *App) RunTUI(ctx context.Context) error {
	a.Restore(ctx)
	p := tea.NewProgram(newTUIModel(ctx, a.widget), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Serve restores the saved state and serves the web UI on the configured
// address until an interrupt arrives.
func (a *App) Serve(ctx context.Context) error {
	a.Restore(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		a.log.Info("serving web ui", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}
