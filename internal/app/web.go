package app

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ilinovom/posts-browser/internal/model"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Handler returns the web UI routes.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("POST /posts", a.handleSubmit)
	mux.HandleFunc("POST /clear", a.handleClear)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return a.logRequests(mux)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, a.widget.Snapshot()); err != nil {
		a.log.Error("render page", zap.Error(err))
	}
}

func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	raw := r.PostFormValue("userId")
	remember := r.PostFormValue("remember") != ""
	// failures end up on the status line
	if err := a.widget.Load(r.Context(), raw, remember); err != nil && !errors.Is(err, model.ErrInvalidUserID) {
		a.log.Debug("load posts", zap.String("user_id", raw), zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := a.widget.Clear(r.Context()); err != nil {
		a.log.Debug("clear results", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
