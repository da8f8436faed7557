package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/formloom/formloom/internal/api"
	"github.com/formloom/formloom/internal/config"
	dbstore "github.com/formloom/formloom/internal/db"
	"github.com/formloom/formloom/internal/middleware"
)

func main() {
	cfg, err := config.Load(os.Getenv("FORMLOOM_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	commit := os.Getenv("FORMLOOM_COMMIT")
	buildTime := os.Getenv("FORMLOOM_BUILD_TIME")

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	mux := http.NewServeMux()
	// API routes
	api.NewRouter(store, middleware.SignToken, cfg.AdminCode).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Formloom API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Frontend serving strategy (priority):
	// 1) Static files if static_dir is set (fullstack image)
	// 2) Dev proxy if dev_frontend_url is set (proxy / to the dev server)
	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		mux.Handle("/", fs)
	} else if cfg.DevFrontendURL != "" {
		if u, err := url.Parse(cfg.DevFrontendURL); err == nil {
			rp := httputil.NewSingleHostReverseProxy(u)
			// Ensure no-store headers also apply to proxied responses
			rp.ModifyResponse = func(res *http.Response) error {
				res.Header.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
				res.Header.Set("Pragma", "no-cache")
				res.Header.Set("Expires", "0")
				return nil
			}
			mux.Handle("/", rp)
		} else {
			log.Printf("invalid dev_frontend_url %q: %v", cfg.DevFrontendURL, err)
		}
	}

	handler := middleware.SecureHeaders(middleware.CORS(middleware.NoStore(middleware.WithAuth(mux))))

	log.Printf("Formloom server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore returns the SQLite-backed store when a path is configured and
// falls back to the in-memory store otherwise.
func openStore(cfg *config.Config) (api.Store, error) {
	if cfg.SQLitePath == "" {
		log.Printf("no sqlite path configured, using in-memory store")
		return api.NewMemoryStore(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, err
	}
	dsn := "file:" + filepath.ToSlash(cfg.SQLitePath) + "?cache=shared&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := dbstore.RunMigrations(sqlDB); err != nil {
		return nil, err
	}
	return dbstore.NewStore(sqlDB)
}
