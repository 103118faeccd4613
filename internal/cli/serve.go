package cli

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/crest-tools/crest/pkg/buildinfo"
	"github.com/crest-tools/crest/pkg/reeb"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose Reeb graph computation over HTTP",
		Long: `Expose Reeb graph computation over HTTP.

Endpoints:

  POST /v1/reeb?field=<name>&threshold=<t>   mesh JSON body -> graph JSON
  GET  /healthz                              liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			c.Logger.Info("listening", "addr", cfg.Server.Addr)
			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           c.newRouter(cfg),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file")

	return cmd
}

// newRouter assembles the API routes.
func (c *CLI) newRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	})

	r.Post("/v1/reeb", c.handleReeb(cfg))

	return r
}

// requestID attaches a UUID to every request for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, req)
	})
}

// handleReeb computes the Reeb graph of the posted mesh.
func (c *CLI) handleReeb(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, req.Body, 64<<20))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}

		opts := buildOptions{fieldName: req.URL.Query().Get("field")}
		if t := req.URL.Query().Get("threshold"); t != "" {
			opts.threshold, err = strconv.ParseFloat(t, 64)
			if err != nil || opts.threshold < 0 || opts.threshold > 1 {
				writeError(w, http.StatusBadRequest, errors.New("threshold must be a number in [0, 1]"))
				return
			}
		}

		data, err := computeGraph(req.Context(), c.Logger, cfg, raw, opts)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, reeb.ErrIncorrectField) ||
				errors.Is(err, reeb.ErrNoSuchField) ||
				errors.Is(err, reeb.ErrNotSimplicialMesh) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
