package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpadapter "svw.info/gridoku/internal/adapters/http"
	"svw.info/gridoku/internal/generator"
	"svw.info/gridoku/internal/hint"
	"svw.info/gridoku/internal/infrastructure/storage"
	"svw.info/gridoku/internal/ports"
	"svw.info/gridoku/internal/solver"
	"svw.info/gridoku/internal/usecase"
	"svw.info/gridoku/internal/validator"
)

var log = logrus.New()

var (
	serveAddr    string
	servePersist string
	serveStorage string
	serveSolver  string
	serveLevel   string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine over a JSON API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&servePersist, "persist-path", "./data", "save directory or database file")
	serveCmd.Flags().StringVar(&serveStorage, "storage", "sqlite", "puzzle store: sqlite|fs")
	serveCmd.Flags().StringVar(&serveSolver, "solver", "dlx", "solver to use: dlx|backtrack")
	serveCmd.Flags().StringVar(&serveLevel, "log-level", "info", "debug|info|warn|error")
	rootCmd.AddCommand(serveCmd)
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond).String(),
		}).Info("http")
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	lvl, err := logrus.ParseLevel(serveLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", serveLevel, err)
	}
	log.SetLevel(lvl)
	_ = os.MkdirAll(servePersist, 0o755)

	s := pickSolver(serveSolver)

	var st ports.Storage
	switch serveStorage {
	case "fs":
		st = storage.NewFS(servePersist)
	default:
		db, err := storage.NewSQLite(filepath.Join(servePersist, "gridoku.db"))
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		st = db
	}

	analyzer := solver.NewStrategySolver()
	g := generator.NewUniqueGenerator(s, analyzer)
	uc := usecase.NewService(s, g, validator.New(), analyzer, hint.New(), st)
	h := httpadapter.New(uc)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WithFields(logrus.Fields{
		"addr":    serveAddr,
		"storage": serveStorage,
		"solver":  serveSolver,
	}).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
