package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/events"
	"github.com/charlie0129/unitconv/pkg/session"
)

// Server hosts the conversion catalog and the ledgers of all sessions.
type Server struct {
	conf    config.Config
	catalog *catalog.Catalog
	store   *session.Store
	hub     *events.EventHub
}

func NewServer(conf config.Config, cat *catalog.Catalog) *Server {
	return &Server{
		conf:    conf,
		catalog: cat,
		store:   session.NewStore(conf.DefaultTheme(), conf.SessionIdleTimeout()),
		hub:     events.NewEventHub(),
	}
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))

	router.GET("/version", getVersion)
	router.GET("/config", s.getConfig)
	router.GET("/events", s.streamEvents)

	router.GET("/categories", s.getCategories)
	router.GET("/categories/:category/conversions", s.getConversions)
	router.GET("/categories/:category/reference", s.getReference)
	router.GET("/fun-fact", s.getFunFact)
	router.POST("/convert", s.convert)

	router.POST("/sessions", s.createSession)
	router.GET("/sessions", s.listSessions)

	sess := router.Group("/sessions/:id")
	sess.GET("", s.getSession)
	sess.DELETE("", s.deleteSession)
	sess.GET("/history", s.getHistory)
	sess.POST("/history", s.appendHistory)
	sess.GET("/history/export", s.exportHistory)
	sess.PUT("/history/import", s.importHistory)
	sess.GET("/favorites", s.getFavorites)
	sess.POST("/favorites", s.addFavorite)
	sess.GET("/theme", s.getTheme)
	sess.POST("/theme/toggle", s.toggleTheme)
	sess.POST("/feedback", s.submitFeedback)

	return router
}

// Handler returns the HTTP handler of the daemon API.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Run loads the config and serves the daemon API on unixSocketPath until
// SIGINT or SIGTERM.
func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	if err := os.MkdirAll(filepath.Dir(unixSocketPath), 0o755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create socket directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return NewServer(conf, catalog.Default()).Serve(ctx, unixSocketPath, allowNonRoot)
}

// Serve listens on unixSocketPath and blocks until ctx is done, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, unixSocketPath string, allowNonRoot bool) error {
	if err := removeStaleSocket(unixSocketPath); err != nil {
		return err
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	if s.conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		if err := os.Chmod(unixSocketPath, 0777); err != nil {
			_ = l.Close()
			return pkgerrors.Wrapf(err, "failed to chmod %s", unixSocketPath)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.setupRoutes(),
		// Open event streams end when the daemon stops.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Serve HTTP on unix socket
	g.Go(func() error {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrapf(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		logrus.Debugln("session sweep loop starts")
		s.sweepLoop(ctx)
		return nil
	})

	// Receive SIGHUP to reload config
	g.Go(func() error {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		defer signal.Stop(sigc)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-sigc:
				s.reloadConfig()
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("failed to shutdown http server: %v", err)
		}
		return nil
	})

	err = g.Wait()

	logrus.WithField("sessions", s.store.Len()).Info("discarding sessions")
	if rmErr := os.Remove(unixSocketPath); rmErr != nil && !os.IsNotExist(rmErr) {
		logrus.Warnf("failed to remove socket %s: %v", unixSocketPath, rmErr)
	}

	logrus.Info("exiting")
	return err
}

func (s *Server) reloadConfig() {
	if err := s.conf.Load(); err != nil {
		logrus.Errorf("failed to reload config: %v", err)
		return
	}
	s.store.SetDefaults(s.conf.DefaultTheme(), s.conf.SessionIdleTimeout())
	logrus.Infof("config reloaded")
}

// removeStaleSocket removes a socket file left behind by a daemon that did
// not exit cleanly. Non-socket files are left alone.
func removeStaleSocket(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to stat %s", path)
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return pkgerrors.Errorf("%s exists and is not a socket", path)
	}
	if conn, err := net.DialTimeout("unix", path, time.Second); err == nil {
		_ = conn.Close()
		return pkgerrors.Errorf("another daemon is already listening on %s", path)
	}
	logrus.Warnf("removing stale socket %s", path)
	if err := os.Remove(path); err != nil {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", path)
	}
	return nil
}
