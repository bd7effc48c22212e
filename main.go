package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LocNguyenSGU/portfolio/internal/admin"
	"github.com/LocNguyenSGU/portfolio/internal/analytics"
	"github.com/LocNguyenSGU/portfolio/internal/config"
	"github.com/LocNguyenSGU/portfolio/internal/i18n"
	"github.com/LocNguyenSGU/portfolio/internal/logging"
	"github.com/LocNguyenSGU/portfolio/internal/personalization"
	"github.com/LocNguyenSGU/portfolio/internal/site"
	"github.com/LocNguyenSGU/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// server carries what the routes need.
type server struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *store.Store
	catalog *i18n.Catalog
	admin   *admin.Client
	fetcher personalization.Fetcher
	emitter *analytics.Emitter
	mailer  site.Mailer
	now     func() time.Time
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel, gin.Mode() == gin.DebugMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	// Clean up old visitor data in the background
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		removed, err := db.CleanupOldVisitors(ctx)
		if err != nil {
			logger.Error("visitor cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			logger.Info("privacy cleanup", zap.Int64("removed", removed))
		}
	}()

	catalog, err := i18n.LoadCatalog(cfg.DefaultLocale)
	if err != nil {
		logger.Fatal("load translations", zap.Error(err))
	}
	for locale, keys := range catalog.Missing() {
		logger.Warn("missing translations", zap.String("locale", locale), zap.Strings("keys", keys))
	}

	s := &server{
		cfg:     cfg,
		logger:  logger,
		store:   db,
		catalog: catalog,
		admin:   newAdminClient(cfg),
		fetcher: newFetcher(cfg),
		emitter: analytics.NewEmitter(analytics.Multi(db, analytics.LogSink(logger)), logger),
		mailer:  site.NewSMTPMailer(cfg.SMTP),
		now:     time.Now,
	}
	if !s.mailer.Ready() {
		logger.Warn("SMTP credentials not configured, contact form hidden")
	}

	r, err := newRouter(s)
	if err != nil {
		logger.Fatal("build router", zap.Error(err))
	}

	logger.Info("listening", zap.String("addr", cfg.Addr()), zap.String("api", cfg.APIBaseURL))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// adminTimeout bounds dashboard and login calls to the admin API.
const adminTimeout = 10 * time.Second

func newAdminClient(cfg config.Config) *admin.Client {
	return admin.NewClient(cfg.APIBaseURL, &http.Client{Timeout: adminTimeout})
}

// fetcherHTTPClient carries rule fetches. It keeps the platform default
// timeout; the request context is the only bound.
func fetcherHTTPClient() *http.Client {
	return &http.Client{}
}

func newFetcher(cfg config.Config) *personalization.Client {
	return personalization.NewClient(cfg.PersonalizeURL, fetcherHTTPClient())
}

func loadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func newRouter(s *server) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(logging.GinRecovery(s.logger), logging.GinLogger(s.logger, "/favicon.ico"))
	r.SetHTMLTemplate(tmpl)
	r.Static("/static", "./static")
	r.Use(visitorTrackingMiddleware(s.store, s.logger))

	site.New(tmpl, s.catalog, s.fetcher, s.emitter,
		site.WithLogger(s.logger),
		site.WithMailer(s.mailer),
		site.WithSecureCookies(s.cfg.SecureCookies),
		site.WithClock(s.now),
	).Register(r)
	setupAdminRoutes(r, s)
	return r, nil
}
