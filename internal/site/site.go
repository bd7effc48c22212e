// Package site serves the public portfolio pages: the localized index, the
// deferred personalization swap, the project filter fragment, event intake
// and the contact form.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LocNguyenSGU/portfolio/internal/analytics"
	"github.com/LocNguyenSGU/portfolio/internal/content"
	"github.com/LocNguyenSGU/portfolio/internal/dom"
	"github.com/LocNguyenSGU/portfolio/internal/i18n"
	"github.com/LocNguyenSGU/portfolio/internal/personalization"
)

// IndexTemplate is the name of the page template Site executes.
const IndexTemplate = "index.html"

// ContactResultTemplate renders the contact form outcome.
const ContactResultTemplate = "contact-result.html"

// ProjectsSectionID is the section the project filter swaps.
const ProjectsSectionID = "projects"

// Site holds the dependencies of the public handlers.
type Site struct {
	tmpl    *template.Template
	catalog *i18n.Catalog
	fetcher personalization.Fetcher
	emitter *analytics.Emitter
	mailer  Mailer
	logger  *zap.Logger
	now     func() time.Time
	secure  bool
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Site) { s.logger = logger }
}

// WithMailer sets the contact form mailer.
func WithMailer(m Mailer) Option {
	return func(s *Site) { s.mailer = m }
}

// WithSecureCookies marks the language cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Site) { s.secure = secure }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// New builds a Site. tmpl must define IndexTemplate and
// ContactResultTemplate. fetcher and emitter may be nil.
func New(tmpl *template.Template, catalog *i18n.Catalog, fetcher personalization.Fetcher, emitter *analytics.Emitter, opts ...Option) *Site {
	s := &Site{
		tmpl:    tmpl,
		catalog: catalog,
		fetcher: fetcher,
		emitter: emitter,
		mailer:  disabledMailer{},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts the public routes on r.
func (s *Site) Register(r gin.IRoutes) {
	r.GET("/", s.index)
	r.GET("/lang/:code", s.switchLanguage)
	r.GET("/personalize", s.personalize)
	r.GET("/projects", s.projects)
	r.POST("/track", s.track)
	r.POST("/contact", s.contact)
}

// page is one request's document with its resolver bound to it.
type page struct {
	doc      *dom.Document
	resolver *i18n.Resolver
}

type indexData struct {
	Year         int
	Locales      []string
	ContactReady bool
}

// newPage renders the index shell, fills in the content containers and
// paints it in the request's language. Content follows later locale
// switches on the same page.
func (s *Site) newPage(c *gin.Context, f content.Filter) (*page, error) {
	var buf bytes.Buffer
	data := indexData{Year: s.now().Year(), Locales: s.catalog.Locales(), ContactReady: s.mailer.Ready()}
	if err := s.tmpl.ExecuteTemplate(&buf, IndexTemplate, data); err != nil {
		return nil, fmt.Errorf("site: execute %s: %w", IndexTemplate, err)
	}
	doc, err := dom.Parse(&buf)
	if err != nil {
		return nil, err
	}

	locale := i18n.RequestLocale(c.Request, s.catalog)
	res := i18n.NewResolver(s.catalog, locale, i18n.CookieStore{W: c.Writer, Secure: s.secure})
	res.Bind(doc)

	renderer := content.NewRenderer(res, s.now)
	if err := renderer.RenderInto(doc, f); err != nil {
		return nil, err
	}
	renderer.Follow(res, doc, f, func(err error) {
		s.logger.Error("content re-render failed", zap.String("locale", res.Locale()), zap.Error(err))
	})
	res.Paint()
	return &page{doc: doc, resolver: res}, nil
}

func (s *Site) visitorID(c *gin.Context) string {
	return analytics.VisitorID(c.Request, s.now())
}
