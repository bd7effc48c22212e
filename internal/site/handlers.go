package site

import (
	"bytes"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LocNguyenSGU/portfolio/internal/analytics"
	"github.com/LocNguyenSGU/portfolio/internal/content"
	"github.com/LocNguyenSGU/portfolio/internal/i18n"
	"github.com/LocNguyenSGU/portfolio/internal/personalization"
)

const htmlContentType = "text/html; charset=utf-8"

// Attributes that make <main> request the personalized swap. They are
// stripped from the swapped-in copy so it does not fire again.
var swapAttrs = []string{"hx-get", "hx-trigger", "hx-swap"}

func (s *Site) index(c *gin.Context) {
	p, err := s.newPage(c, content.FilterAll)
	if err != nil {
		s.fail(c, "render index", err)
		return
	}
	s.writePage(c, p)
}

// switchLanguage repaints the page in the requested language and remembers
// the choice. Unknown codes leave the page in its current language.
func (s *Site) switchLanguage(c *gin.Context) {
	p, err := s.newPage(c, content.FilterAll)
	if err != nil {
		s.fail(c, "render index", err)
		return
	}
	from := p.resolver.Locale()
	to := c.Param("code")
	if p.resolver.SetLocale(to) && from != to {
		ctx := analytics.WithVisitor(c.Request.Context(), s.visitorID(c))
		s.emitter.LanguageSwitch(ctx, from, to)
	}
	s.writePage(c, p)
}

// personalize answers the <main> element's deferred request: the reordered
// and highlighted <main> when rules were applied, or 204 so the default
// page stays as it is.
func (s *Site) personalize(c *gin.Context) {
	if s.fetcher == nil {
		c.Status(http.StatusNoContent)
		return
	}
	p, err := s.newPage(c, content.FilterAll)
	if err != nil {
		s.logger.Warn("personalization page render failed", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}

	applier := personalization.NewApplier(s.fetcher, s.emitter,
		personalization.WithBadgeLabel(p.resolver.Resolve("personalization.featured")),
		personalization.WithLogger(s.logger),
	)
	if applier.Run(c.Request.Context(), p.doc, s.visitorID(c)) != personalization.Applied {
		c.Status(http.StatusNoContent)
		return
	}

	main := p.doc.Main()
	if main == nil {
		c.Status(http.StatusNoContent)
		return
	}
	for _, attr := range swapAttrs {
		main.RemoveAttr(attr)
	}
	html, err := main.OuterHTML()
	if err != nil {
		s.logger.Warn("personalization serialize failed", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Vary", "Cookie")
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// projects returns the projects section rendered with the requested filter.
func (s *Site) projects(c *gin.Context) {
	p, err := s.newPage(c, content.ParseFilter(c.Query("filter")))
	if err != nil {
		s.fail(c, "render projects", err)
		return
	}
	section := p.doc.ByID(ProjectsSectionID)
	if section == nil {
		c.Status(http.StatusNotFound)
		return
	}
	html, err := section.OuterHTML()
	if err != nil {
		s.fail(c, "serialize projects", err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

type trackRequest struct {
	Name  string         `json:"name" binding:"required"`
	Props map[string]any `json:"props"`
}

// track accepts browser-side interaction events. Sink failures are the
// emitter's concern and never reach the browser.
func (s *Site) track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
		return
	}
	if !analytics.ClientReportable(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event"})
		return
	}
	ctx := analytics.WithVisitor(c.Request.Context(), s.visitorID(c))
	s.emitter.Emit(ctx, analytics.CategoryEvent, req.Name, req.Props)
	c.Status(http.StatusNoContent)
}

type contactResult struct {
	OK      bool
	Message string
}

// contact sends the contact form and answers with a localized fragment.
func (s *Site) contact(c *gin.Context) {
	res := i18n.NewResolver(s.catalog, i18n.RequestLocale(c.Request, s.catalog), nil)
	msg := Message{
		Name:  strings.TrimSpace(c.PostForm("fullName")),
		Email: strings.TrimSpace(c.PostForm("email")),
		Body:  strings.TrimSpace(c.PostForm("message")),
	}

	ctx := analytics.WithVisitor(c.Request.Context(), s.visitorID(c))
	s.emitter.ContactIntent(ctx, "form")

	result := contactResult{OK: true, Message: res.Resolve("contact.success")}
	if err := validateMessage(msg); err != nil {
		s.logger.Info("contact form rejected", zap.Error(err))
		result = contactResult{Message: res.Resolve("contact.error")}
	} else if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		s.logger.Error("contact mail failed", zap.Error(err))
		result = contactResult{Message: res.Resolve("contact.error")}
	} else {
		s.logger.Info("contact mail sent")
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, ContactResultTemplate, result); err != nil {
		s.fail(c, "render contact result", err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func validateMessage(m Message) error {
	if m.Name == "" || m.Body == "" {
		return errMissingField
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return err
	}
	return nil
}

func (s *Site) writePage(c *gin.Context, p *page) {
	var buf bytes.Buffer
	if err := p.doc.Render(&buf); err != nil {
		s.fail(c, "serialize page", err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (s *Site) fail(c *gin.Context, what string, err error) {
	s.logger.Error(what, zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Something went wrong.")
}
