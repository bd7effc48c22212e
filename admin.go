// admin.go - dashboard backed by the personalization API and the local store
package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/LocNguyenSGU/portfolio/internal/admin"
	"github.com/LocNguyenSGU/portfolio/internal/store"
)

const (
	adminTokenKey   = "adminToken"
	recentVisitors  = 20
	topLocalEvents  = 10
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Middleware to check admin authentication. The token itself is checked by
// the admin API on every call.
func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(admin.TokenCookie)
		if err != nil || token == "" {
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(adminTokenKey, token)
		c.Next()
	}
}

// wantsJSON reports whether the route answers the dashboard's background
// refresh rather than a page load.
func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/admin/api/")
}

func (s *server) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(admin.TokenCookie, token, maxAge, "/admin", "", s.cfg.SecureCookies, true)
}

func (s *server) clearTokenCookie(c *gin.Context) {
	s.setTokenCookie(c, "", -1)
}

// buildReport fetches the remote dashboard and the local counts together.
func (s *server) buildReport(ctx context.Context, token string) (*admin.Report, error) {
	report := &admin.Report{GeneratedAt: s.now()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.admin.Dashboard(ctx, token)
		if err != nil {
			return err
		}
		report.Remote = d
		return nil
	})
	g.Go(func() error {
		stats, err := s.store.VisitorStats(ctx, recentVisitors)
		if err != nil {
			return err
		}
		report.Local = stats
		return nil
	})
	g.Go(func() error {
		events, err := s.store.TopEvents(ctx, s.now().Add(-24*time.Hour), topLocalEvents)
		if err != nil {
			return err
		}
		report.LocalEvents = events
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// formatted renders the headline numbers with digit grouping.
func formatted(st admin.Stats) map[string]string {
	f := func(n int64) string { return admin.FormatCount(language.English, n) }
	return map[string]string{
		"total_users":        f(int64(st.TotalUsers)),
		"segments":           f(int64(st.Segments)),
		"total_events":       f(int64(st.TotalEvents)),
		"total_rules":        f(int64(st.TotalRules)),
		"total_visitors":     f(st.TotalVisitors),
		"unique_visitors":    f(st.UniqueVisitors),
		"visitors_today":     f(st.VisitorsToday),
		"visitors_this_week": f(st.VisitorsThisWeek),
	}
}

// report loads the dashboard report for the request, handling expired
// sessions and API failures. It returns nil when a response was written.
func (s *server) report(c *gin.Context) *admin.Report {
	report, err := s.buildReport(c.Request.Context(), c.GetString(adminTokenKey))
	if err == nil {
		return report
	}

	if errors.Is(err, admin.ErrUnauthorized) {
		s.logger.Info("admin session rejected by API")
		s.clearTokenCookie(c)
		if wantsJSON(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/admin/login")
		}
		return nil
	}

	s.logger.Error("loading admin stats", zap.Error(err))
	if wantsJSON(c) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load statistics"})
	} else {
		c.HTML(http.StatusBadGateway, "admin-error.html", gin.H{
			"error": "Failed to load statistics",
		})
	}
	return nil
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, s *server) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":           "Privacy Policy",
			"retentionMonths": int(store.Retention / (30 * 24 * time.Hour)),
		})
	})

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		visitor := s.store.HashIP(c.ClientIP())

		token, err := s.admin.Login(c.Request.Context(), username, password)
		if err != nil {
			var apiErr *admin.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
				s.logger.Info("failed admin login", zap.String("from", visitor), zap.Int("status", apiErr.StatusCode))
				msg := apiErr.Detail
				if msg == "" {
					msg = "Invalid credentials"
				}
				c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": msg})
				return
			}
			s.logger.Error("admin login unavailable", zap.Error(err))
			c.HTML(http.StatusBadGateway, "admin-login.html", gin.H{"error": "Admin API unavailable, try again later"})
			return
		}

		maxAge, err := admin.CookieMaxAge(token, s.now())
		if err != nil {
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Session expired"})
			return
		}
		s.setTokenCookie(c, token, maxAge)
		s.logger.Info("admin login successful", zap.String("from", visitor))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		s.clearTokenCookie(c)
		s.logger.Info("admin logout", zap.String("from", s.store.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware())

	// Admin dashboard
	adminGroup.GET("/dashboard", func(c *gin.Context) {
		report := s.report(c)
		if report == nil {
			return
		}
		var insights []admin.Insight
		if report.Remote != nil {
			insights = report.Remote.Insights.Insights
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":          report.Stats(),
			"formatted":      formatted(report.Stats()),
			"segmentChart":   report.SegmentChart(),
			"eventsChart":    report.EventsChart(),
			"insights":       insights,
			"localEvents":    report.LocalEvents,
			"recentVisitors": report.Local.RecentVisitors,
		})
	})

	// Admin API endpoint for the 30s refresh
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		report := s.report(c)
		if report == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"stats":         report.Stats(),
			"formatted":     formatted(report.Stats()),
			"segment_chart": report.SegmentChart(),
			"events_chart":  report.EventsChart(),
			"site_events":   report.LocalEvents,
		})
	})

	// Privacy compliance endpoint
	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		removed, err := s.store.CleanupOldVisitors(c.Request.Context())
		if err != nil {
			s.logger.Error("visitor cleanup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})

	// Admin statistics export
	adminGroup.GET("/export/stats.xlsx", func(c *gin.Context) {
		report := s.report(c)
		if report == nil {
			return
		}
		var buf bytes.Buffer
		if err := admin.WriteWorkbook(&buf, report); err != nil {
			s.logger.Error("export failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Export failed"})
			return
		}

		filename := "portfolio-stats-" + report.GeneratedAt.Format("2006-01-02") + ".xlsx"
		c.Header("Content-Disposition", "attachment; filename="+filename)
		s.logger.Info("admin stats exported", zap.String("from", s.store.HashIP(c.ClientIP())))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	})
}
