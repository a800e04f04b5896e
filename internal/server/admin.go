package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Amorizz/portfolio/internal/config"
	"github.com/Amorizz/portfolio/internal/format"
	"github.com/Amorizz/portfolio/internal/rendering"
	"github.com/Amorizz/portfolio/internal/server/middleware"
)

// adminMessageLimit is the number of messages listed on the dashboard.
const adminMessageLimit = 100

// loginForm is the admin login form.
type loginForm struct {
	Password string `form:"password" validate:"required,max=256"`
}

func (s *Server) handleLoginForm(c *gin.Context) {
	s.render(c, http.StatusOK, rendering.PageLogin, "Admin", rendering.LoginBody{})
}

// handleLogin checks the admin password and sets the session cookie.
func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)

	if err := s.validate.Struct(form); err != nil || !s.passwords.VerifyAdmin(form.Password) {
		log.Printf("[server] failed admin login from %s", middleware.HashIP(c.ClientIP(), s.ipSalt))
		s.render(c, HTTPStatus(&ErrInvalidCredentials{}), rendering.PageLogin, "Admin", rendering.LoginBody{
			Error: format.For(middleware.Lang(c)).LoginFailed,
		})
		return
	}

	token, err := s.jwtService.GenerateToken(adminSubject)
	if err != nil {
		s.fail(c, err)
		return
	}

	maxAge := int(s.jwtService.config.Expiration().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(config.AdminCookieName, token, maxAge, "/admin", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) handleLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(config.AdminCookieName, "", -1, "/admin", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// handleDashboard lists the contact messages and visit statistics.
// ?days= sets the statistics window.
func (s *Server) handleDashboard(c *gin.Context) {
	body := rendering.AdminBody{}

	if s.store != nil {
		days, _ := strconv.Atoi(c.Query("days"))

		stats, err := s.store.VisitStats(c.Request.Context(), days)
		if err != nil {
			s.fail(c, err)
			return
		}
		messages, err := s.store.ListMessages(c.Request.Context(), adminMessageLimit)
		if err != nil {
			s.fail(c, err)
			return
		}
		body.VisitStats = *stats
		body.Messages = messages
	}

	c.Header("Cache-Control", "no-store")
	s.render(c, http.StatusOK, rendering.PageAdmin, "Admin", body)
}
