package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/format"
	"github.com/Amorizz/portfolio/internal/rendering"
	"github.com/Amorizz/portfolio/internal/server/middleware"
	"github.com/Amorizz/portfolio/internal/store"
)

func (s *Server) handleContactForm(c *gin.Context) {
	s.renderContact(c, http.StatusOK, rendering.ContactBody{Sent: c.Query("sent") == "1"})
}

// handleContactSubmit validates and stores a contact message, then redirects
// so a reload does not post it twice.
func (s *Server) handleContactSubmit(c *gin.Context) {
	lang := middleware.Lang(c)

	var form rendering.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, &ErrValidation{Field: "form", Message: err.Error()})
		return
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	if errs := s.contactErrors(form, lang); len(errs) > 0 {
		s.renderContact(c, http.StatusBadRequest, rendering.ContactBody{Form: form, Errors: errs})
		return
	}

	if s.store == nil {
		s.fail(c, errors.New("contact form is disabled: no message store configured"))
		return
	}

	msg := &store.Message{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
		Lang:    string(lang),
	}
	if err := s.store.SaveMessage(c.Request.Context(), msg); err != nil {
		s.fail(c, fmt.Errorf("failed to save contact message: %w", err))
		return
	}
	log.Printf("[server] contact message %s from %s", msg.ID, msg.Email)

	c.Redirect(http.StatusSeeOther, "/contact?sent=1")
}

func (s *Server) renderContact(c *gin.Context, status int, body rendering.ContactBody) {
	lang := middleware.Lang(c)

	site, err := s.loader.LoadSite(lang)
	if err != nil {
		s.fail(c, err)
		return
	}
	body.Email = site.Value.Profile.Email
	if body.Errors == nil {
		body.Errors = map[string]string{}
	}

	s.render(c, status, rendering.PageContact, format.For(lang).ContactTitle, body)
}

// contactErrors maps each invalid field (by its form name) to a localized message.
func (s *Server) contactErrors(form rendering.ContactForm, lang content.Lang) map[string]string {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"message": err.Error()}
	}

	labels := format.For(lang)
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		switch fe.Tag() {
		case "email":
			out[field] = labels.FormEmail
		case "min":
			out[field] = fmt.Sprintf(labels.FormTooShort, fe.Param())
		case "max":
			out[field] = fmt.Sprintf(labels.FormTooLong, fe.Param())
		default:
			out[field] = labels.FormRequired
		}
	}
	return out
}
