package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/prefs"
)

// Cookies written by Language.
const (
	LangCookie    = "preferred-language"
	VisitorCookie = "visitor_id"
)

const langKey = "lang"

var cookieMaxAge = int(prefs.DefaultTTL.Seconds())

// Language resolves the request language once and stores it in the context:
// the ?lang= query (which is persisted), then the preference store keyed by
// the visitor cookie, then the preferred-language cookie, then the default.
// store may be nil.
func Language(store prefs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, resolveLang(c, store))
		c.Next()
	}
}

// Lang returns the language resolved for the request.
func Lang(c *gin.Context) content.Lang {
	if v, ok := c.Get(langKey); ok {
		if lang, ok := v.(content.Lang); ok {
			return lang
		}
	}
	return content.DefaultLang
}

func resolveLang(c *gin.Context, store prefs.Store) content.Lang {
	if q := c.Query("lang"); q != "" {
		if lang, err := content.ParseLang(q); err == nil {
			persistLang(c, store, lang)
			return lang
		}
	}

	if store != nil {
		if id, err := c.Cookie(VisitorCookie); err == nil && id != "" {
			lang, ok, err := store.Get(c.Request.Context(), id)
			if err != nil {
				log.Printf("[prefs] lookup failed for visitor %s: %v", id, err)
			} else if ok {
				return lang
			}
		}
	}

	if v, err := c.Cookie(LangCookie); err == nil {
		if lang, err := content.ParseLang(v); err == nil {
			return lang
		}
	}

	return content.DefaultLang
}

func persistLang(c *gin.Context, store prefs.Store, lang content.Lang) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LangCookie, string(lang), cookieMaxAge, "/", "", false, false)
	if store == nil {
		return
	}
	if err := store.Set(c.Request.Context(), visitorID(c), lang); err != nil {
		log.Printf("[prefs] failed to save language: %v", err)
	}
}

// visitorID returns the visitor cookie, issuing a new one when missing or malformed.
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(VisitorCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(VisitorCookie, id, cookieMaxAge, "/", "", false, true)
	return id
}
