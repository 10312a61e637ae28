package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	languageCookieName = "ciclo_lang"
	contextLanguageKey = "current_language"
)

// LanguageMiddleware picks the response language: an explicit ?lang= (which is
// remembered in a cookie), then the cookie, then Accept-Language, then the
// language stored in settings.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := ""
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
		handler.setLanguageCookie(c, language)
	} else if cookieLanguage := c.Cookies(languageCookieName); cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	} else if accept := strings.TrimSpace(c.Get(fiber.HeaderAcceptLanguage)); accept != "" {
		language = handler.i18n.DetectFromAcceptLanguage(accept)
	} else {
		language = handler.storedLanguage()
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) storedLanguage() string {
	settings, err := handler.settingsService.Load()
	if err != nil {
		return handler.i18n.DefaultLanguage()
	}
	return handler.i18n.NormalizeLanguage(settings.Language)
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		HTTPOnly: false,
		SameSite: "Lax",
		Expires:  handler.now().AddDate(1, 0, 0),
	})
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(handler.currentLanguage(c), key)
}
