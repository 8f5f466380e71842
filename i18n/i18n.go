// Package i18n translates the fixed UI strings. Detect picks the language
// from HOLDPAD_LANG, falling back to the system locale; a later SetLang, as
// done for the --lang flag, overrides both.
package i18n

import (
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
	"go.uber.org/zap"
)

// EnvLang overrides the detected language.
const EnvLang = "HOLDPAD_LANG"

var lang = "en"

var supported = []string{"pt", "es", "ru"}

var translations = map[string]map[string]string{
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Help": {
		"pt": "Ajuda",
		"es": "Ayuda",
		"ru": "Справка",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
	"Pan": {
		"pt": "Panorâmica",
		"es": "Paneo",
		"ru": "Панорама",
	},
	"Tilt": {
		"pt": "Inclinação",
		"es": "Inclinación",
		"ru": "Наклон",
	},
	"Zoom": {
		"pt": "Zoom",
		"es": "Zoom",
		"ru": "Зум",
	},
	"Volume": {
		"pt": "Volume",
		"es": "Volumen",
		"ru": "Громкость",
	},
}

// Detect sets the language from EnvLang or, failing that, the user's
// locale. Unsupported locales fall back to English.
func Detect(logger *zap.Logger) {
	if forced := strings.TrimSpace(os.Getenv(EnvLang)); forced != "" {
		logger.Info("Language forced by environment", zap.String("env", EnvLang), zap.String("lang", forced))
		SetLang(forced)
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		logger.Info("No user locale detected, defaulting to english", zap.Error(err))
		lang = "en"
		return
	}

	logger.Debug("Detected user locale", zap.String("locale", userLocales[0]))
	SetLang(userLocales[0])
	logger.Info("Language set", zap.String("lang", lang))
}

// SetLang selects a language by locale or language code, such as "pt_BR"
// or "es".
func SetLang(code string) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range supported {
		if strings.HasPrefix(code, l) {
			lang = l
			return
		}
	}
	lang = "en"
}

// T returns the translation of key, or key itself.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// GetLang returns the active language code.
func GetLang() string {
	return lang
}
