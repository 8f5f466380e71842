package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetLang(t *testing.T) {
	defer SetLang("en")

	tests := []struct {
		code string
		want string
	}{
		{"pt_BR", "pt"},
		{"es-AR", "es"},
		{" RU ", "ru"},
		{"de_DE", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		SetLang(tt.code)
		assert.Equal(t, tt.want, GetLang(), tt.code)
	}
}

func TestTranslate(t *testing.T) {
	defer SetLang("en")

	SetLang("es")
	assert.Equal(t, "Reiniciar", T("Reset"))
	assert.Equal(t, "Untranslated", T("Untranslated"))

	SetLang("en")
	assert.Equal(t, "Reset", T("Reset"))
}

func TestDetectHonorsEnvironment(t *testing.T) {
	defer SetLang("en")

	t.Setenv(EnvLang, "pt")
	Detect(zap.NewNop())
	assert.Equal(t, "pt", GetLang())
}

func TestSetLangOverridesEnvironment(t *testing.T) {
	defer SetLang("en")

	t.Setenv(EnvLang, "pt")
	Detect(zap.NewNop())
	SetLang("es")
	assert.Equal(t, "es", GetLang())
}
