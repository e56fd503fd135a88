package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator("ru")
	assert.Equal(t, "ru", tr.DefaultLocale())

	assert.Equal(t, "Подписка уже существует", tr.T("ru", "subscription.exists", nil))
	assert.Equal(t, "Already subscribed", tr.T("en", "subscription.exists", nil))
	assert.Equal(t, "нояб.", tr.T("ru", "month.short.11", nil))
}

func TestTranslatorFallbacks(t *testing.T) {
	tr := NewTranslator("ru")

	// Unknown locale falls back to the default one.
	assert.Equal(t, "Событие не найдено", tr.T("de", "error.event_not_found", nil))
	// Unknown key comes back verbatim.
	assert.Equal(t, "no.such.key", tr.T("ru", "no.such.key", nil))
	assert.Equal(t, "", tr.T("ru", "", nil))
}

func TestTranslatorBadDefaultLocale(t *testing.T) {
	tr := NewTranslator("%%")
	assert.Equal(t, "ru", tr.DefaultLocale())
}
