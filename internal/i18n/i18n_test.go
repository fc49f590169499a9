package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"de", "de"},
		{"de-DE,de;q=0.9,en;q=0.8", "de"},
		{"fr-FR,fr;q=0.9", "en"},
		{"EN-us", "en"},
		{"fr, de;q=0.5", "de"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLocale(tt.header), "header=%q", tt.header)
	}
}

func TestInviteEmailSubstitutesCodeAndExpiry(t *testing.T) {
	content := InviteEmail("en", "deadbeef", 24)

	assert.Equal(t, "Confirm your email", content.Subject)
	assert.Contains(t, content.Text, "deadbeef")
	assert.Contains(t, content.Text, "24 hour")
	assert.Contains(t, content.HTML, "<strong>deadbeef</strong>")
	assert.NotContains(t, content.Text, "{code}")
}

func TestInviteEmailFallsBackToDefaultLocale(t *testing.T) {
	unknown := InviteEmail("xx", "cafe", 1)
	english := InviteEmail("en", "cafe", 1)

	assert.Equal(t, english, unknown)
}
