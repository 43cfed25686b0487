package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Addis Ababa", SanitizeString("  Addis Ababa  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeString("<script>"))
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "admin@logitrack.com", SanitizeEmail("  Admin@LogiTrack.com "))
	assert.Equal(t, "admin@logitrack.com", SanitizeEmail("admin@logi<b>track</b>.com"))
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "+251-911-123456", SanitizePhone(" +251-911-123456 "))
	assert.Equal(t, "0911123456", SanitizePhone("abc0911123456xyz"))
}
