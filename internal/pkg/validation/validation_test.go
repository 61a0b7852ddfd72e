package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("sanne@example.com"))
	assert.True(t, IsValidEmail("s.de.vries+coffee@sub.example.nl"))
	assert.False(t, IsValidEmail("sanne@example"))
	assert.False(t, IsValidEmail("sanne example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidFullname(t *testing.T) {
	assert.True(t, IsValidFullname("Sanne de Vries"))
	assert.True(t, IsValidFullname("Anne-Marie O'Neill"))
	assert.False(t, IsValidFullname(""))
	assert.False(t, IsValidFullname("Sanne123"))
	assert.False(t, IsValidFullname("<script>"))
}
