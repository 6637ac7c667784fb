package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.goodgym.dev/launcher/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNewRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := output.NewRenderer(&bytes.Buffer{})
	assert.Equal(t, termenv.Ascii, r.ColorProfile())
}

func TestNew_DefaultsToStderr(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
