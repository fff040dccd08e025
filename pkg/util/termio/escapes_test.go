package termio

import (
	"testing"

	"github.com/miniquantum/go-mqa/pkg/util/assert"
)

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
}

func Test_Escape_02(t *testing.T) {
	assert.Equal(t, "\033[1;31m", NewAnsiEscape().Bold().FgColour(TERM_RED).Build())
}

func Test_Highlight_01(t *testing.T) {
	escape := NewAnsiEscape().FgColour(TERM_YELLOW)
	//
	assert.Equal(t, "^^", Highlight("^^", escape, false))
	assert.Equal(t, "\033[33m^^\033[0m", Highlight("^^", escape, true))
}
