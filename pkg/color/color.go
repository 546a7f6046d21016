package color

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// profile is detected from the environment (NO_COLOR, CLICOLOR_FORCE, tty)
var profile = termenv.EnvColorProfile()

func EnableColor(enable bool) {
	if enable {
		profile = termenv.ANSI
		return
	}
	profile = termenv.Ascii
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func Colorize(c termenv.ANSIColor, text string) string {
	if !IsColorEnabled() {
		return text
	}
	return profile.String(text).Foreground(c).String()
}

func RedText(text string) string {
	return Colorize(termenv.ANSIRed, text)
}

func BrightRedText(text string) string {
	return Colorize(termenv.ANSIBrightRed, text)
}

func GreenText(text string) string {
	return Colorize(termenv.ANSIGreen, text)
}

func YellowText(text string) string {
	return Colorize(termenv.ANSIYellow, text)
}

func CyanText(text string) string {
	return Colorize(termenv.ANSICyan, text)
}

func GrayText(text string) string {
	return Colorize(termenv.ANSIBrightBlack, text)
}

func BoldText(text string) string {
	if !IsColorEnabled() {
		return text
	}
	return profile.String(text).Bold().String()
}

func Position(line, col int) string {
	pos := fmt.Sprintf("%d:%d", line, col)
	if !IsColorEnabled() {
		return pos
	}
	return CyanText(pos)
}

// Snippet renders one source line with a caret under column col. Tabs
// before the column are kept so the caret lines up.
func Snippet(source string, line, col int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	text := strings.TrimRight(lines[line-1], "\r")

	var pad strings.Builder
	for i, r := range text {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	gutter := fmt.Sprintf("%4d | ", line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	return GrayText(gutter) + text + "\n" + GrayText(blank) + pad.String() + RedText("^")
}

func ErrorWithPosition(line, col int, message, context string) string {
	if !IsColorEnabled() {
		return fmt.Sprintf("Error at %d:%d: %s\n%s", line, col, message, context)
	}

	return fmt.Sprintf("%s at %s: %s\n%s",
		BrightRedText(BoldText("Error")),
		Position(line, col),
		message,
		context)
}
