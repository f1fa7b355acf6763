package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typr/internal/typing"
)

type status int

const (
	statusUntyped status = iota
	statusCorrect
	statusIncorrect
	statusCurrentUntyped
	statusCurrentCorrect
	statusCurrentIncorrect
	statusCursor
	statusOvertyped
)

type part struct {
	text   string
	status status
}

// wordParts splits a word into runs of equal status. Past words show missing
// runes as untyped; the current word marks its first untyped rune as the
// cursor.
func wordParts(w typing.Word, current, caseInsensitive bool) []part {
	var parts []part
	push := func(r rune, st status) {
		if n := len(parts); n > 0 && parts[n-1].status == st {
			parts[n-1].text += string(r)
			return
		}
		parts = append(parts, part{text: string(r), status: st})
	}

	progress := []rune(w.Progress)
	target := []rune(w.Text)
	cursorPlaced := false
	for i, tc := range target {
		var st status
		switch {
		case i >= len(progress) && current && !cursorPlaced:
			st = statusCursor
			cursorPlaced = true
		case i >= len(progress) && current:
			st = statusCurrentUntyped
		case i >= len(progress):
			st = statusUntyped
		case runesMatch(progress[i], tc, caseInsensitive):
			st = statusCorrect
			if current {
				st = statusCurrentCorrect
			}
		default:
			st = statusIncorrect
			if current {
				st = statusCurrentIncorrect
			}
		}
		if st == statusCursor {
			parts = append(parts, part{text: string(tc), status: st})
			continue
		}
		push(tc, st)
	}
	if len(progress) > len(target) {
		parts = append(parts, part{text: string(progress[len(target):]), status: statusOvertyped})
	}
	return parts
}

func runesMatch(a, b rune, caseInsensitive bool) bool {
	if caseInsensitive {
		return unicode.ToLower(a) == unicode.ToLower(b)
	}
	return a == b
}

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes renders words[0:end] with the word at current as the
// active one, separating words with a pending-styled space.
func buildStyledRunes(words []typing.Word, current, end int, caseInsensitive bool, st styles) []styledRune {
	if end > len(words) {
		end = len(words)
	}
	var out []styledRune
	for i := 0; i < end; i++ {
		var parts []part
		if i > current {
			parts = []part{{text: words[i].Text, status: statusUntyped}}
		} else {
			parts = wordParts(words[i], i == current, caseInsensitive)
		}
		for _, p := range parts {
			style := st.forStatus(p.status)
			for _, r := range p.text {
				out = append(out, styledRune{
					s:       style.Render(string(r)),
					width:   runewidth.RuneWidth(r),
					isSpace: r == ' ',
				})
			}
		}
		out = append(out, styledRune{
			s:       st.pending.Render(" "),
			width:   1,
			isSpace: true,
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
