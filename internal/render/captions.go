package render

import (
	"fmt"
	"math"
	"strings"

	"atomizer/internal/domain"
)

const assFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

type captionStyle struct {
	name string
	line string
}

var captionStyles = map[domain.CaptionStyle]captionStyle{
	domain.CaptionDefault: {
		name: "Default",
		line: "Style: Default,Arial,70,&H00FFFFFF,&H000000FF,&H00222222,&H00000000,-1,0,0,0,100,100,0,0,1,3,1,2,10,10,60,1",
	},
	domain.CaptionHighlight: {
		name: "Highlight",
		line: "Style: Highlight,Impact,80,&H0000FFFF,&H000000FF,&H00000000,&H00FFFFFF,-1,0,0,0,100,100,0,0,1,4,2,2,10,10,60,1",
	},
	domain.CaptionKaraoke: {
		name: "Karaoke",
		line: "Style: Karaoke,Verdana,75,&H00FFFFFF,&H000088FF,&H00000000,&H00000000,-1,0,0,0,100,100,0,0,1,3,1,2,10,10,60,1",
	},
}

// BuildASS renders one dialogue event per word. Word times are absolute
// source seconds; events are shifted to clip-local offsets and clamped to
// [0, end-start]. Words falling wholly outside the range are skipped.
func BuildASS(words []domain.WordEvent, start, end float64, style domain.CaptionStyle, width, height int) string {
	st, ok := captionStyles[style]
	if !ok {
		st = captionStyles[domain.CaptionDefault]
	}

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("Title: OmniContent AI Captions\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\nPlayResY: %d\n\n", width, height)
	b.WriteString("[V4+ Styles]\n")
	b.WriteString(assFormat + "\n")
	b.WriteString(st.line + "\n\n")
	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	length := end - start
	for _, w := range words {
		text := sanitizeWord(w.Word)
		if text == "" {
			continue
		}
		if w.End <= start || w.Start >= end {
			continue
		}
		ws := clamp(w.Start-start, 0, length)
		we := clamp(w.End-start, 0, length)
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n", assTime(ws), assTime(we), st.name, text)
	}

	return b.String()
}

// assTime formats seconds as H:MM:SS.cc, truncating below a centisecond.
func assTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	cs := int64(math.Floor(sec*100 + 1e-6))
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func sanitizeWord(s string) string {
	s = strings.ReplaceAll(s, "\\", "")
	s = strings.NewReplacer(",", "", ".", "", "{", "", "}", "", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
