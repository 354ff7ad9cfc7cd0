package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterString(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "bare", filter: NewFilter("split"), want: "split"},
		{name: "positional", filter: NewFilter("crop", Int(1080), Int(1920)), want: "crop=1080:1920"},
		{name: "mixed", filter: NewFilter("scale", Int(1080), Int(1080), KV("force_original_aspect_ratio", "decrease")), want: "scale=1080:1080:force_original_aspect_ratio=decrease"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.String())
		})
	}
}

func TestBlurFill(t *testing.T) {
	got := BlurFill(1080, 1920).String()
	want := "[0:v]split[original][copy];" +
		"[copy]scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920,boxblur=20:5[background];" +
		"[original]scale=1080:1920:force_original_aspect_ratio=decrease[foreground];" +
		"[background][foreground]overlay=(W-w)/2:(H-h)/2"
	assert.Equal(t, want, got)
}

func TestGraphThenAppendsToLastChain(t *testing.T) {
	g := BlurFill(1080, 1080).Then(Watermark("Made with OmniContent AI"), Subtitles("/tmp/a b/c.ass"))

	assert.True(t, g.Has("drawtext"))
	assert.True(t, g.Has("subtitles"))
	assert.False(t, g.Has("pad"))
	assert.Contains(t, g.String(),
		"overlay=(W-w)/2:(H-h)/2,drawtext=text='Made with OmniContent AI':x=10:y=H-th-10:fontcolor=white:fontsize=32:box=1:boxcolor=black@0.5:expansion=none,subtitles='/tmp/a b/c.ass'")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'C\:\\clips\\a.ass'`, Quote(`C:\clips\a.ass`))
	assert.Equal(t, `'it\'\''s'`, Quote("it's"))
	assert.Equal(t, `'a\:b'`, Quote("a:b"))
}

func TestWatermarkLiteralText(t *testing.T) {
	got := Watermark("Bob's 100% cut").String()

	assert.Equal(t,
		`drawtext=text='Bob\'\''s 100% cut':x=10:y=H-th-10:fontcolor=white:fontsize=32:box=1:boxcolor=black@0.5:expansion=none`,
		got)
}
