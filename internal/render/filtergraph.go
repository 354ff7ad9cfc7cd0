package render

import (
	"strconv"
	"strings"
)

// Arg is one filter parameter. An empty Key renders as a positional value.
type Arg struct {
	Key   string
	Value string
}

func Pos(v string) Arg { return Arg{Value: v} }
func Int(v int) Arg { return Arg{Value: strconv.Itoa(v)} }
func KV(key, value string) Arg { return Arg{Key: key, Value: value} }
func KVInt(key string, v int) Arg { return Arg{Key: key, Value: strconv.Itoa(v)} }

// Filter is a single ffmpeg filter such as scale or overlay.
type Filter struct {
	Name string
	Args []Arg
}

func NewFilter(name string, args ...Arg) Filter {
	return Filter{Name: name, Args: args}
}

func (f Filter) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		if a.Key == "" {
			parts[i] = a.Value
		} else {
			parts[i] = a.Key + "=" + a.Value
		}
	}
	return f.Name + "=" + strings.Join(parts, ":")
}

// Chain is a comma-joined run of filters between labelled pads.
type Chain struct {
	Inputs  []string
	Filters []Filter
	Outputs []string
}

func (c Chain) String() string {
	var b strings.Builder
	for _, in := range c.Inputs {
		b.WriteString("[" + in + "]")
	}
	for i, f := range c.Filters {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(f.String())
	}
	for _, out := range c.Outputs {
		b.WriteString("[" + out + "]")
	}
	return b.String()
}

// Graph is an ordered list of chains rendered as a -vf/-filter_complex value.
type Graph struct {
	chains []Chain
}

func (g *Graph) Chain(inputs, outputs []string, filters ...Filter) *Graph {
	g.chains = append(g.chains, Chain{Inputs: inputs, Filters: filters, Outputs: outputs})
	return g
}

// Then appends filters to the last chain.
func (g *Graph) Then(filters ...Filter) *Graph {
	if len(g.chains) == 0 {
		g.chains = append(g.chains, Chain{})
	}
	last := &g.chains[len(g.chains)-1]
	last.Filters = append(last.Filters, filters...)
	return g
}

// Has reports whether any chain contains a filter named name.
func (g *Graph) Has(name string) bool {
	for _, c := range g.chains {
		for _, f := range c.Filters {
			if f.Name == name {
				return true
			}
		}
	}
	return false
}

func (g *Graph) String() string {
	parts := make([]string, len(g.chains))
	for i, c := range g.chains {
		parts[i] = c.String()
	}
	return strings.Join(parts, ";")
}

// Quote escapes v for both filtergraph parsing levels. The option level gets
// backslash escapes; the graph level strips the surrounding quotes, where a
// backslash is literal, so each quote closes, escapes and reopens.
func Quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "'", `\'`)
	v = strings.ReplaceAll(v, ":", `\:`)
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// BlurFill builds the blurred-background composite: the source is scaled to
// cover w x h and blurred, then the source scaled to fit is centered on top.
func BlurFill(w, h int) *Graph {
	g := &Graph{}
	g.Chain([]string{"0:v"}, []string{"original", "copy"}, NewFilter("split"))
	g.Chain([]string{"copy"}, []string{"background"},
		NewFilter("scale", Int(w), Int(h), KV("force_original_aspect_ratio", "increase")),
		NewFilter("crop", Int(w), Int(h)),
		NewFilter("boxblur", Int(20), Int(5)),
	)
	g.Chain([]string{"original"}, []string{"foreground"},
		NewFilter("scale", Int(w), Int(h), KV("force_original_aspect_ratio", "decrease")),
	)
	g.Chain([]string{"background", "foreground"}, nil,
		NewFilter("overlay", Pos("(W-w)/2"), Pos("(H-h)/2")),
	)
	return g
}

// Watermark draws text in the bottom-left corner.
func Watermark(text string) Filter {
	return NewFilter("drawtext",
		KV("text", Quote(text)),
		KVInt("x", 10),
		KV("y", "H-th-10"),
		KV("fontcolor", "white"),
		KVInt("fontsize", 32),
		KVInt("box", 1),
		KV("boxcolor", "black@0.5"),
		KV("expansion", "none"),
	)
}

// Subtitles burns the ASS file at path.
func Subtitles(path string) Filter {
	return NewFilter("subtitles", Pos(Quote(path)))
}
