// Package markdown renders task notes for the summary pane.
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/venom/internal/cachemanager"
	"github.com/zjrosen/venom/internal/log"
)

// noMarginStyle removes the document margins glamour adds around output so
// notes line up with the panel border.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer turns markdown into styled terminal text. Glamour renderers are
// built once per width and reused.
type Renderer struct {
	style     string
	renderers *cachemanager.ReadThroughCache[string, *glamour.TermRenderer]
}

// New returns a renderer using one of glamour's standard styles
// ("dark", "light", "notty", ...).
func New(style string) *Renderer {
	r := &Renderer{style: style}
	r.renderers = cachemanager.NewReadThroughCache(
		cachemanager.NewInMemoryCacheManager[string, *glamour.TermRenderer](
			"markdown renderers", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval),
		cachemanager.NoExpiration,
		r.build,
	)
	return r
}

// Style returns the configured style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render wraps markdown to width. When glamour fails the raw text is word
// wrapped instead so the pane never goes blank.
func (r *Renderer) Render(markdown string, width int) string {
	if width < 1 {
		width = 1
	}
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	tr, err := r.renderers.Get(strconv.Itoa(width))
	if err == nil {
		var out string
		if out, err = tr.Render(markdown); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	log.ErrorErr(log.CatUI, "markdown render failed", err, "style", r.style, "width", width)
	return wordwrap.String(markdown, width)
}

func (r *Renderer) build(width string) (*glamour.TermRenderer, error) {
	w, err := strconv.Atoi(width)
	if err != nil {
		return nil, fmt.Errorf("parsing width %q: %w", width, err)
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(w),
	)
}
