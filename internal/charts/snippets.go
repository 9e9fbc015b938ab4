package charts

import "errors"

// ChartSnippet is an embeddable chart fragment.
// Div holds the container element and Script the block that draws into it.
// Fallback is an optional <noscript> image. HTML joins all three for
// direct template substitution.
type ChartSnippet struct {
	ID       string
	Title    string
	Div      string
	Script   string
	Fallback string
	HTML     string
}

// Snippet renders the container and the dispatched script for req. When the
// dispatcher skips the kind, Script is empty. withFallback adds a static image
// for kinds that support one and silently omits it for the others.
func (g *Generator) Snippet(elementID string, attrs map[string]string, req ChartRequest, withFallback bool) (ChartSnippet, error) {
	div, err := g.RenderContainer(elementID, attrs)
	if err != nil {
		return ChartSnippet{}, err
	}
	// The fallback goes first so a failure there leaves the load state and
	// sequence untouched.
	var fallback string
	if withFallback {
		fallback, err = g.RenderFallback(elementID, req)
		if errors.Is(err, ErrFallbackUnsupported) {
			fallback = ""
		} else if err != nil {
			return ChartSnippet{}, err
		}
	}

	script, err := g.Visualize(elementID, req)
	if err != nil {
		return ChartSnippet{}, err
	}

	html := div
	if fallback != "" {
		html += "\n" + fallback
	}
	if script != "" {
		html += "\n" + script
	}

	return ChartSnippet{
		ID:       elementID,
		Title:    req.Effective().Title,
		Div:      div,
		Script:   script,
		Fallback: fallback,
		HTML:     html,
	}, nil
}
