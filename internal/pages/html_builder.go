package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"gchart/internal/charts"
	"gchart/internal/config"
	"gchart/internal/logger"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Settings controls the page chrome around the charts.
type Settings struct {
	LoaderURL            string
	JQueryURL            string
	VisualizationVersion string
	StaticFallback       bool
	Version              string
}

// SettingsFromConfig maps service configuration onto builder settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		LoaderURL:            cfg.LoaderURL,
		JQueryURL:            cfg.JQueryURL,
		VisualizationVersion: cfg.VisualizationVersion,
		StaticFallback:       cfg.StaticFallback,
		Version:              cfg.Version(),
	}
}

// HTMLBuilder renders pages to standalone HTML documents.
type HTMLBuilder struct {
	settings Settings
	goldmark goldmark.Markdown
	policy   *bluemonday.Policy
	log      *logger.Logger
	now      func() time.Time
}

// NewHTMLBuilder creates a builder. Notes are rendered as GitHub flavoured
// markdown; raw HTML in them is dropped by the sanitizer.
func NewHTMLBuilder(settings Settings) *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &HTMLBuilder{
		settings: settings,
		goldmark: md,
		policy:   bluemonday.UGCPolicy(),
		log:      logger.GetGlobalLogger().WithComponent("pages"),
		now:      time.Now,
	}
}

// Result is a rendered page.
type Result struct {
	Title   string
	HTML    string
	Charts  int
	Skipped []string
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title       string
	Notes       template.HTML
	Charts      []template.HTML
	LoaderURL   string
	JQueryURL   string
	GeneratedAt string
	Version     string
}

// Build renders page with a generator of its own, so loader packages are
// emitted once per page regardless of what other pages contain. Charts whose
// kind the dispatcher does not render keep their container and are reported
// in Result.Skipped.
func (h *HTMLBuilder) Build(page *Page) (*Result, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	gen := charts.NewGenerator(
		charts.WithVisualizationVersion(h.settings.VisualizationVersion),
		charts.WithLogger(h.log),
	)

	result := &Result{Title: page.DisplayTitle()}
	data := TemplateData{
		Title:       result.Title,
		LoaderURL:   h.settings.LoaderURL,
		JQueryURL:   h.settings.JQueryURL,
		GeneratedAt: h.now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     h.settings.Version,
	}

	for _, spec := range page.Charts {
		snippet, err := gen.Snippet(spec.ID, spec.Attributes, spec.Request, h.settings.StaticFallback || spec.Fallback)
		if err != nil {
			return nil, fmt.Errorf("chart %q: %w", spec.ID, err)
		}
		if snippet.Script == "" {
			h.log.Warn("Chart kind not rendered by dispatcher", map[string]interface{}{
				"chart_id": spec.ID,
				"kind":     string(spec.Request.Kind),
			})
			result.Skipped = append(result.Skipped, spec.ID)
		} else {
			result.Charts++
		}
		data.Charts = append(data.Charts, template.HTML(snippet.HTML))
	}

	notes, err := h.ConvertMarkdownToHTML(page.Notes)
	if err != nil {
		return nil, err
	}
	data.Notes = template.HTML(notes)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	result.HTML = buf.String()

	h.log.Info("Page built", map[string]interface{}{
		"title":   result.Title,
		"charts":  result.Charts,
		"skipped": len(result.Skipped),
		"bytes":   len(result.HTML),
	})
	return result, nil
}

// ConvertMarkdownToHTML converts markdown to sanitized HTML.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return string(h.policy.SanitizeBytes(buf.Bytes())), nil
}
