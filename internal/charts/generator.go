package charts

import (
	"fmt"
	"sync"

	"gchart/internal/logger"
)

// DefaultVisualizationVersion is the version passed to google.load.
const DefaultVisualizationVersion = "1"

// Generator renders chart containers and scripts for one page. It remembers
// which loader packages it has already emitted, so a page should get its own
// Generator; sharing one across pages suppresses load calls those pages need.
type Generator struct {
	mu        sync.Mutex
	version   string
	loaded    map[string]bool
	seq       int
	renderers map[Kind]Renderer
	log       *logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithVisualizationVersion sets the version argument of google.load.
func WithVisualizationVersion(version string) Option {
	return func(g *Generator) {
		if version != "" {
			g.version = version
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGenerator creates a generator with an empty load state and the default
// line and pie renderers registered.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		version:   DefaultVisualizationVersion,
		loaded:    make(map[string]bool),
		renderers: defaultRenderers(),
		log:       logger.GetGlobalLogger().WithComponent("charts"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register makes Visualize dispatch r.Kind() to r.
func (g *Generator) Register(r Renderer) error {
	if _, err := LookupKind(r.Kind()); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.renderers[r.Kind()] = r
	return nil
}

// Supports reports whether Visualize renders kind.
func (g *Generator) Supports(kind Kind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.renderers[kind]
	return ok
}

// Visualize renders req with the renderer registered for req.Kind. A kind
// without a registered renderer yields an empty string and no error; use
// Supports to tell the two apart.
func (g *Generator) Visualize(elementID string, req ChartRequest) (string, error) {
	g.mu.Lock()
	r, ok := g.renderers[req.Kind]
	g.mu.Unlock()
	if !ok {
		g.log.Debug("Skipping chart with unsupported kind", map[string]interface{}{
			"element_id": elementID,
			"kind":       string(req.Kind),
		})
		return "", nil
	}
	return g.RenderWith(elementID, r, req)
}

// RenderLineChart renders req as a line chart.
func (g *Generator) RenderLineChart(elementID string, req ChartRequest) (string, error) {
	return g.RenderWith(elementID, ColumnRenderer(KindLine), req)
}

// RenderPieChart renders req as a pie chart.
func (g *Generator) RenderPieChart(elementID string, req ChartRequest) (string, error) {
	return g.RenderWith(elementID, ArrayRenderer(KindPie), req)
}

// RenderWith renders req as r.Kind(), regardless of req.Kind, into a single
// script block. Nothing is recorded as loaded unless rendering succeeds.
func (g *Generator) RenderWith(elementID string, r Renderer, req ChartRequest) (string, error) {
	if elementID == "" {
		return "", ErrEmptyElementID
	}
	kind := r.Kind()
	desc, err := LookupKind(kind)
	if err != nil {
		return "", err
	}
	req.Kind = kind
	if err := req.validate(); err != nil {
		return "", err
	}
	opts := req.Effective()

	g.mu.Lock()
	defer g.mu.Unlock()

	seq := g.seq + 1
	dataVar := fmt.Sprintf("%s_data_%d", kind, seq)
	chartVar := fmt.Sprintf("%s_chart_%d", kind, seq)
	drawFn := fmt.Sprintf("drawChart%d", seq)

	body, err := r.LoadData(dataVar, req)
	if err != nil {
		return "", err
	}
	body = append(body,
		Var(chartVar, New(
			Ref(vizNamespace+"."+desc.Constructor),
			Call(Ref("document.getElementById"), Lit(elementID)),
		)),
		Do(Call(Member(Ref(chartVar), "draw"), Ref(dataVar), drawOptions(opts))),
	)

	var ready []Stmt
	needsLoad := !g.loaded[desc.Module]
	if needsLoad {
		ready = append(ready, g.loadStmt(desc.Module))
	}
	ready = append(ready,
		FuncDecl(drawFn, nil, body...),
		Do(Call(Ref(drawFn))),
	)

	js, err := Script(Do(Call(Member(Call(Ref("$"), Ref("document")), "ready"), Func(nil, ready...))))
	if err != nil {
		return "", &FormatError{Field: "rows", Index: -1, Err: err}
	}

	g.seq = seq
	if needsLoad {
		g.loaded[desc.Module] = true
		g.log.Debug("Emitting visualization package load", map[string]interface{}{"module": desc.Module})
	}
	return "<script type=\"text/javascript\">\n" + js + "\n</script>", nil
}

// EnsureModuleLoaded returns the google.load statement for kind's package the
// first time that package is requested and an empty string afterwards.
func (g *Generator) EnsureModuleLoaded(kind Kind) (string, error) {
	desc, err := LookupKind(kind)
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loaded[desc.Module] {
		return "", nil
	}
	js, err := Script(g.loadStmt(desc.Module))
	if err != nil {
		return "", err
	}
	g.loaded[desc.Module] = true
	return js, nil
}

func (g *Generator) loadStmt(module string) Stmt {
	return Do(Call(Ref("google.load"),
		Lit("visualization"),
		Lit(g.version),
		Object(Prop{Key: "packages", Value: Array(Lit(module))}),
	))
}

func drawOptions(opts EffectiveOptions) Expr {
	return Object(
		Prop{Key: "width", Value: Lit(opts.Width)},
		Prop{Key: "height", Value: Lit(opts.Height)},
		Prop{Key: "is3D", Value: Lit(opts.Is3D)},
		Prop{Key: "legend", Value: Lit(opts.LegendPosition)},
		Prop{Key: "title", Value: Lit(opts.Title)},
	)
}
