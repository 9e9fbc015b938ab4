package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderFallback draws line or pie data as a PNG and returns it wrapped in a
// <noscript> element, for pages viewed without JavaScript. Requests that are
// valid but cannot be drawn (other kinds, too few points, non-numeric
// values, an all-zero pie) return an error wrapping ErrFallbackUnsupported.
func (g *Generator) RenderFallback(elementID string, req ChartRequest) (string, error) {
	if elementID == "" {
		return "", ErrEmptyElementID
	}
	if err := req.validate(); err != nil {
		return "", err
	}
	opts := req.Effective()

	var buf bytes.Buffer
	var err error
	switch opts.Kind {
	case KindLine:
		err = renderLinePNG(&buf, opts, req)
	case KindPie:
		err = renderPiePNG(&buf, opts, req)
	default:
		return "", fmt.Errorf("%w: %s", ErrFallbackUnsupported, opts.Kind)
	}
	if err != nil {
		return "", err
	}

	img := &html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr: []html.Attribute{
			{Key: "id", Val: elementID + "-fallback"},
			{Key: "alt", Val: opts.Title},
			{Key: "width", Val: strconv.Itoa(opts.Width)},
			{Key: "height", Val: strconv.Itoa(opts.Height)},
			{Key: "src", Val: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())},
		},
	}
	noscript := &html.Node{Type: html.ElementNode, Data: "noscript", DataAtom: atom.Noscript}
	noscript.AppendChild(img)
	return renderNode(noscript)
}

// unsupportedFallback reports valid chart data that go-chart cannot draw.
func unsupportedFallback(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrFallbackUnsupported}, args...)...)
}

func renderLinePNG(buf *bytes.Buffer, opts EffectiveOptions, req ChartRequest) error {
	if len(req.Columns) == 0 {
		return unsupportedFallback("line chart has no columns")
	}
	if len(req.Rows) < 2 {
		return unsupportedFallback("line chart needs at least 2 rows, got %d", len(req.Rows))
	}

	// The first column is the x axis when it holds numbers and more columns
	// follow; otherwise every column is a series plotted against row index.
	xFromFirst := len(req.Columns) > 1 && req.Columns[0].DataType == "number"
	first := 0
	if len(req.Columns) > 1 {
		first = 1
	}

	xs := make([]float64, len(req.Rows))
	for i, row := range req.Rows {
		if !xFromFirst {
			xs[i] = float64(i)
			continue
		}
		x, err := toFloat(row[0])
		if err != nil {
			return unsupportedFallback("rows[%d]: %v", i, err)
		}
		xs[i] = x
	}

	series := make([]chart.Series, 0, len(req.Columns)-first)
	for j := first; j < len(req.Columns); j++ {
		ys := make([]float64, len(req.Rows))
		for i, row := range req.Rows {
			y, err := toFloat(row[j])
			if err != nil {
				return unsupportedFallback("rows[%d]: %v", i, err)
			}
			ys[i] = y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    req.Columns[j].Label,
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Series: series,
	}
	if opts.LegendPosition != "none" {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return unsupportedFallback("line chart: %v", err)
	}
	return nil
}

func renderPiePNG(buf *bytes.Buffer, opts EffectiveOptions, req ChartRequest) error {
	if len(req.Columns) < 2 {
		return unsupportedFallback("pie chart needs a label and a value column")
	}

	values := make([]chart.Value, 0, len(req.Rows))
	var total float64
	for i, row := range req.Rows {
		v, err := toFloat(row[1])
		if err != nil {
			return unsupportedFallback("rows[%d]: %v", i, err)
		}
		total += math.Abs(v)
		values = append(values, chart.Value{Label: fmt.Sprint(row[0]), Value: v})
	}
	if total == 0 {
		return unsupportedFallback("pie chart has no non-zero values")
	}

	pie := chart.PieChart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	if err := pie.Render(chart.PNG, buf); err != nil {
		return unsupportedFallback("pie chart: %v", err)
	}
	return nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}
