package charts

// Column declares one data table column.
type Column struct {
	DataType string `json:"dataType" yaml:"dataType"`
	Label    string `json:"label" yaml:"label"`
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
}

// ChartRequest is the caller-supplied description of one chart. Optional
// chrome fields are pointers so that explicit zero values still override
// the defaults.
type ChartRequest struct {
	Kind           Kind            `json:"kind" yaml:"kind"`
	Title          *string         `json:"title,omitempty" yaml:"title,omitempty"`
	Width          *int            `json:"width,omitempty" yaml:"width,omitempty"`
	Height         *int            `json:"height,omitempty" yaml:"height,omitempty"`
	Is3D           *bool           `json:"is3D,omitempty" yaml:"is3D,omitempty"`
	LegendPosition *string         `json:"legendPosition,omitempty" yaml:"legendPosition,omitempty"`
	Columns        []Column        `json:"columns" yaml:"columns"`
	Rows           [][]interface{} `json:"rows" yaml:"rows"`
}

// EffectiveOptions holds the chrome options after defaulting.
type EffectiveOptions struct {
	Title          string
	Kind           Kind
	Width          int
	Height         int
	Is3D           bool
	LegendPosition string
}

// Defaults returns the options applied when a request leaves a field unset.
func Defaults() EffectiveOptions {
	return EffectiveOptions{
		Title:          "",
		Kind:           KindArea,
		Width:          600,
		Height:         300,
		Is3D:           true,
		LegendPosition: "bottom",
	}
}

// Effective merges the request over Defaults field by field.
func (r ChartRequest) Effective() EffectiveOptions {
	opts := Defaults()
	if r.Kind != "" {
		opts.Kind = r.Kind
	}
	if r.Title != nil {
		opts.Title = *r.Title
	}
	if r.Width != nil {
		opts.Width = *r.Width
	}
	if r.Height != nil {
		opts.Height = *r.Height
	}
	if r.Is3D != nil {
		opts.Is3D = *r.Is3D
	}
	if r.LegendPosition != nil {
		opts.LegendPosition = *r.LegendPosition
	}
	return opts
}

// validate checks the structural shape of columns and rows. Serializability
// of cell values is checked when the literals are encoded.
func (r ChartRequest) validate() error {
	for i, c := range r.Columns {
		if c.DataType == "" {
			return formatErr("columns", i, "missing dataType")
		}
		if c.Label == "" {
			return formatErr("columns", i, "missing label")
		}
	}
	for i, row := range r.Rows {
		if len(row) != len(r.Columns) {
			return formatErr("rows", i, "has %d cells, want %d", len(row), len(r.Columns))
		}
	}
	return nil
}

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }

// Int returns a pointer to n, for optional request fields.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for optional request fields.
func Bool(b bool) *bool { return &b }
