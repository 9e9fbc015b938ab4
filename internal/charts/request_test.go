package charts

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLookupKind(t *testing.T) {
	tests := []struct {
		kind        Kind
		constructor string
		module      string
	}{
		{KindArea, "AreaChart", "corechart"},
		{KindBar, "BarChart", "corechart"},
		{KindPie, "PieChart", "corechart"},
		{KindLine, "LineChart", "corechart"},
		{KindTable, "Table", "table"},
		{KindGeo, "GeoChart", "geochart"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d, err := LookupKind(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.constructor, d.Constructor)
			assert.Equal(t, tt.module, d.Module)
		})
	}

	_, err := LookupKind("scatter")
	assert.EqualError(t, err, `unknown chart kind "scatter"`)
}

func TestKindsSorted(t *testing.T) {
	assert.Equal(t, []Kind{KindArea, KindBar, KindGeo, KindLine, KindPie, KindTable}, Kinds())
}

func TestEffectiveDefaults(t *testing.T) {
	opts := ChartRequest{}.Effective()
	assert.Equal(t, Defaults(), opts)
	assert.Equal(t, EffectiveOptions{
		Title:          "",
		Kind:           KindArea,
		Width:          600,
		Height:         300,
		Is3D:           true,
		LegendPosition: "bottom",
	}, opts)
}

func TestEffectiveFieldByField(t *testing.T) {
	opts := ChartRequest{Kind: KindPie, Height: Int(120), Is3D: Bool(false)}.Effective()
	assert.Equal(t, KindPie, opts.Kind)
	assert.Equal(t, 600, opts.Width)
	assert.Equal(t, 120, opts.Height)
	assert.False(t, opts.Is3D)
	assert.Equal(t, "bottom", opts.LegendPosition)
}

func TestChartRequestDecodesJSON(t *testing.T) {
	body := `{"kind":"pie","title":"Sales","is3D":false,"extra":"ignored",
		"columns":[{"dataType":"string","label":"Task"},{"dataType":"number","label":"Hours"}],
		"rows":[["Work",11],["Eat",2]]}`

	var req ChartRequest
	require.NoError(t, jsoniter.Unmarshal([]byte(body), &req))
	assert.Equal(t, KindPie, req.Kind)
	require.NotNil(t, req.Is3D)
	assert.False(t, *req.Is3D)
	assert.Nil(t, req.Width)
	assert.Len(t, req.Columns, 2)
	assert.NoError(t, req.validate())
}

func TestChartRequestDecodesYAML(t *testing.T) {
	body := `
kind: line
legendPosition: right
columns:
  - {dataType: number, label: Day}
  - {dataType: number, label: Visits}
rows:
  - [1, 10]
  - [2, 14]
`
	var req ChartRequest
	require.NoError(t, yaml.Unmarshal([]byte(body), &req))
	assert.Equal(t, KindLine, req.Kind)
	assert.Equal(t, "right", req.Effective().LegendPosition)
	assert.Equal(t, []interface{}{2, 14}, req.Rows[1])
}

func TestFormatErrorMessage(t *testing.T) {
	err := ChartRequest{Columns: []Column{{Label: "x"}}}.validate()
	assert.EqualError(t, err, "invalid columns[0]: missing dataType")

	err = ChartRequest{Columns: []Column{{DataType: "number", Label: "x"}}, Rows: [][]interface{}{{1, 2}}}.validate()
	assert.EqualError(t, err, "invalid rows[0]: has 2 cells, want 1")
}
