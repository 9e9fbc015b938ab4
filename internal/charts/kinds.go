package charts

import "sort"

// Kind identifies a chart type in the Google Visualization API.
type Kind string

const (
	KindArea  Kind = "area"
	KindBar   Kind = "bar"
	KindPie   Kind = "pie"
	KindLine  Kind = "line"
	KindTable Kind = "table"
	KindGeo   Kind = "geochart"
)

// KindDescriptor names the visualization constructor for a kind and the
// loader package that provides it.
type KindDescriptor struct {
	Constructor string `json:"constructor"`
	Module      string `json:"module"`
}

var kindTable = map[Kind]KindDescriptor{
	KindArea:  {Constructor: "AreaChart", Module: "corechart"},
	KindBar:   {Constructor: "BarChart", Module: "corechart"},
	KindPie:   {Constructor: "PieChart", Module: "corechart"},
	KindLine:  {Constructor: "LineChart", Module: "corechart"},
	KindTable: {Constructor: "Table", Module: "table"},
	KindGeo:   {Constructor: "GeoChart", Module: "geochart"},
}

// LookupKind returns the descriptor for kind or an *UnknownKindError.
func LookupKind(kind Kind) (KindDescriptor, error) {
	d, ok := kindTable[kind]
	if !ok {
		return KindDescriptor{}, &UnknownKindError{Kind: kind}
	}
	return d, nil
}

// Kinds lists every kind in the descriptor table, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindTable))
	for k := range kindTable {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
