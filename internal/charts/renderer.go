package charts

const vizNamespace = "google.visualization"

// Renderer emits the data loading statements for one chart kind. The
// statements must bind a data table to the variable named data.
type Renderer interface {
	Kind() Kind
	LoadData(data string, req ChartRequest) ([]Stmt, error)
}

// columnRenderer declares each column on a DataTable and bulk-inserts rows.
type columnRenderer struct{ kind Kind }

// ColumnRenderer loads data column by column into a DataTable.
func ColumnRenderer(kind Kind) Renderer { return columnRenderer{kind: kind} }

func (c columnRenderer) Kind() Kind { return c.kind }

func (c columnRenderer) LoadData(data string, req ChartRequest) ([]Stmt, error) {
	stmts := []Stmt{Var(data, New(Ref(vizNamespace+".DataTable")))}
	for _, col := range req.Columns {
		args := []Expr{Lit(col.DataType), Lit(col.Label)}
		if col.ID != "" {
			args = append(args, Lit(col.ID))
		}
		stmts = append(stmts, Do(Call(Member(Ref(data), "addColumn"), args...)))
	}
	stmts = append(stmts, Do(Call(Member(Ref(data), "addRows"), Lit(rowsOrEmpty(req.Rows)))))
	return stmts, nil
}

// arrayRenderer converts a header row plus data rows in one call.
type arrayRenderer struct{ kind Kind }

// ArrayRenderer loads data with arrayToDataTable, using column labels as the
// header row.
func ArrayRenderer(kind Kind) Renderer { return arrayRenderer{kind: kind} }

func (a arrayRenderer) Kind() Kind { return a.kind }

func (a arrayRenderer) LoadData(data string, req ChartRequest) ([]Stmt, error) {
	header := make([]interface{}, len(req.Columns))
	for i, col := range req.Columns {
		header[i] = col.Label
	}
	table := make([][]interface{}, 0, len(req.Rows)+1)
	table = append(table, header)
	table = append(table, req.Rows...)
	return []Stmt{
		Var(data, Call(Ref(vizNamespace+".arrayToDataTable"), Lit(table))),
	}, nil
}

func rowsOrEmpty(rows [][]interface{}) [][]interface{} {
	if rows == nil {
		return [][]interface{}{}
	}
	return rows
}

// defaultRenderers are the kinds Visualize dispatches to out of the box.
func defaultRenderers() map[Kind]Renderer {
	return map[Kind]Renderer{
		KindLine: ColumnRenderer(KindLine),
		KindPie:  ArrayRenderer(KindPie),
	}
}
