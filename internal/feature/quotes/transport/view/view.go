// Package view turns a fetch state into the one display branch the panel shows.
// The web page, the JSON API and the terminal all render from Panel.
package view

import (
	"quotepanel/internal/feature/quotes/domain/entity"
)

// MaxRows caps the table at the first rows in provider order.
const MaxRows = 10

const (
	Title       = "Stock Data (5-Minute Intervals)"
	Placeholder = "Enter Stock Symbol (e.g. IBM)"
	ButtonLabel = "Fetch Data"
	LoadingText = "Loading..."
	NoDataText  = "No data available."
	RetryLabel  = "Retry"
)

// Columns is the fixed table header.
var Columns = []string{"Time", "Open", "High", "Low", "Close", "Volume"}

// Branch names which part of the panel is visible. Exactly one is.
type Branch string

const (
	BranchLoading Branch = "loading"
	BranchTable   Branch = "table"
	BranchNoData  Branch = "no_data"
	BranchFailed  Branch = "failed"
)

// Row is one table row.
type Row struct {
	entity.Quote
}

// Cells returns the row in Columns order. Missing values render as "".
func (r Row) Cells() []string {
	return []string{
		r.Time,
		r.Open.ValueOrZero(),
		r.High.ValueOrZero(),
		r.Low.ValueOrZero(),
		r.Close.ValueOrZero(),
		r.Volume.ValueOrZero(),
	}
}

// Panel is the render model.
type Panel struct {
	Title    string   `json:"title"`
	Symbol   string   `json:"symbol"`
	Status   string   `json:"status"`
	Branch   Branch   `json:"branch"`
	Columns  []string `json:"columns,omitempty"`
	Rows     []Row    `json:"rows,omitempty"`
	Total    int      `json:"total"`
	Message  string   `json:"message,omitempty"`
	Notice   string   `json:"notice,omitempty"`
	Error    string   `json:"error,omitempty"`
	CanRetry bool     `json:"can_retry"`
}

// Loading reports whether the loading indicator is shown.
func (p Panel) Loading() bool { return p.Branch == BranchLoading }

// Build selects the branch for st and fills the fields it needs.
func Build(st entity.FetchState) Panel {
	p := Panel{
		Title:  Title,
		Symbol: st.Symbol,
		Status: st.Status.String(),
		Total:  len(st.Series),
	}

	switch st.Status {
	case entity.StatusPopulated:
		if len(st.Series) == 0 {
			p.Branch = BranchNoData
			p.Message = NoDataText
			return p
		}
		p.Branch = BranchTable
		p.Columns = Columns
		head := st.Series.Head(MaxRows)
		p.Rows = make([]Row, 0, len(head))
		for _, q := range head {
			p.Rows = append(p.Rows, Row{Quote: q})
		}
	case entity.StatusEmpty:
		p.Branch = BranchNoData
		p.Message = NoDataText
		p.Notice = st.Notice
	case entity.StatusFailed:
		p.Branch = BranchFailed
		p.Error = st.Err
		p.CanRetry = true
	default:
		p.Branch = BranchLoading
		p.Message = LoadingText
	}
	return p
}
