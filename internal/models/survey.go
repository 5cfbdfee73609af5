package models

// ChartType identifies how the mobile app renders a survey's results.
type ChartType string

const (
	ChartBar           ChartType = "bar"
	ChartLine          ChartType = "line"
	ChartPie           ChartType = "pie"
	ChartProgress      ChartType = "progress"
	ChartContribution  ChartType = "contribution"
	ChartStackedBar    ChartType = "stackedBar"
	ChartBezierLine    ChartType = "bezierLine"
	ChartAreaChart     ChartType = "areaChart"
	ChartHorizontalBar ChartType = "horizontalBar"
)

var chartTypes = map[ChartType]bool{
	ChartBar:           true,
	ChartLine:          true,
	ChartPie:           true,
	ChartProgress:      true,
	ChartContribution:  true,
	ChartStackedBar:    true,
	ChartBezierLine:    true,
	ChartAreaChart:     true,
	ChartHorizontalBar: true,
}

func (t ChartType) Known() bool { return chartTypes[t] }

// Survey is one chart-backed result card in the `feed` collection. Documents
// are authored out-of-band; the backend only ever writes the report field.
type Survey struct {
	ID          string     `firestore:"-" json:"id"`
	Title       string     `firestore:"title" json:"title"`
	Category    string     `firestore:"category" json:"category"`
	Question    string     `firestore:"question" json:"question"`
	Description string     `firestore:"description" json:"description"`
	ChartType   ChartType  `firestore:"chartType" json:"chartType"`
	ChartData   *ChartData `firestore:"chartData" json:"chartData"`
	Report      string     `firestore:"report,omitempty" json:"report,omitempty"`
}

// Valid reports whether the document carries every required field and a
// chart payload that matches its chart type. Invalid documents are dropped
// at load time.
func (s *Survey) Valid() bool {
	if s.Title == "" || s.Category == "" || s.Question == "" || s.Description == "" {
		return false
	}
	if !s.ChartType.Known() {
		return false
	}
	return s.ChartData != nil && s.ChartData.ValidFor(s.ChartType)
}

// ChartData holds one variant per chart family. Only the fields for the
// survey's chart type are populated; ValidFor enforces which ones.
type ChartData struct {
	// Axis charts: bar, line, bezierLine, areaChart, horizontalBar.
	Labels   []string      `firestore:"labels,omitempty" json:"labels,omitempty"`
	Datasets []ChartSeries `firestore:"datasets,omitempty" json:"datasets,omitempty"`

	// pie
	Slices []PieSlice `firestore:"slices,omitempty" json:"slices,omitempty"`

	// progress: one 0..1 value per label.
	Values []float64 `firestore:"values,omitempty" json:"values,omitempty"`

	// stackedBar: one row per label, one column per legend entry.
	Legend []string    `firestore:"legend,omitempty" json:"legend,omitempty"`
	Matrix [][]float64 `firestore:"matrix,omitempty" json:"matrix,omitempty"`

	// contribution: date-keyed counts.
	Days []ContributionDay `firestore:"days,omitempty" json:"days,omitempty"`
}

type ChartSeries struct {
	Name string    `firestore:"name,omitempty" json:"name,omitempty"`
	Data []float64 `firestore:"data" json:"data"`
}

type PieSlice struct {
	Name  string  `firestore:"name" json:"name"`
	Value float64 `firestore:"value" json:"value"`
	Color string  `firestore:"color,omitempty" json:"color,omitempty"`
}

type ContributionDay struct {
	Date  string `firestore:"date" json:"date"` // YYYY-MM-DD
	Count int    `firestore:"count" json:"count"`
}

// ValidFor checks the fields the given chart type requires.
func (d *ChartData) ValidFor(t ChartType) bool {
	switch t {
	case ChartBar, ChartLine, ChartBezierLine, ChartAreaChart, ChartHorizontalBar:
		if len(d.Labels) == 0 || len(d.Datasets) == 0 {
			return false
		}
		for _, ds := range d.Datasets {
			if len(ds.Data) == 0 {
				return false
			}
		}
		return true
	case ChartPie:
		return len(d.Slices) > 0
	case ChartProgress:
		return len(d.Labels) > 0 && len(d.Values) == len(d.Labels)
	case ChartStackedBar:
		return len(d.Labels) > 0 && len(d.Legend) > 0 && len(d.Matrix) == len(d.Labels)
	case ChartContribution:
		return len(d.Days) > 0
	default:
		return false
	}
}
