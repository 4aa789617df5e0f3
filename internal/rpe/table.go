package rpe

// Domain bounds of the reference table. Inputs outside are clamped.
const (
	MinReps = 1
	MaxReps = 12
	MinRPE  = 6.0
	MaxRPE  = 10.0
)

// columns holds the RPE anchor of each table column, descending.
var columns = [9]float64{10, 9.5, 9, 8.5, 8, 7.5, 7, 6.5, 6}

// percentTable maps reps (row index = reps-1) to the fraction of 1RM for each
// RPE column. Rows are non-increasing left to right and top to bottom.
var percentTable = [MaxReps][len(columns)]float64{
	{1.000, 0.978, 0.955, 0.939, 0.922, 0.907, 0.892, 0.878, 0.863},
	{0.955, 0.939, 0.922, 0.907, 0.892, 0.878, 0.863, 0.850, 0.837},
	{0.922, 0.907, 0.892, 0.878, 0.863, 0.850, 0.837, 0.824, 0.811},
	{0.892, 0.878, 0.863, 0.850, 0.837, 0.824, 0.811, 0.799, 0.786},
	{0.863, 0.850, 0.837, 0.824, 0.811, 0.799, 0.786, 0.774, 0.762},
	{0.837, 0.824, 0.811, 0.799, 0.786, 0.774, 0.762, 0.751, 0.739},
	{0.811, 0.799, 0.786, 0.774, 0.762, 0.751, 0.739, 0.723, 0.707},
	{0.786, 0.774, 0.762, 0.751, 0.739, 0.723, 0.707, 0.694, 0.680},
	{0.762, 0.751, 0.739, 0.723, 0.707, 0.694, 0.680, 0.667, 0.653},
	{0.739, 0.723, 0.707, 0.694, 0.680, 0.667, 0.653, 0.640, 0.626},
	{0.707, 0.694, 0.680, 0.667, 0.653, 0.640, 0.626, 0.613, 0.599},
	{0.680, 0.667, 0.653, 0.640, 0.626, 0.613, 0.599, 0.586, 0.573},
}

// Row is one rep count of the reference table, ready for rendering.
type Row struct {
	Reps     int       `json:"reps"`
	Percents []float64 `json:"percents"`
}

// Columns returns the RPE anchors of the table columns, highest first.
func Columns() []float64 {
	out := make([]float64, len(columns))
	copy(out, columns[:])
	return out
}

// Table returns a copy of the reference table, one Row per rep count.
func Table() []Row {
	rows := make([]Row, 0, MaxReps)
	for i, r := range percentTable {
		p := make([]float64, len(r))
		copy(p, r[:])
		rows = append(rows, Row{Reps: i + 1, Percents: p})
	}
	return rows
}
