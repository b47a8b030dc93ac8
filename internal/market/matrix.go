package market

import "github.com/shopspring/decimal"

// decimalMatrix is a duplicate-summing sparse participant x transaction
// matrix over exact decimal values — the same COO-with-duplicate-
// summing shape as internal/sparse.Matrix, but kept local to this
// package since market deltas are currency/security amounts, which per
// the teacher's convention are never float64.
type decimalMatrix struct {
	rows, cols int
	entries    map[[2]int]decimal.Decimal
}

func newDecimalMatrix(rows, cols int) *decimalMatrix {
	return &decimalMatrix{rows: rows, cols: cols, entries: make(map[[2]int]decimal.Decimal)}
}

func (m *decimalMatrix) add(row, col int, v decimal.Decimal) {
	key := [2]int{row, col}
	m.entries[key] = m.entries[key].Add(v)
}

func (m *decimalMatrix) at(row, col int) decimal.Decimal {
	return m.entries[[2]int{row, col}]
}

// Row returns participant row `row`'s coefficients across all
// transaction columns, in column order, as a dense decimal slice.
func (m *decimalMatrix) Row(row int) []decimal.Decimal {
	out := make([]decimal.Decimal, m.cols)
	for c := 0; c < m.cols; c++ {
		out[c] = m.at(row, c)
	}
	return out
}
