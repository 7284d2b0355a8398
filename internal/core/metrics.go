package core

import (
	"sort"
	"time"
)

// DisplayLimit caps the number of rows handed to the transaction table.
const DisplayLimit = 50

type (
	// CategoryTotal is the signed net sum (income minus expense) of all
	// transactions sharing a category label. Charts display the absolute
	// value, so offsetting entries understate true volume; that matches
	// the source behavior and is kept deliberately.
	CategoryTotal struct {
		Category string
		Net      float64
	}

	// MonthPoint is one point of the running-balance series.
	MonthPoint struct {
		Label   string // month abbreviation, "Jan".."Dec"
		Balance float64
	}

	// Metrics is the full derived view of a transaction set for a given
	// reference date. It is a pure function result; nothing here is cached.
	Metrics struct {
		TotalBalance   float64
		MonthIncome    float64
		MonthExpense   float64
		CategoryTotals []CategoryTotal
		RunningBalance []MonthPoint
	}
)

// ComputeMetrics derives all dashboard aggregates from a transaction set.
//
// TotalBalance sums every transaction regardless of date. MonthIncome and
// MonthExpense are restricted to the calendar year and month of ref.
// CategoryTotals preserves first-appearance order across the whole set.
//
// RunningBalance holds one cumulative point per month from January through
// the reference month of the reference year. Each point sums every
// transaction dated strictly before the first day of the following month,
// with no lower bound: transactions from earlier years bleed into the
// series. That is the source's literal comparison and is preserved.
func ComputeMetrics(txs []Transaction, ref time.Time) Metrics {
	m := Metrics{}

	refYear := ref.Year()
	refMonth := int(ref.Month())

	catIndex := map[string]int{}
	for _, tx := range txs {
		signed := tx.Signed()
		m.TotalBalance += signed

		if tx.Date.Year() == refYear && int(tx.Date.Month()) == refMonth {
			if tx.Type == Income {
				m.MonthIncome += tx.Amount
			} else {
				m.MonthExpense += tx.Amount
			}
		}

		cat := tx.Category
		if cat == "" {
			cat = DefaultCategory
		}
		i, ok := catIndex[cat]
		if !ok {
			i = len(m.CategoryTotals)
			catIndex[cat] = i
			m.CategoryTotals = append(m.CategoryTotals, CategoryTotal{Category: cat})
		}
		m.CategoryTotals[i].Net += signed
	}

	for month := 1; month <= refMonth; month++ {
		end := time.Date(refYear, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
		var bal float64
		for _, tx := range txs {
			if tx.Date.Before(end) {
				bal += tx.Signed()
			}
		}
		m.RunningBalance = append(m.RunningBalance, MonthPoint{
			Label:   time.Month(month).String()[:3],
			Balance: bal,
		})
	}

	return m
}

// SortForDisplay returns a copy of the transactions ordered by date
// descending, ties kept in insertion order, truncated to DisplayLimit rows.
// The input slice is not modified.
func SortForDisplay(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date.Time)
	})
	if len(out) > DisplayLimit {
		out = out[:DisplayLimit]
	}
	return out
}
