// Package model contains the record table and the sales regions derived from it.
package model

import "fmt"

// Column names of the input CSV, in file order.
const (
	ColName        = "Name"
	ColPlatform    = "Platform"
	ColYear        = "Year_Of_Release"
	ColGenre       = "Genre"
	ColPublisher   = "Publisher"
	ColNASales     = "NA_Sales"
	ColEUSales     = "EU_Sales"
	ColJPSales     = "JP_Sales"
	ColOtherSales  = "Other_Sales"
	ColGlobalSales = "Global_Sales"
	ColCriticScore = "Critic_Score"
	ColCriticCount = "Critic_Count"
	ColUserScore   = "User_Score"
	ColUserCount   = "User_Count"
	ColRating      = "Rating"
)

// Columns returns the fixed column order of the input file.
func Columns() []string {
	return []string{
		ColName, ColPlatform, ColYear, ColGenre, ColPublisher,
		ColNASales, ColEUSales, ColJPSales, ColOtherSales, ColGlobalSales,
		ColCriticScore, ColCriticCount, ColUserScore, ColUserCount,
		ColRating,
	}
}

// Table holds one row per game title in columnar form. Missing numeric
// cells are NaN; all slices have the same length.
type Table struct {
	Name      []string
	Platform  []string
	Year      []float64
	Genre     []string
	Publisher []string

	NASales     []float64 // millions
	EUSales     []float64
	JPSales     []float64
	OtherSales  []float64
	GlobalSales []float64

	CriticScore []float64 // 0-100
	CriticCount []float64
	UserScore   []float64 // 0-10
	UserCount   []float64

	Rating []string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Name)
}

// Sales returns the sales column for a region.
func (t *Table) Sales(r Region) ([]float64, error) {
	switch r {
	case Global:
		return t.GlobalSales, nil
	case NA:
		return t.NASales, nil
	case EU:
		return t.EUSales, nil
	case JP:
		return t.JPSales, nil
	case Other:
		return t.OtherSales, nil
	default:
		return nil, fmt.Errorf("unknown region %q", string(r))
	}
}
