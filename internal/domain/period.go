package domain

import "fmt"

// Period identifies one reporting quarter.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Label renders the period the way charts display it, e.g. "2023-Q2".
func (p Period) Label() string {
	return fmt.Sprintf("%d-Q%d", p.Year, p.Quarter)
}

// PeriodCatalog lists every quarter present in the store. It is loaded once
// at first use and reused for the life of the process.
type PeriodCatalog struct {
	Years    []int         `json:"years"`
	Quarters map[int][]int `json:"quarters"`
}

// QuartersFor returns the quarters available in a year, falling back to all
// four when the year is unknown.
func (c PeriodCatalog) QuartersFor(year int) []int {
	if qs, ok := c.Quarters[year]; ok && len(qs) > 0 {
		return qs
	}
	return []int{1, 2, 3, 4}
}

// Latest returns the most recent period in the catalog.
func (c PeriodCatalog) Latest() Period {
	if len(c.Years) == 0 {
		return Period{}
	}
	y := c.Years[len(c.Years)-1]
	qs := c.QuartersFor(y)
	return Period{Year: y, Quarter: qs[len(qs)-1]}
}

// Contains reports whether the catalog has the given period.
func (c PeriodCatalog) Contains(p Period) bool {
	for _, q := range c.Quarters[p.Year] {
		if q == p.Quarter {
			return true
		}
	}
	return false
}
