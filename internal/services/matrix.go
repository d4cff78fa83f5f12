package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// BuildMatrix pivots the requirements of one date into a vegetable by hotel
// quantity table.
//
// Hotels are ordered with OrderHotels. A vegetable row is emitted only when
// at least one listed hotel has a non-zero quantity; rows are ordered by
// vegetable name. TotalRequirements counts every requirement on the date,
// including ones that reference unlisted hotels or vegetables.
func BuildMatrix(date string, hotels []domain.Hotel, vegetables []domain.Vegetable, reqs []domain.Requirement) domain.MatrixReport {
	ordered := OrderHotels(hotels)

	onDate := make([]domain.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if r.Date == date {
			onDate = append(onDate, r)
		}
	}

	// (vegetable, hotel) -> quantity; the first row for a cell wins
	type cell struct{ veg, hotel string }
	qty := make(map[cell]float64, len(onDate))
	for _, r := range onDate {
		k := cell{r.VegetableID, r.HotelID}
		if _, ok := qty[k]; !ok {
			qty[k] = r.Quantity
		}
	}

	status := make(map[string]domain.HotelStatus, len(ordered))
	for _, h := range ordered {
		status[h.ID] = RollupHotelStatus(h.ID, date, onDate)
	}

	vegs := make([]domain.Vegetable, len(vegetables))
	copy(vegs, vegetables)
	sort.SliceStable(vegs, func(i, j int) bool {
		if vegs[i].Name != vegs[j].Name {
			return vegs[i].Name < vegs[j].Name
		}
		return vegs[i].ID < vegs[j].ID
	})

	rows := make([]domain.MatrixRow, 0, len(vegs))
	for _, v := range vegs {
		perHotel := make(map[string]float64, len(ordered))
		total := decimal.Zero
		nonZero := false
		for _, h := range ordered {
			q := qty[cell{v.ID, h.ID}]
			perHotel[h.ID] = q
			if q != 0 {
				nonZero = true
			}
			total = total.Add(decimal.NewFromFloat(q))
		}
		if !nonZero {
			continue
		}
		unit := v.Unit
		if unit == "" {
			unit = domain.DefaultUnit
		}
		t, _ := total.Float64()
		rows = append(rows, domain.MatrixRow{
			VegetableID:     v.ID,
			VegetableName:   v.Name,
			Unit:            unit,
			HotelQuantities: perHotel,
			Total:           t,
		})
	}

	return domain.MatrixReport{
		Date:              date,
		Hotels:            ordered,
		HotelStatus:       status,
		Rows:              rows,
		TotalRequirements: int64(len(onDate)),
	}
}
