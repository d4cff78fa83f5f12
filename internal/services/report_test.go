package services

import (
	"reflect"
	"testing"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

func req(hotel, veg, date string, qty float64, st domain.RequirementStatus) domain.Requirement {
	return domain.Requirement{ID: hotel + "/" + veg + "/" + date, HotelID: hotel, VegetableID: veg, Date: date, Quantity: qty, Status: st}
}

func TestRollupHotelStatus(t *testing.T) {
	const d = "2024-01-01"
	cases := []struct {
		name string
		reqs []domain.Requirement
		date string
		want domain.HotelStatus
	}{
		{"no rows", nil, d, domain.HotelStatusNone},
		{"other hotel only", []domain.Requirement{req("h2", "v1", d, 1, domain.StatusPending)}, d, domain.HotelStatusNone},
		{"other date only", []domain.Requirement{req("h1", "v1", "2024-01-02", 1, domain.StatusPending)}, d, domain.HotelStatusNone},
		{"all delivered", []domain.Requirement{
			req("h1", "v1", d, 1, domain.StatusDelivered),
			req("h1", "v2", d, 2, domain.StatusDelivered),
		}, d, domain.HotelStatusDelivered},
		{"one pending keeps hotel pending", []domain.Requirement{
			req("h1", "v1", d, 1, domain.StatusDelivered),
			req("h1", "v2", d, 2, domain.StatusPending),
		}, d, domain.HotelStatusPending},
		{"blank date matches all dates", []domain.Requirement{
			req("h1", "v1", "2024-01-02", 1, domain.StatusDelivered),
		}, "", domain.HotelStatusDelivered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RollupHotelStatus("h1", tc.date, tc.reqs); got != tc.want {
				t.Fatalf("RollupHotelStatus = %q; want %q", got, tc.want)
			}
		})
	}
}

func names(hs []domain.Hotel) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name
	}
	return out
}

func TestOrderHotels_NumericSuffix(t *testing.T) {
	var hs []domain.Hotel
	for _, n := range []string{"Hotel 10", "Hotel 2", "Hotel 1", "Hotel 9", "Hotel 3"} {
		hs = append(hs, domain.Hotel{ID: "id-" + n, Name: n})
	}
	got := names(OrderHotels(hs))
	want := []string{"Hotel 1", "Hotel 2", "Hotel 3", "Hotel 9", "Hotel 10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v; want %v", got, want)
	}
	if hs[0].Name != "Hotel 10" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestOrderHotels_FallsBackToLexical(t *testing.T) {
	cases := map[string][]string{
		"one name without number": {"Hotel 10", "Hotel 2", "Grand Plaza"},
		"mixed prefixes":          {"Hotel 10", "Inn 2", "Hotel 1"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var hs []domain.Hotel
			for i, n := range in {
				hs = append(hs, domain.Hotel{ID: string(rune('a' + i)), Name: n})
			}
			got := names(OrderHotels(hs))
			for i := 1; i < len(got); i++ {
				if got[i-1] > got[i] {
					t.Fatalf("not lexical: %v", got)
				}
			}
		})
	}
}

func TestOrderHotels_TiesAndEmpty(t *testing.T) {
	if got := OrderHotels(nil); len(got) != 0 {
		t.Fatalf("empty input should give empty output, got %v", got)
	}
	hs := []domain.Hotel{{ID: "b", Name: "Hotel 1"}, {ID: "a", Name: "Hotel 01"}, {ID: "c", Name: "Hotel 2"}}
	got := OrderHotels(hs)
	// "Hotel 01" and "Hotel 1" share the number; name breaks the tie.
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("tie order = %+v", got)
	}
}

func TestBuildMatrix(t *testing.T) {
	const d = "2024-01-01"
	hotels := []domain.Hotel{
		{ID: "h10", Name: "Hotel 10"},
		{ID: "h2", Name: "Hotel 2"},
		{ID: "h1", Name: "Hotel 1"},
	}
	vegs := []domain.Vegetable{
		{ID: "v-onion", Name: "Onions", Unit: "kg"},
		{ID: "v-carrot", Name: "Carrots", Unit: ""},
		{ID: "v-mint", Name: "Mint", Unit: "bunch"},
	}
	reqs := []domain.Requirement{
		req("h1", "v-carrot", d, 5, domain.StatusPending),
		req("h10", "v-carrot", d, 2.5, domain.StatusDelivered),
		req("h2", "v-onion", d, 3, domain.StatusDelivered),
		req("h2", "v-mint", d, 0, domain.StatusDelivered),           // zero: no row, still counted
		req("h1", "v-gone", d, 7, domain.StatusPending),             // vegetable not in catalog
		req("h1", "v-onion", "2024-01-02", 9, domain.StatusPending), // other date
	}

	m := BuildMatrix(d, hotels, vegs, reqs)

	if m.Date != d || m.TotalRequirements != 5 {
		t.Fatalf("header unexpected: date=%s total=%d", m.Date, m.TotalRequirements)
	}
	if got := names(m.Hotels); !reflect.DeepEqual(got, []string{"Hotel 1", "Hotel 2", "Hotel 10"}) {
		t.Fatalf("hotel order = %v", got)
	}
	wantStatus := map[string]domain.HotelStatus{
		"h1":  domain.HotelStatusPending,
		"h2":  domain.HotelStatusDelivered,
		"h10": domain.HotelStatusDelivered,
	}
	if !reflect.DeepEqual(m.HotelStatus, wantStatus) {
		t.Fatalf("status = %v", m.HotelStatus)
	}

	if len(m.Rows) != 2 {
		t.Fatalf("want 2 rows (carrots, onions), got %+v", m.Rows)
	}
	carrots, onions := m.Rows[0], m.Rows[1]
	if carrots.VegetableName != "Carrots" || onions.VegetableName != "Onions" {
		t.Fatalf("rows not ordered by name: %+v", m.Rows)
	}
	if carrots.Unit != "kg" || carrots.Total != 7.5 {
		t.Fatalf("carrots row unexpected: %+v", carrots)
	}
	if !reflect.DeepEqual(carrots.HotelQuantities, map[string]float64{"h1": 5, "h2": 0, "h10": 2.5}) {
		t.Fatalf("carrot cells = %v", carrots.HotelQuantities)
	}
	for _, row := range m.Rows {
		if row.Total <= 0 {
			t.Fatalf("row with zero demand: %+v", row)
		}
	}
}

func TestBuildMatrix_DecimalTotals(t *testing.T) {
	const d = "2024-01-01"
	hotels := []domain.Hotel{{ID: "h1", Name: "Hotel 1"}, {ID: "h2", Name: "Hotel 2"}}
	vegs := []domain.Vegetable{{ID: "v", Name: "Kale", Unit: "kg"}}
	reqs := []domain.Requirement{req("h1", "v", d, 0.1, domain.StatusPending), req("h2", "v", d, 0.2, domain.StatusPending)}

	m := BuildMatrix(d, hotels, vegs, reqs)
	if m.Rows[0].Total != 0.3 {
		t.Fatalf("total = %v; want 0.3", m.Rows[0].Total)
	}
}

func TestBuildMatrix_DeletedHotelHasNoColumn(t *testing.T) {
	const d = "2024-01-01"
	hotels := []domain.Hotel{{ID: "h2", Name: "Hotel 2"}}
	vegs := []domain.Vegetable{{ID: "v", Name: "Kale"}}
	reqs := []domain.Requirement{req("h1", "v", d, 4, domain.StatusPending)}

	m := BuildMatrix(d, hotels, vegs, reqs)
	if len(m.Rows) != 0 {
		t.Fatalf("row for unlisted hotel only should be dropped: %+v", m.Rows)
	}
	if _, ok := m.HotelStatus["h1"]; ok {
		t.Fatalf("unlisted hotel must not get a status")
	}
	if m.TotalRequirements != 1 {
		t.Fatalf("total should still count the row, got %d", m.TotalRequirements)
	}
}
