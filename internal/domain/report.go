package domain

// MatrixRow is one vegetable line of the matrix report. HotelQuantities has
// an entry for every hotel in the report, zero where nothing was requested.
type MatrixRow struct {
	VegetableID     string             `json:"vegetable_id"`
	VegetableName   string             `json:"vegetable_name"`
	Unit            string             `json:"unit"`
	HotelQuantities map[string]float64 `json:"hotel_quantities"`
	Total           float64            `json:"total"`
}

// MatrixReport is the vegetable-by-hotel quantity table for one date.
//
// Fields:
//   - Hotels: report columns, ordered numerically by name suffix when every
//     name allows it, lexically otherwise.
//   - HotelStatus: rolled-up delivery state per hotel id.
//   - Rows: only vegetables with non-zero demand on the date.
//   - TotalRequirements: every requirement row on the date, including zero
//     quantities and rows whose vegetable is no longer in the catalog.
type MatrixReport struct {
	Date              string                 `json:"date"`
	Hotels            []Hotel                `json:"hotels"`
	HotelStatus       map[string]HotelStatus `json:"hotel_status"`
	Rows              []MatrixRow            `json:"matrix_data"`
	TotalRequirements int64                  `json:"total_requirements"`
}

// AdminDashboard carries the scalar counts shown on the admin landing page.
type AdminDashboard struct {
	TotalHotels            int64   `json:"total_hotels"`
	TotalSellers           int64   `json:"total_sellers"`
	TotalVegetables        int64   `json:"total_vegetables"`
	TodayRequirementsCount int64   `json:"today_requirements_count"`
	PendingCount           int64   `json:"pending_count"`
	DeliveredCount         int64   `json:"delivered_count"`
	TodayQuantity          float64 `json:"today_quantity"`
}
