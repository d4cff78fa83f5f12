package services

import "github.com/tbourn/go-veg-procurement/internal/domain"

// RollupHotelStatus folds the requirements of hotelID into one delivery
// status. An empty date matches every row; otherwise only rows on date count.
// No rows yields none; any row that is not delivered keeps the hotel pending.
func RollupHotelStatus(hotelID, date string, reqs []domain.Requirement) domain.HotelStatus {
	seen := false
	for _, r := range reqs {
		if r.HotelID != hotelID || (date != "" && r.Date != date) {
			continue
		}
		seen = true
		if r.Status != domain.StatusDelivered {
			return domain.HotelStatusPending
		}
	}
	if !seen {
		return domain.HotelStatusNone
	}
	return domain.HotelStatusDelivered
}
