package services

import (
	"time"

	"rentbook/models"
)

// MostRecentLease picks the lease with the latest start date. When two
// leases share a start date the earliest-created one wins.
func MostRecentLease(leases []models.Lease) *models.Lease {
	var best *models.Lease
	for i := range leases {
		l := &leases[i]
		if best == nil ||
			l.StartDate.After(best.StartDate) ||
			(l.StartDate.Equal(best.StartDate) && l.ID < best.ID) {
			best = l
		}
	}
	return best
}

// CurrentLease returns the most recent lease if it is still running at
// `now`: either open-ended (no end date) or ending in the future. Once the
// most recent lease has ended there is no current lease, even if an older
// lease's date range still covers `now`.
func CurrentLease(leases []models.Lease, now time.Time) *models.Lease {
	recent := MostRecentLease(leases)
	if recent == nil {
		return nil
	}
	if recent.EndDate != nil && !recent.EndDate.After(now) {
		return nil
	}
	return recent
}

// CurrentAddress resolves a renter's address through their current lease's
// property. Leases must carry the joined Property+Address.
func CurrentAddress(leases []models.Lease, now time.Time) *models.Address {
	lease := CurrentLease(leases, now)
	if lease == nil || lease.Property == nil {
		return nil
	}
	return lease.Property.Address
}
