package load

import "time"

// MockCorpus returns the static pilot loads the dashboard ships with.
// Pickup times are anchored to the provided reference so classifier recency
// scoring stays meaningful in demos and tests.
func MockCorpus(ref time.Time) []Load {
	return []Load{
		{
			ID:          "1234",
			Broker:      "Sunbelt Logistics",
			Status:      StatusInTransit,
			Amount:      "$2,450.00",
			Origin:      "Dallas, TX",
			Destination: "Atlanta, GA",
			PickupTime:  ref.Add(-18 * time.Hour),
			Distance:    "781 mi",
			RateConf:    &RateConfirmation{DocumentID: "rc-1234", ConfirmedAmount: "$2,450.00"},
			Factoring:   &Factoring{Enabled: true, Rate: 0.03},
		},
		{
			ID:          "1235",
			Broker:      "Ridgeline Freight",
			Status:      StatusPendingPickup,
			Amount:      "$1,875.50",
			Origin:      "Dallas, TX",
			Destination: "Memphis, TN",
			PickupTime:  ref.Add(26 * time.Hour),
			Distance:    "452 mi",
		},
		{
			ID:          "1236",
			Broker:      "Bluebonnet Carriers",
			Status:      StatusDelivered,
			Amount:      "$3,120.00",
			Origin:      "Dallas, TX",
			Destination: "Chicago, IL",
			PickupTime:  ref.Add(-6 * 24 * time.Hour),
			Distance:    "967 mi",
			Factoring:   &Factoring{Enabled: true, Rate: 0.025},
		},
		{
			ID:          "TL-2040",
			Broker:      "Great Plains Brokerage",
			Status:      StatusInTransit,
			Amount:      "$2,960.75",
			Origin:      "Phoenix, AZ",
			Destination: "Denver, CO",
			PickupTime:  ref.Add(-30 * time.Hour),
			Distance:    "602 mi",
		},
		{
			ID:          "TL-2041",
			Broker:      "Sunbelt Logistics",
			Status:      StatusPendingPickup,
			Amount:      "$1,540.00",
			Origin:      "Houston, TX",
			Destination: "New Orleans, LA",
			PickupTime:  ref.Add(3 * 24 * time.Hour),
			Distance:    "348 mi",
			Factoring:   &Factoring{Enabled: false, Rate: 0},
		},
	}
}
