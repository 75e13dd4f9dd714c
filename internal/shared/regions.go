package shared

import "trip_hotels/internal/domain"

// Regions is the fixed list of provinces scraped on every run, in output order.
var Regions = []domain.Region{
	{Name: "Siem Reap", ExternalID: 33},
	{Name: "Phnom Penh", ExternalID: 496},
	{Name: "Sihanoukville", ExternalID: 1459},
	{Name: "Kampot", ExternalID: 1461},
	{Name: "Battambang", ExternalID: 1460},
	{Name: "Kep", ExternalID: 1463},
	{Name: "Koh Kong", ExternalID: 23207},
	{Name: "Mondulkiri", ExternalID: 23208},
}
