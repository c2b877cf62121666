package checkout

import "github.com/zuriwear/zuri-backend/pkg/enums"

// zonePricesKES is the flat delivery price table. Prices are whole Kenyan
// shillings and do not interact with the cart's free-shipping threshold.
var zonePricesKES = map[enums.DeliveryZone]int{
	enums.DeliveryZoneTown:   200,
	enums.DeliveryZoneCounty: 350,
	enums.DeliveryZoneCity:   500,
	enums.DeliveryZoneOther:  700,
}

// ZonePriceKES returns the flat delivery price for a zone.
func ZonePriceKES(zone enums.DeliveryZone) (int, bool) {
	price, ok := zonePricesKES[zone]
	return price, ok
}
