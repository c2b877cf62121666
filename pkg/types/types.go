package types

// StringList is a jsonb-serialized list of strings.
type StringList []string

// ProductColor is one selectable colorway on a listing.
type ProductColor struct {
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Available bool   `json:"available"`
}

// ProductColors is the jsonb-serialized colorway list.
type ProductColors []ProductColor

// ProductImage is one gallery entry on a listing.
type ProductImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ProductImages is the jsonb-serialized gallery.
type ProductImages []ProductImage

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LatLngBounds is a viewport rectangle returned by the directions provider.
type LatLngBounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}
