package handlers

import (
	"address-directory-service/internal/domain"
	"net/http"

	"github.com/paulmach/orb/geojson"
)

const geoJSONContentType = "application/geo+json"

func wantsGeoJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "geojson"
}

// toFeatureCollection renders addresses as point features; the address fields
// become feature properties.
func toFeatureCollection(addrs []domain.Address) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range addrs {
		f := geojson.NewFeature(a.Coordinates().Point())
		f.ID = a.ID
		f.Properties["id"] = a.ID
		f.Properties["street"] = a.Street
		f.Properties["city"] = a.City
		f.Properties["state"] = a.State
		f.Properties["country"] = a.Country
		fc.Append(f)
	}
	return fc
}
