// Package resource provides API resource transformers: small functions that
// shape models into the exact JSON the admin client receives.
//
//	func brandResource(b models.Brand) resource.Map {
//	    return resource.Map{"id": b.ID, "name": b.Name, "slug": b.Slug}
//	}
//
//	resource.List(w, resource.Transform(brands, brandResource), pg)
package resource

import (
	"encoding/json"
	"net/http"

	"github.com/veyralabs/veyra/pkg/collection"
	"github.com/veyralabs/veyra/pkg/orm"
)

// Map is the output shape of a transformer.
type Map = map[string]interface{}

// Transform applies fn to every item. A nil slice becomes an empty list so
// the JSON is always an array, never null.
func Transform[T any](items []T, fn func(T) Map) []Map {
	out := collection.Map(items, fn)
	if out == nil {
		out = []Map{}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// One writes a single transformed resource under a "data" key.
func One(w http.ResponseWriter, item Map) {
	writeJSON(w, http.StatusOK, Map{"data": item})
}

// List writes a transformed collection with pagination metadata.
func List(w http.ResponseWriter, items []Map, p orm.Pagination) {
	writeJSON(w, http.StatusOK, Map{
		"data":       items,
		"pagination": p,
	})
}
