package models

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The API exchanges prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID identifies an entity. The API is not consistent about emitting ids as
// strings or numbers, so both are accepted.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Product is a menu item as returned by the API
type Product struct {
	ID          ID               `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	CategoryID  ID               `json:"categoryId,omitempty"`
}

// Category groups products on the menu
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ProductInput is the body of admin product create and update requests
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductQuery carries the filters accepted by GET /api/products.
// Zero values are omitted from the query string.
type ProductQuery struct {
	Featured   bool
	Page       int
	Limit      int
	Search     string
	CategoryID string
}

// Values encodes the query for the API
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.CategoryID != "" {
		v.Set("categoryId", q.CategoryID)
	}
	return v
}
