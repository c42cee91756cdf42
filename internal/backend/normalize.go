package backend

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/phonestore/storefront/internal/domain"
)

// The backend's product representation differs per endpoint: search may
// answer a bare array, {content: [...]} or {result: [...]}, and prices and
// images live in different places. Everything in this file turns those
// shapes into the canonical domain types; nothing past the client sees raw
// payloads.

// listKeys are the envelope fields that may hold the item array, in order
var listKeys = []string{"content", "result"}

// NormalizeSuggestions maps a search response into at most limit suggestions.
// Items without an id or a name are dropped. Malformed input yields an
// empty list rather than an error.
func NormalizeSuggestions(raw []byte, limit int, placeholder string) []domain.SearchSuggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}

	items, _ := extractItems(raw)
	out := make([]domain.SearchSuggestion, 0, min(limit, len(items)))
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		id, ok := idField(item, "id")
		if !ok {
			continue
		}
		name, ok := stringField(item, "name")
		if !ok {
			continue
		}
		out = append(out, domain.SearchSuggestion{
			ID:    id,
			Name:  name,
			Price: productPrice(item),
			Image: productImage(item, placeholder),
		})
	}
	return out
}

// NormalizeProduct maps one product object. The boolean is false when the
// object lacks an id or a name.
func NormalizeProduct(item map[string]any, placeholder string) (domain.Product, bool) {
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}

	id, ok := idField(item, "id")
	if !ok {
		return domain.Product{}, false
	}
	name, ok := stringField(item, "name")
	if !ok {
		return domain.Product{}, false
	}

	p := domain.Product{
		ID:    id,
		Name:  name,
		Price: productPrice(item),
		Image: productImage(item, placeholder),
	}
	p.Description, _ = stringField(item, "description")
	if brand, ok := stringField(item, "brand"); ok {
		p.Brand = brand
	} else if b, ok := item["brand"].(map[string]any); ok {
		p.Brand, _ = stringField(b, "name")
	}
	if imgs, ok := item["images"].([]any); ok {
		for _, img := range imgs {
			if s := imageString(img); s != "" {
				p.Images = append(p.Images, s)
			}
		}
	}
	if variants, ok := item["variants"].([]any); ok {
		for _, v := range variants {
			vm, ok := v.(map[string]any)
			if !ok {
				continue
			}
			vid, ok := idField(vm, "id")
			if !ok {
				continue
			}
			variant := domain.ProductVariant{ID: vid}
			variant.Name, _ = stringField(vm, "name")
			variant.Price, _ = int64Field(vm, "price")
			variant.ImageURL, _ = stringField(vm, "imageUrl")
			if stock, ok := int64Field(vm, "stock"); ok {
				variant.Stock = int(stock)
			}
			p.Variants = append(p.Variants, variant)
		}
	}
	for _, key := range []string{"averageRating", "rating"} {
		if r, ok := floatField(item, key); ok {
			p.Rating = r
			break
		}
	}
	return p, true
}

// NormalizeProductPage maps a listing response. Page metadata is taken from
// Spring-style (number/totalElements) or plain (page/total) envelopes.
func NormalizeProductPage(raw []byte, placeholder string) domain.ProductPage {
	items, envelope := extractItems(raw)

	page := domain.ProductPage{Items: make([]domain.Product, 0, len(items))}
	for _, item := range items {
		if p, ok := NormalizeProduct(item, placeholder); ok {
			page.Items = append(page.Items, p)
		}
	}

	page.TotalItems = len(page.Items)
	if envelope != nil {
		if n, ok := firstInt(envelope, "totalElements", "total"); ok {
			page.TotalItems = int(n)
		}
		if n, ok := firstInt(envelope, "number", "page"); ok {
			page.Page = int(n)
		}
		if n, ok := firstInt(envelope, "size"); ok {
			page.Size = int(n)
		}
	}
	if page.Size == 0 {
		page.Size = len(page.Items)
	}
	return page
}

// decodeObject decodes a single JSON object keeping numbers as json.Number
func decodeObject(raw []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// extractItems finds the item array in any of the accepted shapes. The
// envelope object is returned when there was one.
func extractItems(raw []byte) ([]map[string]any, map[string]any) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, nil
	}

	switch t := v.(type) {
	case []any:
		return objects(t), nil
	case map[string]any:
		for _, key := range listKeys {
			if arr, ok := t[key].([]any); ok {
				return objects(arr), t
			}
		}
		return nil, t
	default:
		return nil, nil
	}
}

func objects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// productPrice follows defaultVariant.price -> price -> 0
func productPrice(item map[string]any) int64 {
	if dv, ok := item["defaultVariant"].(map[string]any); ok {
		if p, ok := int64Field(dv, "price"); ok {
			return p
		}
	}
	if p, ok := int64Field(item, "price"); ok {
		return p
	}
	return 0
}

// productImage follows defaultVariant.imageUrl -> image -> images[0] -> placeholder
func productImage(item map[string]any, placeholder string) string {
	if dv, ok := item["defaultVariant"].(map[string]any); ok {
		if s, ok := stringField(dv, "imageUrl"); ok {
			return s
		}
	}
	if s, ok := stringField(item, "image"); ok {
		return s
	}
	if imgs, ok := item["images"].([]any); ok && len(imgs) > 0 {
		if s := imageString(imgs[0]); s != "" {
			return s
		}
	}
	return placeholder
}

// imageString accepts "url" or {url|imageUrl: "url"}
func imageString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, key := range []string{"url", "imageUrl"} {
			if s, ok := stringField(t, key); ok {
				return s
			}
		}
	}
	return ""
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func idField(m map[string]any, key string) (string, bool) {
	switch t := m[key].(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// int64Field reads a non-negative amount in whole currency units. Numbers
// and numeric strings are accepted; fractions round half away from zero.
func int64Field(m map[string]any, key string) (int64, bool) {
	f, ok := floatField(m, key)
	if !ok || f < 0 || f > math.MaxInt64/2 {
		return 0, false
	}
	return int64(math.Round(f)), true
}

func floatField(m map[string]any, key string) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := m[key].(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	case float64:
		f = t
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func firstInt(m map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		if n, ok := int64Field(m, key); ok {
			return n, true
		}
	}
	return 0, false
}
