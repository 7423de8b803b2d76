package handler

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gamevault/storefront-api/internal/core/ports"
)

// Product create/update payloads arrive as multipart form fields alongside
// the image files, so every scalar shows up as a string on the wire. This
// file is the explicit decode step that normalizes those strings into the
// one canonical in-memory shape the services operate on.

// decodeCreateProductForm coerces the multipart fields of a product create.
// Coercion rules: price must parse as a non-negative decimal; stock defaults
// to 0 when absent or invalid; featured is true only for the literal "true";
// tags and specifications are JSON-encoded strings.
func decodeCreateProductForm(values url.Values) (ports.CreateProductInput, error) {
	var input ports.CreateProductInput

	input.Name = values.Get("name")
	if input.Name == "" {
		return input, fmt.Errorf("name is required")
	}
	input.Description = values.Get("description")
	input.Category = values.Get("category")

	price, err := parsePrice(values.Get("price"))
	if err != nil {
		return input, err
	}
	input.Price = price

	input.Brand = values.Get("brand")
	input.Platform = values.Get("platform")
	input.Condition = values.Get("condition")
	input.Stock = parseStock(values.Get("stock"))
	input.Featured = parseFeatured(values.Get("featured"))

	if values.Has("tags") {
		tags, err := decodeTags(values["tags"])
		if err != nil {
			return input, err
		}
		input.Tags = tags
	}
	if values.Has("specifications") {
		specs, err := decodeSpecifications(values.Get("specifications"))
		if err != nil {
			return input, err
		}
		input.Specifications = specs
	}

	return input, nil
}

// decodeUpdateProductForm coerces the multipart fields of a product update.
// Only fields present on the wire are decoded; everything else stays nil so
// the service keeps the stored value.
func decodeUpdateProductForm(values url.Values) (ports.UpdateProductInput, error) {
	var input ports.UpdateProductInput

	if values.Has("name") {
		input.Name = ptr(values.Get("name"))
	}
	if values.Has("description") {
		input.Description = ptr(values.Get("description"))
	}
	if values.Has("price") {
		price, err := parsePrice(values.Get("price"))
		if err != nil {
			return input, err
		}
		input.Price = &price
	}
	if values.Has("category") {
		input.Category = ptr(values.Get("category"))
	}
	if values.Has("brand") {
		input.Brand = ptr(values.Get("brand"))
	}
	if values.Has("platform") {
		input.Platform = ptr(values.Get("platform"))
	}
	if values.Has("condition") {
		input.Condition = ptr(values.Get("condition"))
	}
	if values.Has("stock") {
		stock := parseStock(values.Get("stock"))
		input.Stock = &stock
	}
	if values.Has("featured") {
		featured := parseFeatured(values.Get("featured"))
		input.Featured = &featured
	}
	if values.Has("tags") {
		tags, err := decodeTags(values["tags"])
		if err != nil {
			return input, err
		}
		input.Tags = tags
	}
	if values.Has("specifications") {
		specs, err := decodeSpecifications(values.Get("specifications"))
		if err != nil {
			return input, err
		}
		input.Specifications = specs
	}

	return input, nil
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("price must be a number")
	}
	if price < 0 {
		return 0, fmt.Errorf("price must not be negative")
	}
	return price, nil
}

// parseStock coerces the stock field; absent, unparsable, or negative values
// collapse to 0.
func parseStock(raw string) int {
	stock, err := strconv.Atoi(raw)
	if err != nil || stock < 0 {
		return 0
	}
	return stock
}

// parseFeatured treats the literal "true" as true; any other literal is falsy.
func parseFeatured(raw string) bool {
	return raw == "true"
}

// decodeTags accepts either repeated form fields (one tag each) or a single
// JSON-encoded array, normalizing both to []string.
func decodeTags(raw []string) ([]string, error) {
	if len(raw) > 1 {
		return raw, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw[0]), &tags); err != nil {
		return nil, fmt.Errorf("tags must be a JSON array of strings")
	}
	return tags, nil
}

// decodeSpecifications accepts a JSON-encoded string→string object.
func decodeSpecifications(raw string) (map[string]string, error) {
	var specs map[string]string
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, fmt.Errorf("specifications must be a JSON object of strings")
	}
	return specs, nil
}

func ptr[T any](v T) *T {
	return &v
}
