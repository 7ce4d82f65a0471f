package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// requiredColumns must all be present in the CSV header.
var requiredColumns = []string{
	"id", "name", "category", "sub_category", "brand",
	"price", "cost", "stock_quantity", "warehouse_location", "supplier",
	"last_restock_date", "sales_count", "rating", "review_count", "tags",
	"is_active", "discount", "weight", "dimensions",
}

// LoadCSV reads and validates a product catalog export from path.
func LoadCSV(path string) ([]Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	products, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return products, nil
}

// Parse reads a catalog CSV from r. The first row must be a header; column
// order is free and header names are matched case-insensitively. Every row
// must validate — the analyzer never sees partially-typed records.
func Parse(r io.Reader) ([]Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var products []Product
	seen := make(map[string]int)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		product, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if prev, dup := seen[product.ID]; dup {
			return nil, fmt.Errorf("line %d: duplicate product id %q (first seen on line %d)", line, product.ID, prev)
		}
		seen[product.ID] = line

		products = append(products, product)
	}

	return products, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

func parseRow(record []string, columns map[string]int) (Product, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id := field("id")
	if id == "" {
		return Product{}, fmt.Errorf("field id: must not be empty")
	}

	price, err := parseMoney("price", field("price"))
	if err != nil {
		return Product{}, err
	}
	cost, err := parseMoney("cost", field("cost"))
	if err != nil {
		return Product{}, err
	}
	stock, err := parseCount("stock_quantity", field("stock_quantity"))
	if err != nil {
		return Product{}, err
	}
	sales, err := parseCount("sales_count", field("sales_count"))
	if err != nil {
		return Product{}, err
	}
	reviews, err := parseCount("review_count", field("review_count"))
	if err != nil {
		return Product{}, err
	}
	rating, err := parseBoundedFloat("rating", field("rating"), 0, 5)
	if err != nil {
		return Product{}, err
	}
	discount, err := parseBoundedFloat("discount", field("discount"), 0, 100)
	if err != nil {
		return Product{}, err
	}
	weight, err := parseBoundedFloat("weight", field("weight"), 0, -1)
	if err != nil {
		return Product{}, err
	}
	restocked, err := time.Parse(dateLayout, field("last_restock_date"))
	if err != nil {
		return Product{}, fmt.Errorf("field last_restock_date: expected %s date: %w", dateLayout, err)
	}
	active, err := strconv.ParseBool(field("is_active"))
	if err != nil {
		return Product{}, fmt.Errorf("field is_active: expected boolean: %w", err)
	}

	return Product{
		ID:                id,
		Name:              field("name"),
		Category:          field("category"),
		SubCategory:       field("sub_category"),
		Brand:             field("brand"),
		Price:             price,
		Cost:              cost,
		StockQuantity:     stock,
		WarehouseLocation: field("warehouse_location"),
		Supplier:          field("supplier"),
		LastRestockDate:   restocked,
		SalesCount:        sales,
		Rating:            rating,
		ReviewCount:       reviews,
		Tags:              parseTags(field("tags")),
		IsActive:          active,
		Discount:          discount,
		Weight:            weight,
		Dimensions:        field("dimensions"),
	}, nil
}

func parseMoney(name, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %s: expected decimal amount: %w", name, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("field %s: must be non-negative, got %s", name, amount)
	}
	return amount, nil
}

func parseCount(name, value string) (int, error) {
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("field %s: expected integer: %w", name, err)
	}
	if count < 0 {
		return 0, fmt.Errorf("field %s: must be non-negative, got %d", name, count)
	}
	return count, nil
}

// parseBoundedFloat validates value against [low, high]; a negative high
// means no upper bound.
func parseBoundedFloat(name, value string, low, high float64) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: expected number: %w", name, err)
	}
	if parsed < low || (high >= 0 && parsed > high) {
		if high >= 0 {
			return 0, fmt.Errorf("field %s: must be between %g and %g, got %g", name, low, high, parsed)
		}
		return 0, fmt.Errorf("field %s: must be at least %g, got %g", name, low, parsed)
	}
	return parsed, nil
}

// parseTags splits a semicolon-separated tag list, preserving order.
func parseTags(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
