// Package seed writes the sample hotels and seller catalog on first start.
// The catalog can be replaced by a Markdown table so deployments can ship
// their own supplier list without a code change.
package seed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

// CatalogSeller is one seller with the vegetables it supplies.
type CatalogSeller struct {
	Name       string
	Phone      string
	Vegetables []CatalogVegetable
}

// CatalogVegetable is a catalog line.
type CatalogVegetable struct {
	Name string
	Unit string
}

// DefaultCatalog returns the built-in sample catalog.
func DefaultCatalog() []CatalogSeller {
	groups := []struct {
		name string
		vegs []string
	}{
		{"Green Grocers", []string{"Spinach", "Lettuce", "Cabbage", "Broccoli", "Kale"}},
		{"Fresh Farms", []string{"Tomatoes", "Onions", "Potatoes", "Carrots", "Garlic"}},
		{"Organic Supply", []string{"Bell Peppers", "Cucumber", "Eggplant", "Zucchini", "Okra"}},
		{"Herb Masters", []string{"Mint", "Coriander", "Parsley", "Basil", "Dill"}},
		{"Root Veggies Co", []string{"Beetroot", "Radish", "Turnip", "Sweet Potato", "Ginger"}},
	}
	out := make([]CatalogSeller, 0, len(groups))
	for i, g := range groups {
		s := CatalogSeller{Name: g.name, Phone: fmt.Sprintf("+9876543%03d", i+1)}
		for _, v := range g.vegs {
			s.Vegetables = append(s.Vegetables, CatalogVegetable{Name: v, Unit: domain.DefaultUnit})
		}
		out = append(out, s)
	}
	return out
}

// ParseCatalogMarkdown reads a Markdown table with the columns
//
//	| Seller | Phone | Vegetable | Unit |
//
// Header and separator rows are skipped, as is any line that is not a table
// row. A blank Unit defaults to kg; a blank Phone keeps the first one seen
// for that seller. Sellers and vegetables keep first-appearance order.
func ParseCatalogMarkdown(r io.Reader) ([]CatalogSeller, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out []CatalogSeller
	bySeller := map[string]int{}
	lineNo := 0
	headerSeen := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") || len(line) < 2 {
			continue
		}
		cells := splitRow(line)
		if isSeparator(cells) {
			continue
		}
		if !headerSeen && strings.EqualFold(cells[0], "seller") {
			headerSeen = true
			continue
		}
		if len(cells) < 3 {
			return nil, fmt.Errorf("line %d: want at least 3 columns, got %d", lineNo, len(cells))
		}
		seller, phone, veg := cells[0], cells[1], cells[2]
		unit := ""
		if len(cells) > 3 {
			unit = cells[3]
		}
		if seller == "" || veg == "" {
			return nil, fmt.Errorf("line %d: seller and vegetable must not be empty", lineNo)
		}
		if unit == "" {
			unit = domain.DefaultUnit
		}

		key := strings.ToLower(seller)
		i, ok := bySeller[key]
		if !ok {
			i = len(out)
			bySeller[key] = i
			out = append(out, CatalogSeller{Name: seller, Phone: phone})
		} else if out[i].Phone == "" {
			out[i].Phone = phone
		}
		out[i].Vegetables = append(out[i].Vegetables, CatalogVegetable{Name: veg, Unit: unit})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no catalog rows found")
	}
	return out, nil
}

func splitRow(line string) []string {
	raw := strings.Trim(line, "|")
	parts := strings.Split(raw, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// isSeparator reports whether every cell consists of ':' and '-' only.
func isSeparator(cells []string) bool {
	for _, c := range cells {
		tmp := strings.ReplaceAll(c, ":", "")
		tmp = strings.ReplaceAll(tmp, "-", "")
		if strings.TrimSpace(tmp) != "" {
			return false
		}
	}
	return true
}
