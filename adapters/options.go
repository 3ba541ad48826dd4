package adapters

import (
	"errors"
	"fmt"

	"ssg-pdp/internal/types"
)

// ErrMalformedOption is returned for option rows that do not have the expected paragraph columns
var ErrMalformedOption = errors.New("malformed option row")

const (
	optionRowSelector  = "div:has(#options) > div > ul > li"
	optionItemSelector = "ul > li"
	optionColumns      = 3
)

// ParseOptions reads the purchasable options listed under the "options" section.
//
// Each option row carries three paragraphs in fixed order: label, id, required.
// Each nested item row carries label, id, in-stock. Rows with fewer paragraphs
// are skipped and reported through the returned error; the options that did
// parse are always returned, and the slice is never nil.
func ParseOptions(root types.Node) ([]types.OptionSpec, error) {
	options := []types.OptionSpec{}
	if root == nil {
		return options, nil
	}

	var errs []error
	for i, row := range root.FindAll(optionRowSelector) {
		columns := paragraphColumns(row)
		if len(columns) < optionColumns {
			errs = append(errs, fmt.Errorf("%w: option %d has %d columns", ErrMalformedOption, i, len(columns)))
			continue
		}

		option := types.OptionSpec{
			ID:       columns[1],
			Type:     "dropdown",
			Label:    columns[0],
			Required: columns[2],
			Items:    []types.OptionItem{},
		}

		for j, itemRow := range row.FindAll(optionItemSelector) {
			itemColumns := paragraphColumns(itemRow)
			if len(itemColumns) < optionColumns {
				errs = append(errs, fmt.Errorf("%w: option %q item %d has %d columns", ErrMalformedOption, option.ID, j, len(itemColumns)))
				continue
			}
			option.Items = append(option.Items, types.OptionItem{
				ID:       itemColumns[1],
				Label:    itemColumns[0],
				Value:    itemColumns[1],
				Selected: "false",
				InStock:  itemColumns[2],
			})
		}

		options = append(options, option)
	}

	return options, errors.Join(errs...)
}

// paragraphColumns returns the trimmed text of the direct <p> children of a row
func paragraphColumns(row types.Node) []string {
	paragraphs := row.Children("p")
	columns := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		columns = append(columns, p.Text())
	}
	return columns
}
