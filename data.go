package hxup

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// Data is the structured payload an element passes to its rules, read from
// a JSON object in the data attribute (up-data by default).
type Data map[string]any

// ReadData parses the data attribute of el.
//
// An absent or blank attribute yields an empty Data. Content that is not a
// JSON object fails with an *ElementError wrapping ErrDataParse.
func ReadData(el *html.Node, attribute string) (Data, error) {
	raw, ok := dom.LookupAttr(el, attribute)
	if !ok || strings.TrimSpace(raw) == "" {
		return Data{}, nil
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &ElementError{Op: "data", Element: el, Err: errors.Join(ErrDataParse, err)}
	}
	if data == nil {
		// The literal null.
		return Data{}, nil
	}
	return data, nil
}
