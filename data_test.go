package hxup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxup/lib/dom"
)

func TestReadData(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Data
	}{
		{"absent", `<div id="x"></div>`, Data{}},
		{"blank", `<div id="x" up-data=" "></div>`, Data{}},
		{"null", `<div id="x" up-data="null"></div>`, Data{}},
		{"object", `<div id="x" up-data='{"a":1}'></div>`, Data{"a": float64(1)}},
		{"nested", `<div id="x" up-data='{"a":{"b":["c"]}}'></div>`, Data{"a": map[string]any{"b": []any{"c"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := dom.ParseFragment(tt.html)
			require.NoError(t, err)

			got, err := ReadData(dom.ByID(root, "x"), "up-data")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadDataMalformed(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"bad json", `<div id="x" up-data='{bad json'></div>`},
		{"not an object", `<div id="x" up-data='[1, 2]'></div>`},
		{"scalar", `<div id="x" up-data='42'></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := dom.ParseFragment(tt.html)
			require.NoError(t, err)
			el := dom.ByID(root, "x")

			_, err = ReadData(el, "up-data")
			require.Error(t, err)
			assert.True(t, IsDataParseError(err))

			var elErr *ElementError
			require.ErrorAs(t, err, &elErr)
			assert.Same(t, el, elErr.Element)
			assert.Equal(t, "data", elErr.Op)
		})
	}
}

func TestReadDataCustomAttribute(t *testing.T) {
	root, err := dom.ParseFragment(`<div id="x" data-props='{"k":"v"}'></div>`)
	require.NoError(t, err)

	got, err := ReadData(dom.ByID(root, "x"), "data-props")
	require.NoError(t, err)
	assert.Equal(t, Data{"k": "v"}, got)
}
