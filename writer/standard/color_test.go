package standard_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolioblog56/upi-payment-qr/writer/standard"
)

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"black":          {0, 0, 0, 255},
		"WHITE":          {255, 255, 255, 255},
		" orange ":       {255, 165, 0, 255},
		"#ff0000":        {255, 0, 0, 255},
		"#0F0":           {0, 255, 0, 255},
		"#1a2B3c":        {26, 43, 60, 255},
		"rgb(1, 2, 3)":   {1, 2, 3, 255},
		"rgb(255,165,0)": {255, 165, 0, 255},
	}

	for in, want := range cases {
		got, err := standard.ParseColor(in)
		require.NoErrorf(t, err, "input %q", in)
		assert.Equalf(t, want, got, "input %q", in)
	}
}

func TestParseColor_malformed(t *testing.T) {
	for _, in := range []string{
		"", "not-a-color", "#12", "#12345", "#zzzzzz",
		"rgb(1,2)", "rgb(256,0,0)", "rgb(a,b,c)",
	} {
		_, err := standard.ParseColor(in)
		require.Errorf(t, err, "input %q", in)

		var styleErr *standard.InvalidStyleError
		assert.ErrorAs(t, err, &styleErr)
	}
}
