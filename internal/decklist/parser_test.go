package decklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleLine(t *testing.T) {
	result := Parse("4 Lightning Bolt (2X2) 117")

	require.Len(t, result.Items, 1)
	assert.Empty(t, result.Warnings)

	item := result.Items[0]
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, "Lightning Bolt", item.Name)
	assert.Equal(t, "2X2", item.SetCode)
	assert.Equal(t, "117", item.CollectorNumber)
	assert.False(t, item.Foil)
	assert.Equal(t, BoardMain, item.Board)
}

func TestParse_FoilMarker(t *testing.T) {
	result := Parse("1 Fable of the Mirror-Breaker (NEO) 141 *F*")

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Foil)
}

func TestParse_FoilMarkerCaseInsensitive(t *testing.T) {
	result := Parse("1 Ragavan (MH2) 138 *f*")

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Foil)
}

func TestParse_NonFoilLetterIsNotFoil(t *testing.T) {
	result := Parse("1 Ragavan (MH2) 138 *E*")

	require.Len(t, result.Items, 1)
	assert.False(t, result.Items[0].Foil)
}

func TestParse_SetCodeUppercased(t *testing.T) {
	result := Parse("2 Abrade (vow) 139")

	require.Len(t, result.Items, 1)
	assert.Equal(t, "VOW", result.Items[0].SetCode)
}

func TestParse_SideboardToggle(t *testing.T) {
	tests := []struct {
		name   string
		marker string
	}{
		{"bare keyword", "SIDEBOARD"},
		{"with colon", "SIDEBOARD:"},
		{"lowercase", "sideboard"},
		{"mixed case with colon", "SideBoard:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse("1 Foo (ABC) 1\n" + tt.marker + "\n2 Bar (XYZ) 5")

			require.Len(t, result.Items, 2)
			assert.Equal(t, BoardMain, result.Items[0].Board)
			assert.Equal(t, BoardSideboard, result.Items[1].Board)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestParse_SideboardOnlyInput(t *testing.T) {
	result := Parse("SIDEBOARD\n1 Bar (XYZ) 5")

	require.Len(t, result.Items, 1)
	assert.Equal(t, BoardSideboard, result.Items[0].Board)
}

func TestParse_InvalidFormatWarningKeepsGoing(t *testing.T) {
	result := Parse("1 Good Card (ABC) 12\nBad Card without set code\n2 Another Card (DEF) 34")

	require.Len(t, result.Items, 2)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Skipped line (invalid format)")
	assert.Contains(t, result.Warnings[0], "Bad Card without set code")
}

func TestParse_InvalidQuantity(t *testing.T) {
	result := Parse("0 Worthless (ABC) 1")

	assert.Empty(t, result.Items)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Skipped line (invalid quantity)")
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		result := Parse(input)

		assert.Empty(t, result.Items)
		assert.Equal(t, []string{"Bulk text is empty."}, result.Warnings)
	}
}

func TestParse_BlankLinesDropppedSilently(t *testing.T) {
	result := Parse("1 Foo (ABC) 1\n\n\n2 Bar (XYZ) 5\n")

	assert.Len(t, result.Items, 2)
	assert.Empty(t, result.Warnings)
}

func TestParse_WindowsLineEndings(t *testing.T) {
	result := Parse("1 Foo (ABC) 1\r\n2 Bar (XYZ) 5\r\n")

	assert.Len(t, result.Items, 2)
	assert.Empty(t, result.Warnings)
}

func TestParse_PreservesInputOrder(t *testing.T) {
	result := Parse("1 Zebra (ABC) 9\n1 Aardvark (ABC) 1\n1 Mongoose (ABC) 5")

	require.Len(t, result.Items, 3)
	assert.Equal(t, "Zebra", result.Items[0].Name)
	assert.Equal(t, "Aardvark", result.Items[1].Name)
	assert.Equal(t, "Mongoose", result.Items[2].Name)
}

func TestParse_SetCodeLengthBounds(t *testing.T) {
	// 1-char and 11-char set codes do not match the grammar.
	result := Parse("1 Foo (A) 1\n1 Bar (ABCDEFGHIJK) 2\n1 Baz (AB) 3")

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Baz", result.Items[0].Name)
	assert.Len(t, result.Warnings, 2)
}

func TestParse_CollectorNumberWithHyphen(t *testing.T) {
	result := Parse("1 Promo Thing (PABC) 123-a")

	require.Len(t, result.Items, 1)
	assert.Equal(t, "123-a", result.Items[0].CollectorNumber)
}

func TestMerge_SumsQuantities(t *testing.T) {
	parsed := Parse("2 Foo (ABC) 1\n3 Foo (ABC) 1")
	merged := Merge(parsed.Items)

	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Quantity)
}

func TestMerge_KeyIsCaseInsensitive(t *testing.T) {
	parsed := Parse("2 Foo (ABC) 1\n3 FOO (abc) 1")
	merged := Merge(parsed.Items)

	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Quantity)
	// First occurrence wins the emitted fields.
	assert.Equal(t, "Foo", merged[0].Name)
}

func TestMerge_DistinguishesBoards(t *testing.T) {
	parsed := Parse("2 Foo (ABC) 1\nSIDEBOARD\n2 Foo (ABC) 1")
	merged := Merge(parsed.Items)

	assert.Len(t, merged, 2)
}

func TestMerge_DistinguishesFoil(t *testing.T) {
	parsed := Parse("2 Foo (ABC) 1\n2 Foo (ABC) 1 *F*")
	merged := Merge(parsed.Items)

	assert.Len(t, merged, 2)
}

func TestMerge_Idempotent(t *testing.T) {
	parsed := Parse("2 Foo (ABC) 1\n3 Foo (ABC) 1\n1 Bar (XYZ) 5")
	once := Merge(parsed.Items)
	twice := Merge(once)

	assert.Equal(t, once, twice)
}

func TestMerge_FirstSeenOrder(t *testing.T) {
	parsed := Parse("1 Zebra (ABC) 9\n1 Aardvark (ABC) 1\n2 Zebra (ABC) 9")
	merged := Merge(parsed.Items)

	require.Len(t, merged, 2)
	assert.Equal(t, "Zebra", merged[0].Name)
	assert.Equal(t, 3, merged[0].Quantity)
	assert.Equal(t, "Aardvark", merged[1].Name)
}

// Total copies after parse+merge must equal the sum of quantities of
// all successfully parsed lines, whatever the duplication pattern.
func TestParseMerge_QuantityConservation(t *testing.T) {
	input := "4 Foo (ABC) 1\n2 Bar (XYZ) 5\n3 Foo (ABC) 1\nSIDEBOARD\n2 Foo (ABC) 1\n1 Bar (XYZ) 5"
	parsed := Parse(input)

	var parsedTotal int
	for _, item := range parsed.Items {
		parsedTotal += item.Quantity
	}

	var mergedTotal int
	for _, item := range Merge(parsed.Items) {
		mergedTotal += item.Quantity
	}

	assert.Equal(t, 12, parsedTotal)
	assert.Equal(t, parsedTotal, mergedTotal)
}
