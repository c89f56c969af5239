package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
		fails    bool
	}{
		{raw: "150,00 €", expected: 150},
		{raw: "€ 150,00", expected: 150},
		{raw: "123,45 €", expected: 123.45},
		{raw: "€ 1.234,56", expected: 1234.56},
		{raw: "89,90", expected: 89.9},
		{raw: "", fails: true},
		{raw: "€", fails: true},
		{raw: "free!", fails: true},
	}

	for _, test := range testCases {
		amount, err := ParseAmount(test.raw)
		if test.fails {
			require.Error(t, err, "expected %q to fail", test.raw)
			continue
		}
		require.NoError(t, err, "expected %q to parse", test.raw)
		require.InDelta(t, test.expected, amount, 0.0001)
	}
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Adresse e-mail", []string{"adressee-mail"}))
	require.True(t, MatchName("  Numéro   de téléphone ", []string{"téléphone"}))
	require.False(t, MatchName("Adresse", []string{"adressee-mail"}))
	require.False(t, MatchName("Newsletter", []string{"nom", "name"}))
}
