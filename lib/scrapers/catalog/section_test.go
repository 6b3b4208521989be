package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSectionID(t *testing.T) {
	testCases := []struct {
		text     string
		expected SectionID
	}{
		{"L1 (1023)", SectionID{Code: "L1", Number: 1023}},
		{"LA1 (1979)", SectionID{Code: "LA1", Number: 1979}},
		{"T2 (2104)", SectionID{Code: "T2", Number: 2104}},
	}

	for _, test := range testCases {
		parsed, err := ParseSectionID(test.text)
		require.NoError(t, err)
		require.Equal(t, test.expected, parsed)
	}
}

func TestParseSectionIDInvalid(t *testing.T) {
	for _, text := range []string{"", "garbage", "L1", "L1 (12a3)"} {
		_, err := ParseSectionID(text)
		require.ErrorIs(t, err, ErrSectionID, "input: %q", text)
	}
}
