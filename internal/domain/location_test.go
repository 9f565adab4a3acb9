package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLocationCode(t *testing.T) {
	assert.Equal(t, "R-C01-S01", FormatLocationCode("R", 1, 1))
	assert.Equal(t, "M-C07-S03", FormatLocationCode("M", 7, 3))
	assert.Equal(t, "L-C12-S10", FormatLocationCode("L", 12, 10))
}

func TestParseLocationCode(t *testing.T) {
	zone, chamber, shelf, ok := ParseLocationCode("M-C07-S03")
	assert.True(t, ok)
	assert.Equal(t, "M", zone)
	assert.Equal(t, 7, chamber)
	assert.Equal(t, 3, shelf)

	for _, bad := range []string{"", "M-7-3", "m-C07-S03", "M-C7-S03", "M-C07-S03-X"} {
		_, _, _, ok := ParseLocationCode(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseLocationCode_RoundTrip(t *testing.T) {
	code := FormatLocationCode("R", 3, 2)

	zone, chamber, shelf, ok := ParseLocationCode(code)
	assert.True(t, ok)
	assert.Equal(t, code, FormatLocationCode(zone, chamber, shelf))
}

func TestLocation_CodeAndLabel(t *testing.T) {
	name := "Top Chamber"
	loc := Location{
		ShelfID:       "s-1",
		ZoneCode:      "R",
		ZoneName:      "Right Section",
		ChamberNumber: 1,
		ChamberName:   &name,
		ShelfNumber:   2,
	}

	assert.Equal(t, "R-C01-S02", loc.Code())
	assert.Equal(t, "Right Section → Top Chamber → Shelf 2", loc.Label())

	loc.ChamberName = nil
	assert.Equal(t, "Right Section → Top → Shelf 2", loc.Label())
}

func TestChamberPositionName(t *testing.T) {
	assert.Equal(t, "Top", ChamberPositionName(1))
	assert.Equal(t, "Bottom", ChamberPositionName(5))
	assert.Equal(t, "Position 9", ChamberPositionName(9))
}
