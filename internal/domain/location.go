package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Location is a resolved shelf: zone, chamber and shelf, all active.
type Location struct {
	ShelfID       string
	ZoneCode      string
	ZoneName      string
	ChamberNumber int
	ChamberName   *string
	ShelfNumber   int
}

func (l Location) Code() string {
	return FormatLocationCode(l.ZoneCode, l.ChamberNumber, l.ShelfNumber)
}

func (l Location) Label() string {
	chamber := ChamberPositionName(l.ChamberNumber)
	if l.ChamberName != nil && *l.ChamberName != "" {
		chamber = *l.ChamberName
	}
	return fmt.Sprintf("%s → %s → Shelf %d", l.ZoneName, chamber, l.ShelfNumber)
}

// FormatLocationCode renders R-C01-S01 style codes.
func FormatLocationCode(zoneCode string, chamberNumber, shelfNumber int) string {
	return fmt.Sprintf("%s-C%02d-S%02d", zoneCode, chamberNumber, shelfNumber)
}

var locationCodePattern = regexp.MustCompile(`^([A-Z]{1,10})-C(\d{2,})-S(\d{2,})$`)

func ParseLocationCode(code string) (zoneCode string, chamberNumber, shelfNumber int, ok bool) {
	m := locationCodePattern.FindStringSubmatch(code)
	if m == nil {
		return "", 0, 0, false
	}
	chamberNumber, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, 0, false
	}
	shelfNumber, err = strconv.Atoi(m[3])
	if err != nil {
		return "", 0, 0, false
	}
	return m[1], chamberNumber, shelfNumber, true
}

var chamberPositions = map[int]string{
	1: "Top",
	2: "Upper",
	3: "Middle",
	4: "Lower",
	5: "Bottom",
}

func ChamberPositionName(chamberNumber int) string {
	if name, ok := chamberPositions[chamberNumber]; ok {
		return name
	}
	return fmt.Sprintf("Position %d", chamberNumber)
}
