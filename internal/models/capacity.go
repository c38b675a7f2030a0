package models

import "strconv"

// Statistics describes how much of a symbol the current content fills.
type Statistics struct {
	Length   int `json:"length"`
	Version  int `json:"version"`
	Capacity int `json:"capacity"`
}

// VersionLabel renders the version the way the UI shows it, e.g. "v3".
func (s Statistics) VersionLabel() string {
	return "v" + strconv.Itoa(s.Version)
}

// capacityTable maps the estimated version (index+1) to its character capacity.
// This is a coarse approximation used for display only; the encoder picks the
// real version from the content and error-correction level.
var capacityTable = []int{41, 77, 127, 187, 335, 520}

// fallbackCapacity is reported for versions outside capacityTable.
const fallbackCapacity = 2953

// EstimateCapacity maps a content length to an estimated symbol version and
// its capacity. Versions grow monotonically with length and top out at 6.
func EstimateCapacity(length int) Statistics {
	if length < 0 {
		length = 0
	}
	version := len(capacityTable)
	for i, limit := range capacityTable[:len(capacityTable)-1] {
		if length <= limit {
			version = i + 1
			break
		}
	}
	return Statistics{
		Length:   length,
		Version:  version,
		Capacity: CapacityForVersion(version),
	}
}

// CapacityForVersion returns the table capacity of a version, or 2953 when
// the version is outside the table.
func CapacityForVersion(version int) int {
	if version < 1 || version > len(capacityTable) {
		return fallbackCapacity
	}
	return capacityTable[version-1]
}
