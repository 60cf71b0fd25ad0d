package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicateStrings(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"FRLYS", "FRMSC", "", "FRLYS", "FRPAR"}, []string{"FRPAR"})

	assert.Equal(t, []string{"FRLYS", "FRMSC"}, result)
}

func TestNormaliseStationCode(t *testing.T) {
	assert.Equal(t, "FRPAR", NormaliseStationCode(" frpar "))
}

func TestFilters(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}

	even := Filter(values, func(i int) bool { return i%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Len(t, values, 5)
}
