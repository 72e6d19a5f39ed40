package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileSlug(t *testing.T) {
	tests := map[string]string{
		"South Korea":          "South_Korea",
		"Côte d'Ivoire":        "Cte_dIvoire",
		"Bosnia & Herzegovina": "Bosnia__Herzegovina",
		"  ":                   "data",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileSlug(in), in)
	}
}

func TestDistinct(t *testing.T) {
	in := []string{" Japan", "Bonaire, Saint Eustatius And Saba", "", "Japan "}
	assert.Equal(t, []string{"Japan", "Bonaire, Saint Eustatius And Saba"}, Distinct(in))
	assert.Nil(t, Distinct(nil))
}
