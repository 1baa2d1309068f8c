package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIngredients(t *testing.T) {
	input := "flour,g\n\"eggs, large\",pcs\n\n  milk , ml \n"
	rows, err := ReadIngredients(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "flour", rows[0].Name)
	assert.Equal(t, "g", rows[0].MeasurementUnit)
	assert.Equal(t, "eggs, large", rows[1].Name)
	assert.Equal(t, "milk", rows[2].Name)
	assert.Equal(t, "ml", rows[2].MeasurementUnit)
}

func TestReadTags(t *testing.T) {
	rows, err := ReadTags(strings.NewReader("Breakfast,breakfast\nDinner,dinner\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dinner", rows[1].Name)
	assert.Equal(t, "dinner", rows[1].Slug)
}

func TestReadPairs_Errors(t *testing.T) {
	_, err := ReadTags(strings.NewReader("only-one-column\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadIngredients(strings.NewReader("salt,g\n,g\n"))
	assert.ErrorContains(t, err, "line 2")
}
