package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"foodgram/internal/models"
)

// readPairs returns every two-column row, trimmed. Blank lines are skipped.
func readPairs(r io.Reader) ([][2]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var pairs [][2]string
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return pairs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(record))
		}
		a, b := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if a == "" || b == "" {
			return nil, fmt.Errorf("line %d: empty column", line)
		}
		pairs = append(pairs, [2]string{a, b})
	}
}

// ReadIngredients parses "name,measurement_unit" rows.
func ReadIngredients(r io.Reader) ([]models.Ingredient, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.Ingredient, len(pairs))
	for i, p := range pairs {
		out[i] = models.Ingredient{Name: p[0], MeasurementUnit: p[1]}
	}
	return out, nil
}

// ReadTags parses "name,slug" rows.
func ReadTags(r io.Reader) ([]models.Tag, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.Tag, len(pairs))
	for i, p := range pairs {
		out[i] = models.Tag{Name: p[0], Slug: p[1]}
	}
	return out, nil
}
