package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnit_IsValid(t *testing.T) {
	tests := []struct {
		unit    Unit
		isValid bool
	}{
		{UnitKG, true},
		{UnitTray, true},
		{UnitEach, true},
		{UnitLoose, true},
		{UnitBag, true},
		{Unit("CRATE"), false},
		{Unit(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.unit.IsValid())
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input   string
		want    Unit
		wantErr bool
	}{
		{"kg", UnitKG, false},
		{"Kgs", UnitKG, false},
		{"KILOS", UnitKG, false},
		{" tray ", UnitTray, false},
		{"trays", UnitTray, false},
		{"each", UnitEach, false},
		{"pcs", UnitEach, false},
		{"loose", UnitLoose, false},
		{"bags", UnitBag, false},
		{"pallet", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnitOrDefault(t *testing.T) {
	assert.Equal(t, UnitKG, ParseUnitOrDefault("kilo", UnitEach))
	assert.Equal(t, UnitEach, ParseUnitOrDefault("pallet", UnitEach))
	assert.Equal(t, UnitEach, ParseUnitOrDefault("", UnitEach))
}
