package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

func TestParseMovementType(t *testing.T) {
	tests := []struct {
		in   string
		want entity.MovementType
		ok   bool
	}{
		{"sent", entity.MovementSent, true},
		{" RETURNED ", entity.MovementReturned, true},
		{"envio", entity.MovementSent, true},
		{"Saída", entity.MovementIssued, true},
		{"perda", entity.MovementLost, true},
		{"entrada", entity.MovementReceived, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := entity.ParseMovementType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		if ok {
			assert.True(t, got.Valid())
		}
	}
	assert.False(t, entity.MovementType("saida").Valid())
}

func TestValidQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"0.001", true},
		{"1.250", true},
		{"2.50000", true},
		{"0", false},
		{"-1", false},
		{"0.0004", false},
		{"1.2345", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entity.ValidQuantity(decimal.RequireFromString(tt.in)), "cantidad %s", tt.in)
	}
}
