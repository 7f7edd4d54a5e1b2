package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSpecialization(t *testing.T) {
	tests := []struct {
		message string
		want    string
		matched bool
	}{
		{"I need a cardiologist", "Cardiology", true},
		{"My HEART hurts", "Cardiology", true},
		{"looking for a skin doctor", "Dermatology", true},
		{"pediatrician for my children", "Pediatrics", true},
		{"need a dental checkup", "Dentistry", true},
		{"is there a gp nearby", "General Practice", true},
		{"hello there", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := MatchSpecialization(tt.message)
		assert.Equal(t, tt.matched, ok, "message %q", tt.message)
		assert.Equal(t, tt.want, got, "message %q", tt.message)
	}
}

func TestMatchSpecializationFirstMatchWins(t *testing.T) {
	// "cardiologist" precedes "skin" in the table, so a message containing
	// both resolves to Cardiology.
	got, ok := MatchSpecialization("cardiologist or skin doctor, whichever is free")
	assert.True(t, ok)
	assert.Equal(t, "Cardiology", got)

	// reversed word order does not change the outcome; table order decides
	got, ok = MatchSpecialization("skin doctor or cardiologist, whichever is free")
	assert.True(t, ok)
	assert.Equal(t, "Cardiology", got)
}
