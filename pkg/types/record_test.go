package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   RecordInput
		wantErr error
	}{
		{
			name:  "valid input",
			input: RecordInput{Name: "Jane", Status: StatusActive},
		},
		{
			name:  "empty status is accepted",
			input: RecordInput{Name: "Jane"},
		},
		{
			name:    "empty name rejected",
			input:   RecordInput{Status: StatusActive},
			wantErr: ErrNameRequired,
		},
		{
			name:    "whitespace-only name rejected",
			input:   RecordInput{Name: "   \t"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "unknown status rejected",
			input:   RecordInput{Name: "Jane", Status: "paused"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusInactive))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Active"))
}

func TestNewRecordInputWireShape(t *testing.T) {
	in := NewRecordInput{
		RecordInput: RecordInput{
			Name:   "Jane",
			Email:  "jane@example.com",
			Role:   "admin",
			Status: StatusActive,
		},
		CreatedAt: "9/1/2026",
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	// The embedded fields must marshal flat, matching the POST body the
	// server expects.
	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, map[string]string{
		"name":      "Jane",
		"email":     "jane@example.com",
		"role":      "admin",
		"status":    "active",
		"createdAt": "9/1/2026",
	}, flat)
}
