package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		filter string
		clause string
		params []interface{}
	}{
		{"", "", nil},
		{"category eq 'rig_char'", "category = ?", []interface{}{"rig_char"}},
		{"project_id eq '3' and version ge '2'", "project_id = ? AND version >= ?", []interface{}{"3", "2"}},
		{"(action eq 'activate' or action eq 'variation') and not folder eq '__hero'",
			"(action = ? OR action = ?) AND NOT folder = ?", []interface{}{"activate", "variation", "__hero"}},
		{"base_name startswith 'geo'", "base_name LIKE ?", []interface{}{"geo%"}},
		{"active_path contains 'and or'", "active_path LIKE ?", []interface{}{"%and or%"}},
		{"extension endswith 'ma'", "extension LIKE ?", []interface{}{"%ma"}},
		{"version LT \"4\"", "version < ?", []interface{}{"4"}},
	}
	for _, tt := range tests {
		clause, params, err := ParseFilter(tt.filter)
		assert.NoError(t, err, tt.filter)
		assert.Equal(t, tt.clause, clause, tt.filter)
		assert.Equal(t, tt.params, params, tt.filter)
	}
}

func TestParseFilter_Rejects(t *testing.T) {
	for _, filter := range []string{
		"password eq 'x'",
		"category eq 'x'; DROP TABLE snapshots",
		"category = 'x'",
		"category eq 'x' union select",
		"1 eq 1",
	} {
		_, _, err := ParseFilter(filter)
		assert.True(t, errors.Is(err, ErrInvalidInput), filter)
	}
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("")
	assert.NoError(t, err)
	assert.Equal(t, "id", order)

	order, err = ParseOrder("version DESC, created_at")
	assert.NoError(t, err)
	assert.Equal(t, "version desc, created_at asc", order)

	for _, bad := range []string{"secret", "version sideways", "version desc extra", "version,"} {
		_, err = ParseOrder(bad)
		assert.True(t, errors.Is(err, ErrInvalidInput), bad)
	}
}
