package recipes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_CreatedDate(t *testing.T) {
	tests := []struct {
		name string
		json string
		want time.Time
	}{
		{
			name: "RFC 3339 string",
			json: `{"id":"1","createdDate":"2024-05-01T12:00:00Z"}`,
			want: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "ISO string with milliseconds",
			json: `{"id":"1","createdDate":"2024-05-01T12:00:00.250Z"}`,
			want: time.Date(2024, 5, 1, 12, 0, 0, 250_000_000, time.UTC),
		},
		{
			name: "epoch milliseconds",
			json: `{"id":"1","createdDate":1714564800000}`,
			want: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "missing date",
			json: `{"id":"1"}`,
			want: time.Time{},
		},
		{
			name: "unreadable date string",
			json: `{"id":"1","createdDate":"yesterday"}`,
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recipe
			require.NoError(t, json.Unmarshal([]byte(tt.json), &r))
			assert.Equal(t, "1", r.ID)
			assert.True(t, tt.want.Equal(r.CreatedDate), "got %s", r.CreatedDate)
		})
	}
}

func TestRecipe_JSONFieldNames(t *testing.T) {
	r := Recipe{
		ID:            "recipe-1",
		Name:          "Test Recipe",
		Ingredients:   []string{"1", "2"},
		TotalCalories: 295,
		CreatedDate:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"recipe-1","name":"Test Recipe","ingredients":["1","2"],"totalCalories":295,"createdDate":"2024-05-01T12:00:00Z"}`,
		string(b))

	var back Recipe
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r, back)
}

func TestRecipe_RejectsWrongShape(t *testing.T) {
	var r Recipe
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"ingredients":"1"}`), &r))
}
