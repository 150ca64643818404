package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringArray{"flour", "eggs"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["flour","eggs"]`, v)
}

func TestStringArrayScan(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan([]byte(`["salt"]`)))
	assert.Equal(t, StringArray{"salt"}, a)

	require.NoError(t, a.Scan(`["a","b"]`))
	assert.Equal(t, StringArray{"a", "b"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Equal(t, StringArray{}, a)

	assert.Error(t, a.Scan(42))
}

func TestCommentsRoundTripThroughColumn(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := Comments{{User: "ana", Comment: "great", Date: date}}

	v, err := in.Value()
	require.NoError(t, err)

	var out Comments
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.Equal(t, "ana", out[0].User)
	assert.True(t, date.Equal(out[0].Date))
}

func TestRecipeJSONUsesEmptyArrays(t *testing.T) {
	b, err := json.Marshal(Recipe{Title: "Soup"})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []interface{}{}, got["ingredients"])
	assert.Equal(t, []interface{}{}, got["comments"])
	assert.Equal(t, "Soup", got["title"])
	assert.Contains(t, got, "imageUrl")
	assert.Contains(t, got, "prepTime")
	assert.Contains(t, got, "dateAdded")
}

func TestBeforeCreateFillsDefaults(t *testing.T) {
	r := &Recipe{}
	require.NoError(t, r.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.False(t, r.DateAdded.IsZero())
	assert.NotNil(t, r.Ingredients)
	assert.NotNil(t, r.Comments)

	id := uuid.New()
	added := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	r = &Recipe{ID: id, DateAdded: added}
	require.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, id, r.ID)
	assert.Equal(t, added, r.DateAdded)
}
