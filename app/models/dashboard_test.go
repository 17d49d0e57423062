package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetListValueNilStoresEmptyArray(t *testing.T) {
	var w WidgetList

	v, err := w.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestWidgetListRoundTrip(t *testing.T) {
	w := WidgetList{"budget-overview", "timeline"}

	v, err := w.Value()
	require.NoError(t, err)

	var got WidgetList
	require.NoError(t, got.Scan(v))
	assert.Equal(t, w, got)

	// MySQL drivers hand JSON columns back as []byte.
	var fromBytes WidgetList
	require.NoError(t, fromBytes.Scan([]byte(`["doc-repo"]`)))
	assert.Equal(t, WidgetList{"doc-repo"}, fromBytes)
}

func TestWidgetListScanNilIsEmpty(t *testing.T) {
	var w WidgetList
	require.NoError(t, w.Scan(nil))
	assert.NotNil(t, w)
	assert.Empty(t, w)
}

func TestWidgetListScanRejectsUnknownType(t *testing.T) {
	var w WidgetList
	assert.Error(t, w.Scan(42))
}

func TestDashboardHas(t *testing.T) {
	d := Dashboard{Widgets: WidgetList{"budget-overview", "project-contacts"}}

	assert.True(t, d.Has("budget-overview"))
	assert.False(t, d.Has("timeline"))
	assert.False(t, (&Dashboard{}).Has("timeline"))
}
