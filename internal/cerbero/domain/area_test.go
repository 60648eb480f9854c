package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 30}, got)
	assert.Equal(t, "07:30", got.String())

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestAreaAccessibleAt_SameDayWindow(t *testing.T) {
	a, err := NewArea("LAB-01", "Robotics Lab", AreaLaboratory, "Building C",
		TimeOfDay{Hour: 7}, TimeOfDay{Hour: 20})
	require.NoError(t, err)

	assert.True(t, a.AccessibleAt(at(7, 0)), "opening boundary is inclusive")
	assert.True(t, a.AccessibleAt(at(13, 30)))
	assert.True(t, a.AccessibleAt(at(20, 0)), "closing boundary is inclusive")
	assert.False(t, a.AccessibleAt(at(6, 59)))
	assert.False(t, a.AccessibleAt(at(20, 1)))
	assert.False(t, a.AccessibleAt(at(23, 0)))
}

func TestAreaAccessibleAt_WrapsPastMidnight(t *testing.T) {
	a, err := NewArea("SRV-01", "Server Room", AreaSensitive, "Basement",
		TimeOfDay{Hour: 20}, TimeOfDay{Hour: 7})
	require.NoError(t, err)

	assert.True(t, a.AccessibleAt(at(20, 0)))
	assert.True(t, a.AccessibleAt(at(23, 59)))
	assert.True(t, a.AccessibleAt(at(0, 0)))
	assert.True(t, a.AccessibleAt(at(6, 59)))
	assert.True(t, a.AccessibleAt(at(7, 0)))
	assert.False(t, a.AccessibleAt(at(7, 1)))
	assert.False(t, a.AccessibleAt(at(19, 59)))
	assert.False(t, a.AccessibleAt(at(13, 0)))
}

func TestNewArea_RequiresIdentifiers(t *testing.T) {
	_, err := NewArea("", "Lab", AreaLaboratory, "Building C", TimeOfDay{}, TimeOfDay{})
	assert.Error(t, err)
	_, err = NewArea("LAB-01", " ", AreaLaboratory, "Building C", TimeOfDay{}, TimeOfDay{})
	assert.Error(t, err)
	_, err = NewArea("LAB-01", "Lab", AreaLaboratory, "", TimeOfDay{}, TimeOfDay{})
	assert.Error(t, err)
}
