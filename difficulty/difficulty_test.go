package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMap() *Beatmap {
	objects := []HitObject{
		{StartTime: 0, Kind: Circle},
		{StartTime: 300, Kind: Circle},
		{StartTime: 600, Kind: Slider, Duration: 200},
		{StartTime: 1100, Kind: Circle},
		{StartTime: 1400, Kind: Spinner, Duration: 1000},
	}

	return &Beatmap{MapID: 42, Checksum: "abc", AR: 9, CS: 4, OD: 8.5, HP: 6, BPM: 200, Objects: objects}
}

func TestParseMods(t *testing.T) {
	mods, err := ParseMods("+hddt")
	require.NoError(t, err)
	assert.True(t, mods.Contains("HD"))
	assert.True(t, mods.Contains("DT"))
	assert.Equal(t, "HDDT", mods.String())

	exact, err := ParseMods("nc!")
	require.NoError(t, err)
	assert.Equal(t, "NC", exact.String())

	nomod, err := ParseMods("")
	require.NoError(t, err)
	assert.Empty(t, nomod)
	assert.Equal(t, "NM", nomod.String())

	_, err = ParseMods("XY")
	assert.Error(t, err)

	_, err = ParseMods("EZHR")
	assert.Error(t, err)

	_, err = ParseMods("HDH")
	assert.Error(t, err)

	_, err = ParseMods("HDHD")
	assert.Error(t, err)
}

func TestModsEqualIgnoresOrder(t *testing.T) {
	a := Mods{{Acronym: "HD"}, {Acronym: "DT"}}
	b := Mods{{Acronym: "DT"}, {Acronym: "HD"}}
	c := Mods{{Acronym: "DT", Speed: 1.3}, {Acronym: "HD"}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestClockRate(t *testing.T) {
	assert.Equal(t, 1.0, Mods(nil).ClockRate())
	assert.Equal(t, 1.5, Mods{{Acronym: "DT"}}.ClockRate())
	assert.Equal(t, 0.75, Mods{{Acronym: "HT"}}.ClockRate())
	assert.Equal(t, 1.3, Mods{{Acronym: "DT", Speed: 1.3}}.ClockRate())
}

func TestCalculateDeterministic(t *testing.T) {
	m := testMap()
	mods := Mods{{Acronym: "HD"}, {Acronym: "DT"}}

	first := Calculate(m, mods, false)
	second := Calculate(m, mods, false)
	assert.Equal(t, first, second)
	assert.Greater(t, first.Stars, 0.0)
}

func TestCalculateLazerCombo(t *testing.T) {
	m := testMap()

	stable := Calculate(m, nil, false)
	lazer := Calculate(m, nil, true)

	// One slider in the map, so the lazer flavor counts one extra tail.
	assert.Equal(t, stable.MaxCombo+1, lazer.MaxCombo)
}

func TestCheckSuspicionLength(t *testing.T) {
	m := testMap()
	require.NoError(t, m.CheckSuspicion())

	m.Objects = append(m.Objects, HitObject{StartTime: 25 * 60 * 60 * 1000, Kind: Circle})
	assert.ErrorIs(t, m.CheckSuspicion(), ErrSuspicious)
}

func TestCacheComputesOnce(t *testing.T) {
	cache := NewCache()

	calls := 0
	cache.calc = func(b *Beatmap, mods Mods, lazer bool) Attributes {
		calls++

		return Calculate(b, mods, lazer)
	}

	m := testMap()
	mods := Mods{{Acronym: "HR"}}

	first := cache.Get(m, mods, false)
	require.NotNil(t, first)
	second := cache.Get(m, mods, false)
	require.NotNil(t, second)

	assert.Equal(t, 1, calls)
	assert.Equal(t, *first, *second)

	// A different key recomputes.
	third := cache.Get(m, mods, true)
	require.NotNil(t, third)
	assert.Equal(t, 2, calls)
}

func TestCacheHitReturnsCopy(t *testing.T) {
	cache := NewCache()
	m := testMap()

	first := cache.Get(m, nil, false)
	require.NotNil(t, first)
	first.Stars = -1

	second := cache.Get(m, nil, false)
	require.NotNil(t, second)
	assert.NotEqual(t, -1.0, second.Stars)
}

func TestCacheNeverStoresSuspicious(t *testing.T) {
	cache := NewCache()

	m := testMap()
	m.Objects = append(m.Objects, HitObject{StartTime: 25 * 60 * 60 * 1000, Kind: Circle})

	assert.Nil(t, cache.Get(m, nil, false))
	assert.Nil(t, cache.Get(m, nil, false))
	assert.Equal(t, 0, cache.Len())
}
