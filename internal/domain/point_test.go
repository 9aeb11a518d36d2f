package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Rank(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		expected int
	}{
		{name: "pwd first", category: CategoryPWD, expected: 1},
		{name: "female second", category: CategoryFemale, expected: 2},
		{name: "male third", category: CategoryMale, expected: 3},
		{name: "unknown last", category: Category("other"), expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.Rank())
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" PWD ")
	require.NoError(t, err)
	assert.Equal(t, CategoryPWD, c)

	c, err = ParseCategory("Female")
	require.NoError(t, err)
	assert.Equal(t, CategoryFemale, c)

	_, err = ParseCategory("child")
	assert.Error(t, err)
}

func TestGeoPoint_Valid(t *testing.T) {
	assert.True(t, NewCenter(90, 180).Valid())
	assert.True(t, NewPerson(-90, -180, CategoryMale).Valid())
	assert.False(t, NewCenter(90.0001, 0).Valid())
	assert.False(t, NewCenter(0, -180.5).Valid())
}

func TestGeoPoint_Point(t *testing.T) {
	p := NewCenter(40.1, -3.7).Point()
	assert.Equal(t, 40.1, p.Lat())
	assert.Equal(t, -3.7, p.Lon())
}

func TestPairKey(t *testing.T) {
	a := NewPerson(40.4167754, -3.7037902, CategoryMale)
	b := NewCenter(40.42, -3.70)

	t.Run("order independent", func(t *testing.T) {
		assert.Equal(t, PairKey(a, b), PairKey(b, a))
	})

	t.Run("rounded to 6 digits", func(t *testing.T) {
		near := NewPerson(40.41677541, -3.70379019, CategoryPWD)
		assert.Equal(t, PairKey(a, b), PairKey(near, b))
	})

	t.Run("format", func(t *testing.T) {
		assert.Equal(t, "40.416775,-3.703790|40.420000,-3.700000", PairKey(b, a))
	})

	t.Run("negative zero", func(t *testing.T) {
		z := NewCenter(math.Copysign(0, -1), 0)
		assert.Equal(t, "0.000000,0.000000|1.000000,1.000000", PairKey(z, NewCenter(1, 1)))
	})
}

func TestDistanceMatrix(t *testing.T) {
	m := NewDistanceMatrix(2, 3, math.Inf(1))

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.False(t, m.Filled())

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			m.Cells[i][j] = DistanceResult{DistanceKm: float64(i + j), Source: SourceHaversine}
		}
	}
	assert.True(t, m.Filled())
	assert.Equal(t, 3.0, m.Distance(1, 2))

	assert.Equal(t, 0, NewDistanceMatrix(0, 0, 0).Cols())
}
