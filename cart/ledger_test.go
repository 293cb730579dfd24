package cart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/storefront/models"
)

// --- Helpers ---

func newTestProduct(id uint, price int64) models.Product {
	return models.Product{ID: id, Name: "product", Price: price, InStock: true}
}

// --- Tests ---

func TestAddSameProductTwice(t *testing.T) {
	l := NewLedger()
	p := newTestProduct(1, 285)

	require.NoError(t, l.Add(p))
	require.NoError(t, l.Add(p))

	lines := l.Lines()
	require.Len(t, lines, 1, "Adding twice must not duplicate the line")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, l.TotalItems())
	assert.Equal(t, int64(570), l.TotalPrice())
}

func TestAddQuantity(t *testing.T) {
	testCases := []struct {
		name          string
		product       models.Product
		quantity      int
		expectedErr   error
		expectedLines int
	}{
		{
			name:          "Several units at once",
			product:       newTestProduct(1, 100),
			quantity:      3,
			expectedLines: 1,
		},
		{
			name:          "Zero quantity",
			product:       newTestProduct(1, 100),
			quantity:      0,
			expectedErr:   ErrInvalidQuantity,
			expectedLines: 0,
		},
		{
			name:          "Out of stock",
			product:       models.Product{ID: 6, Price: 5990, InStock: false},
			quantity:      1,
			expectedErr:   ErrOutOfStock,
			expectedLines: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := NewLedger()

			// Act
			err := l.AddQuantity(tc.product, tc.quantity)

			// Assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, tc.expectedLines, l.Len())
		})
	}
}

func TestUpdateQuantity(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(newTestProduct(1, 100)))
	require.NoError(t, l.Add(newTestProduct(2, 50)))

	ok, err := l.UpdateQuantity(1, 5)
	require.NoError(t, err)
	assert.True(t, ok, "Existing line should be updated")
	assert.Equal(t, 5, l.Lines()[0].Quantity, "Quantity is set, not incremented")
	assert.Equal(t, int64(550), l.TotalPrice())

	ok, err = l.UpdateQuantity(99, 3)
	require.NoError(t, err)
	assert.False(t, ok, "Unknown line is a no-op")
	assert.Equal(t, 2, l.Len())
}

func TestQuantityUpperBound(t *testing.T) {
	testCases := []struct {
		name             string
		act              func(l *Ledger) error
		expectedErr      error
		expectedQuantity int
	}{
		{
			name:             "Add exactly up to the bound",
			act:              func(l *Ledger) error { return l.AddQuantity(newTestProduct(1, 100), MaxQuantity-1) },
			expectedQuantity: MaxQuantity,
		},
		{
			name:             "Add past the bound",
			act:              func(l *Ledger) error { return l.AddQuantity(newTestProduct(1, 100), MaxQuantity) },
			expectedErr:      ErrInvalidQuantity,
			expectedQuantity: 1,
		},
		{
			name:             "Huge add does not wrap",
			act:              func(l *Ledger) error { return l.AddQuantity(newTestProduct(1, 100), math.MaxInt) },
			expectedErr:      ErrInvalidQuantity,
			expectedQuantity: 1,
		},
		{
			name: "Update past the bound",
			act: func(l *Ledger) error {
				_, err := l.UpdateQuantity(1, math.MaxInt)
				return err
			},
			expectedErr:      ErrInvalidQuantity,
			expectedQuantity: 1,
		},
		{
			name: "Update to the bound",
			act: func(l *Ledger) error {
				_, err := l.UpdateQuantity(1, MaxQuantity)
				return err
			},
			expectedQuantity: MaxQuantity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := NewLedger()
			require.NoError(t, l.Add(newTestProduct(1, 100)))

			// Act
			err := tc.act(l)

			// Assert
			assert.ErrorIs(t, err, tc.expectedErr)
			require.Equal(t, 1, l.Len())
			assert.Equal(t, tc.expectedQuantity, l.Lines()[0].Quantity)
			assert.Equal(t, int64(100*tc.expectedQuantity), l.TotalPrice())
		})
	}
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	updated := NewLedger()
	removed := NewLedger()
	for _, l := range []*Ledger{updated, removed} {
		require.NoError(t, l.Add(newTestProduct(1, 100)))
		require.NoError(t, l.Add(newTestProduct(2, 50)))
	}

	ok, err := updated.UpdateQuantity(1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, removed.Remove(1))

	assert.Equal(t, removed.Lines(), updated.Lines())

	ok, err = updated.UpdateQuantity(2, -3)
	require.NoError(t, err)
	assert.True(t, ok, "Negative quantity removes too")
	assert.Equal(t, 0, updated.Len())
}

func TestRemove(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(newTestProduct(1, 100)))

	assert.False(t, l.Remove(2), "Removing an absent line is not an error")
	assert.True(t, l.Remove(1))
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.TotalItems())
	assert.Equal(t, int64(0), l.TotalPrice())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	l := NewLedger()
	for _, id := range []uint{3, 1, 2} {
		require.NoError(t, l.Add(newTestProduct(id, 10)))
	}
	require.NoError(t, l.Add(newTestProduct(1, 10)))

	lines := l.Lines()
	assert.Equal(t, uint(3), lines[0].Product.ID)
	assert.Equal(t, uint(1), lines[1].Product.ID)
	assert.Equal(t, uint(2), lines[2].Product.ID)

	lines[0].Quantity = 100
	assert.Equal(t, 1, l.Lines()[0].Quantity, "Lines returns a copy")

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestTotalsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []models.Product{
		newTestProduct(1, 285), newTestProduct(2, 320), newTestProduct(3, 890), newTestProduct(4, 12990),
	}

	for run := 0; run < 50; run++ {
		l := NewLedger()
		for step := 0; step < 40; step++ {
			p := products[rng.Intn(len(products))]
			switch rng.Intn(3) {
			case 0:
				require.NoError(t, l.AddQuantity(p, 1+rng.Intn(3)))
			case 1:
				l.UpdateQuantity(p.ID, rng.Intn(5)-1)
			case 2:
				l.Remove(p.ID)
			}

			var items int
			var price int64
			seen := map[uint]bool{}
			for _, line := range l.Lines() {
				assert.GreaterOrEqual(t, line.Quantity, 1)
				assert.False(t, seen[line.Product.ID], "at most one line per product")
				seen[line.Product.ID] = true
				items += line.Quantity
				price += line.Product.Price * int64(line.Quantity)
			}
			assert.Equal(t, items, l.TotalItems())
			assert.Equal(t, price, l.TotalPrice())
		}
	}
}
