package sim

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatcher_Submit_FourthOrderCreatesWorkRequest(t *testing.T) {
	// GIVEN a batcher
	m := NewMetrics("test")
	b := NewBatcher(nil, discardLogger(), m)

	// WHEN three orders are submitted
	for _, p := range standardPairs[:3] {
		b.Submit(p)
	}

	// THEN nothing is available yet
	assert.Equal(t, 3, b.Pending())
	assert.Equal(t, 0, b.Available())

	// WHEN the fourth order arrives
	b.Submit(standardPairs[3])

	// THEN one WorkRequest holds the four orders in submission order
	assert.Equal(t, 0, b.Pending())
	require.Equal(t, 1, b.Available())
	req, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, 0, req.ID())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, req.Items())
	for i, o := range req.Orders() {
		assert.Equal(t, i, o.ID())
		assert.Equal(t, OrderCreated, o.Status())
	}
	assert.Len(t, b.Archive(), 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.OrdersSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkRequestsCreated))
}

func TestBatcher_Submit_IDsAreMonotonic(t *testing.T) {
	b := NewBatcher(nil, discardLogger(), nil)
	for i := 0; i < 3*BatchSize; i++ {
		o := b.Submit(ItemPair{"f", "r"})
		assert.Equal(t, i, o.ID())
	}
	assert.Equal(t, []int{0, 1, 2}, b.AvailableIDs())
}

func TestBatcher_Return_PutsRequestAtFront(t *testing.T) {
	// GIVEN two available requests, the first of which has been taken
	b := NewBatcher(nil, discardLogger(), nil)
	for i := 0; i < 2*BatchSize; i++ {
		b.Submit(ItemPair{"f", "r"})
	}
	first, _ := b.Next()

	// WHEN the first is returned
	b.Return(first)

	// THEN it is handed out again before the second
	next, _ := b.Next()
	assert.Same(t, first, next)
}

func TestBatcher_SubmitColorModel_TranslatesThroughCatalog(t *testing.T) {
	b := NewBatcher(testCatalog(), discardLogger(), nil)

	o, err := b.SubmitColorModel("Red", "S")
	require.NoError(t, err)
	assert.Equal(t, ItemPair{Front: "3", Rear: "4"}, o.Items())
}

func TestBatcher_SubmitColorModel_Unknown_NoOrderCreated(t *testing.T) {
	b := NewBatcher(testCatalog(), discardLogger(), nil)

	_, err := b.SubmitColorModel("Green", "S")

	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Equal(t, 0, b.Pending())
	o := b.Submit(ItemPair{"1", "2"})
	assert.Equal(t, 0, o.ID(), "a rejected order must not consume an id")
}
