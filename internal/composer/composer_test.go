package composer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vehicle-service-management/internal/model"
)

type fakeCatalog struct{ parts []model.SparePart }

func (f *fakeCatalog) Catalog(context.Context) ([]model.SparePart, error) { return f.parts, nil }

type fakeRecorder struct {
	err    error
	nextID int64
	saved  []model.PartUsage
	header *model.ServiceRecord
}

func (f *fakeRecorder) CreateWithParts(_ context.Context, sr *model.ServiceRecord, parts []model.PartUsage) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	sr.ID = f.nextID
	f.header = sr
	f.saved = parts
	return nil
}

func newTestComposer() (*Composer, *fakeCatalog, *fakeRecorder) {
	cat := &fakeCatalog{parts: []model.SparePart{
		{ID: 1, PartName: "Oil Filter", UnitPrice: decimal.NewFromInt(10), QuantityInStock: 5},
		{ID: 2, PartName: "Brake Pad", UnitPrice: decimal.NewFromInt(5), QuantityInStock: 1},
	}}
	rec := &fakeRecorder{}
	c := New(NewMemoryStore(0), cat, rec)
	c.now = func() time.Time { return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC) }
	return c, cat, rec
}

func TestStart_AppliesDefaults(t *testing.T) {
	c, _, _ := newTestComposer()
	d, err := c.Start(context.Background(), Header{VehicleID: 3})
	require.NoError(t, err)

	assert.Equal(t, StateCollecting, d.State)
	assert.Equal(t, "2025-03-04", d.Header.ServiceDate)
	assert.Equal(t, "In Progress", d.Header.Status)
	assert.Empty(t, d.Items)
}

func TestAddParts_AppendsInSelectionOrderWithSnapshotPrice(t *testing.T) {
	c, cat, _ := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})

	d, err := c.BeginPicking(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePicking, d.State)
	require.Len(t, d.Catalog, 2)

	// a price change after the snapshot does not affect the batch
	cat.parts[0].UnitPrice = decimal.NewFromInt(99)

	d, warnings, err := c.AddParts(ctx, d.ID, []int64{1}, 2, false)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, StateCollecting, d.State)
	assert.Nil(t, d.Catalog)
	require.Len(t, d.Items, 1)
	assert.Equal(t, LineItem{PartID: 1, PartName: "Oil Filter", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}, d.Items[0])
}

func TestAddParts_DuplicatesAcrossBatchesAreKept(t *testing.T) {
	c, _, _ := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})

	for i := 0; i < 2; i++ {
		_, err := c.BeginPicking(ctx, d.ID)
		require.NoError(t, err)
		_, _, err = c.AddParts(ctx, d.ID, []int64{1, 1}, 1, false)
		require.NoError(t, err)
	}
	d, err := c.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, d.Items, 2)
}

func TestAddParts_LowStockNeedsConfirmation(t *testing.T) {
	c, _, _ := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})
	_, err := c.BeginPicking(ctx, d.ID)
	require.NoError(t, err)

	_, warnings, err := c.AddParts(ctx, d.ID, []int64{2, 1}, 3, false)
	var low *LowStockError
	require.ErrorAs(t, err, &low)
	require.Len(t, warnings, 1)
	assert.Equal(t, StockWarning{PartID: 2, PartName: "Brake Pad", Requested: 3, InStock: 1}, warnings[0])

	d, err = c.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePicking, d.State, "batch refused, still picking")
	assert.Empty(t, d.Items)

	d, warnings, err = c.AddParts(ctx, d.ID, []int64{2, 1}, 3, true)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	require.Len(t, d.Items, 2)
	assert.Equal(t, int64(2), d.Items[0].PartID)
	assert.Equal(t, int64(1), d.Items[1].PartID)
}

func TestAddParts_Refusals(t *testing.T) {
	c, _, _ := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})

	_, _, err := c.AddParts(ctx, d.ID, []int64{1}, 1, false)
	assert.ErrorIs(t, err, ErrNotPicking)

	_, err = c.BeginPicking(ctx, d.ID)
	require.NoError(t, err)
	_, err = c.BeginPicking(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotCollecting)

	_, _, err = c.AddParts(ctx, d.ID, []int64{1}, 0, false)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, _, err = c.AddParts(ctx, d.ID, nil, 1, false)
	assert.ErrorIs(t, err, ErrNoSelection)
	_, _, err = c.AddParts(ctx, d.ID, []int64{42}, 1, false)
	assert.ErrorIs(t, err, ErrUnknownPart)

	_, _, err = c.Save(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotCollecting)
}

func TestCancelPicking_KeepsItems(t *testing.T) {
	c, _, _ := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})
	_, _ = c.BeginPicking(ctx, d.ID)
	_, _, _ = c.AddParts(ctx, d.ID, []int64{1}, 1, false)
	_, _ = c.BeginPicking(ctx, d.ID)

	d, err := c.CancelPicking(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StateCollecting, d.State)
	assert.Len(t, d.Items, 1)
}

func TestRemoveItem(t *testing.T) {
	c, _, _ := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})
	_, _ = c.BeginPicking(ctx, d.ID)
	_, _, _ = c.AddParts(ctx, d.ID, []int64{1, 2}, 1, true)

	d, err := c.RemoveItem(ctx, d.ID, 0)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.Equal(t, int64(2), d.Items[0].PartID)

	_, err = c.RemoveItem(ctx, d.ID, 5)
	assert.ErrorIs(t, err, ErrItemIndex)
}

func TestSave_WritesItemsInOrderAndDiscardsDraft(t *testing.T) {
	c, _, rec := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{VehicleID: 7, MechanicID: 2, Problem: "Brakes"})
	_, _ = c.BeginPicking(ctx, d.ID)
	_, _, _ = c.AddParts(ctx, d.ID, []int64{2}, 1, false)
	_, _ = c.BeginPicking(ctx, d.ID)
	_, _, _ = c.AddParts(ctx, d.ID, []int64{1}, 2, false)

	sr, parts, err := c.Save(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sr.ID)
	assert.Equal(t, int64(7), rec.header.VehicleID)
	assert.True(t, rec.header.TotalCost.IsZero())
	require.Len(t, parts, 2)
	assert.Equal(t, int64(2), parts[0].PartID)
	assert.Equal(t, int64(1), parts[1].PartID)

	_, err = c.Draft(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSave_FailureKeepsDraft(t *testing.T) {
	c, _, rec := newTestComposer()
	ctx := context.Background()
	rec.err = errors.New("duplicate key")
	d, _ := c.Start(ctx, Header{})

	_, _, err := c.Save(ctx, d.ID)
	assert.EqualError(t, err, "duplicate key")
	_, err = c.Draft(ctx, d.ID)
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	c, _, rec := newTestComposer()
	ctx := context.Background()
	d, _ := c.Start(ctx, Header{})

	require.NoError(t, c.Cancel(ctx, d.ID))
	assert.ErrorIs(t, c.Cancel(ctx, d.ID), ErrDraftNotFound)
	assert.Nil(t, rec.header)
}

func TestMemoryStore_CopiesDrafts(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	d := &Draft{ID: "a", State: StateCollecting, Items: []LineItem{{PartID: 1}}}
	require.NoError(t, s.Put(ctx, d))
	d.Items[0].PartID = 9

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Items[0].PartID)
}

func TestMemoryStore_ExpiresAbandonedDrafts(t *testing.T) {
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Hour)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &Draft{ID: "old", State: StateCollecting}))
	now = now.Add(30 * time.Minute)
	require.NoError(t, s.Put(ctx, &Draft{ID: "busy", State: StateCollecting}))

	now = now.Add(45 * time.Minute)
	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = s.Get(ctx, "busy")
	assert.NoError(t, err, "writing a draft restarts its expiry")

	now = now.Add(time.Hour)
	require.NoError(t, s.Put(ctx, &Draft{ID: "new", State: StateCollecting}))
	assert.Len(t, s.drafts, 1, "expired drafts are dropped on write")
}
