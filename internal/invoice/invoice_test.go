package invoice

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vehicle-service-management/internal/config"
	"github.com/iliyamo/vehicle-service-management/internal/model"
	"github.com/iliyamo/vehicle-service-management/internal/repository"
)

type fakeSource struct {
	rec   *model.ServiceRecord
	parts []model.ServicePart
}

func (f *fakeSource) Get(_ context.Context, id int64) (*model.ServiceRecord, error) {
	if f.rec == nil || f.rec.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.rec, nil
}

func (f *fakeSource) Parts(context.Context, int64) ([]model.ServicePart, error) { return f.parts, nil }

type recordingOpener struct {
	paths []string
	err   error
}

func (o *recordingOpener) Open(p string) error {
	o.paths = append(o.paths, p)
	return o.err
}

func line(q int64, price string) model.ServicePart {
	p := decimal.RequireFromString(price)
	return model.ServicePart{PartName: "Part " + price, QuantityUsed: q, UnitPrice: p, TotalPartCost: p.Mul(decimal.NewFromInt(q))}
}

func TestRender_UnknownServiceWritesNothing(t *testing.T) {
	chdir(t, t.TempDir())
	r := NewRenderer(&fakeSource{}, config.DefaultShopProfile(), nil, nil)

	_, err := r.Render(context.Background(), 5)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	_, statErr := os.Stat(FileName(5))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_WritesBillAndSumsLines(t *testing.T) {
	chdir(t, t.TempDir())
	src := &fakeSource{
		rec:   &model.ServiceRecord{ID: 12, VehicleID: 3, MechanicID: 1, ServiceDate: "2025-01-02", Problem: "Brakes", Status: "Completed", TotalCost: decimal.NewFromInt(7)},
		parts: []model.ServicePart{line(2, "10.50"), line(1, "4.25")},
	}
	opener := &recordingOpener{}
	r := NewRenderer(src, config.DefaultShopProfile(), opener, nil)

	inv, err := r.Render(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "service_bill_12.pdf", inv.Path)
	assert.Equal(t, "25.25", inv.PartsTotal.StringFixed(2))
	assert.Equal(t, "7.00", inv.StoredTotal.StringFixed(2), "stored total is printed as read")
	assert.True(t, inv.Opened)
	assert.Equal(t, []string{"service_bill_12.pdf"}, opener.paths)

	raw, err := os.ReadFile(inv.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestRender_ViewerFailureIsNotAnError(t *testing.T) {
	chdir(t, t.TempDir())
	src := &fakeSource{rec: &model.ServiceRecord{ID: 1}}
	r := NewRenderer(src, config.DefaultShopProfile(), &recordingOpener{err: errors.New("no display")}, nil)

	inv, err := r.Render(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, inv.Opened)
	assert.True(t, inv.PartsTotal.IsZero())
	_, err = os.Stat(inv.Path)
	assert.NoError(t, err)
}

func TestRender_ManyLinesSpanPages(t *testing.T) {
	chdir(t, t.TempDir())
	var parts []model.ServicePart
	for i := 1; i <= 60; i++ {
		parts = append(parts, line(1, strconv.Itoa(i)))
	}
	src := &fakeSource{rec: &model.ServiceRecord{ID: 2}, parts: parts}
	r := NewRenderer(src, config.DefaultShopProfile(), nil, nil)

	inv, err := r.Render(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "1830.00", inv.PartsTotal.StringFixed(2))
	assert.False(t, inv.Opened)

	pdf := r.document(inv)
	assert.Greater(t, pdf.PageCount(), 1)
}
