package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credd/internal/models"
	"credd/internal/testutil"
)

func TestHistoryService_Defaults(t *testing.T) {
	h := testutil.NewMockHistory()
	for i := 0; i < 25; i++ {
		require.NoError(t, h.Append(context.Background(),
			storedScan(fmt.Sprintf("s%02d", i), "u1", 50, models.VerdictUnclear, base.Add(time.Duration(i)*time.Minute))))
	}
	svc := NewHistoryService(h)

	page, err := svc.History(context.Background(), models.HistoryFilter{UserHash: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, models.DefaultPageSize, page.PageSize)
	assert.Equal(t, int64(25), page.Total)
	require.Len(t, page.Scans, models.DefaultPageSize)
	assert.Equal(t, "s24", page.Scans[0].ID)

	page, err = svc.History(context.Background(), models.HistoryFilter{UserHash: "u1", Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Scans, 5)
}

func TestHistoryService_Validation(t *testing.T) {
	svc := NewHistoryService(testutil.NewMockHistory())

	for _, f := range []models.HistoryFilter{
		{},
		{UserHash: "u1", Page: -1},
		{UserHash: "u1", PageSize: -5},
		{UserHash: "u1", PageSize: models.MaxPageSize + 1},
	} {
		_, err := svc.History(context.Background(), f)
		assert.ErrorIs(t, err, models.ErrInvalidInput, "%+v", f)
	}

	_, err := svc.History(context.Background(), models.HistoryFilter{UserHash: "u1", PageSize: models.MaxPageSize})
	assert.NoError(t, err)
}

func TestHistoryService_Scan(t *testing.T) {
	h := testutil.NewMockHistory()
	require.NoError(t, h.Append(context.Background(), storedScan("s1", "u1", 50, models.VerdictUnclear, base)))
	svc := NewHistoryService(h)

	got, err := svc.Scan(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	_, err = svc.Scan(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Scan(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
