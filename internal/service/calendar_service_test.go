package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

func TestCalendarUpdateKeepsCreationTimestamp(t *testing.T) {
	st := seededStore(t)
	svc := NewCalendarService(st, nil, nil, nil)

	original, ok := st.FindEvent("evt-001")
	require.True(t, ok)
	require.False(t, original.CreatedAt.IsZero())

	updated, err := svc.Update(context.Background(), "evt-001", CalendarEventRequest{
		Title: "Carnaval (feriado)",
		Date:  "2026-02-17",
		Type:  "Holiday",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carnaval (feriado)", updated.Title)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)

	stored, ok := st.FindEvent("evt-001")
	require.True(t, ok)
	assert.Equal(t, original.CreatedAt, stored.CreatedAt)
}

func TestCalendarUpdateUnknownEvent(t *testing.T) {
	st := seededStore(t)
	svc := NewCalendarService(st, nil, nil, nil)

	_, err := svc.Update(context.Background(), "evt-ghost", CalendarEventRequest{
		Title: "Fantasma",
		Date:  "2026-05-01",
		Type:  "Event",
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCalendarUpdateRejectsBadDate(t *testing.T) {
	st := seededStore(t)
	svc := NewCalendarService(st, nil, nil, nil)

	_, err := svc.Update(context.Background(), "evt-001", CalendarEventRequest{
		Title: "Carnaval",
		Date:  "17/02/2026",
		Type:  "Holiday",
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
