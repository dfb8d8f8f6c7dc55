package deadline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

type fakeGateway struct {
	items  []domain.Deadline
	fields []domain.RemedyDateField
	calls  int
}

func (f *fakeGateway) DeadlineInfo(context.Context, domain.DeadlineRequest) ([]domain.Deadline, error) {
	f.calls++
	return f.items, nil
}

func (f *fakeGateway) RemedyDates(context.Context, domain.RemedyDatesRequest) ([]domain.RemedyDateField, error) {
	f.calls++
	return f.fields, nil
}

func request() domain.DeadlineRequest {
	return domain.DeadlineRequest{
		State: "TX", ProjectType: "commercial", Role: "sub", CustomerType: "gc",
		FurnishingDates: map[string]domain.Date{domain.FirstFurnishingKey: domain.NewDate(2024, 1, 10)},
	}
}

func TestCalculate_SortsByDate(t *testing.T) {
	gw := &fakeGateway{items: []domain.Deadline{
		{Title: "Lien filing", Date: domain.NewDate(2024, 6, 15), DaysRemaining: 60},
		{Title: "Undated"},
		{Title: "Notice", Date: domain.NewDate(2024, 3, 15), DaysRemaining: -3},
	}}
	got, err := New(gw, nil).Calculate(context.Background(), request())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Notice", got[0].Title)
	assert.Equal(t, "Lien filing", got[1].Title)
	assert.Equal(t, "Undated", got[2].Title)
}

func TestCalculate_ValidatesBeforeCalling(t *testing.T) {
	gw := &fakeGateway{}
	svc := New(gw, nil)

	req := request()
	req.State = ""
	_, err := svc.Calculate(context.Background(), req)
	assert.ErrorIs(t, err, errors.ErrStepIncomplete)

	req = request()
	req.FurnishingDates = nil
	_, err = svc.Calculate(context.Background(), req)
	assert.ErrorIs(t, err, errors.ErrStepIncomplete)

	_, err = svc.RequiredDates(context.Background(), domain.RemedyDatesRequest{State: "TX"})
	assert.Error(t, err)
	assert.Zero(t, gw.calls)
}

func TestBuckets(t *testing.T) {
	b := Buckets([]domain.Deadline{
		{Title: "a", DaysRemaining: 31},
		{Title: "b", DaysRemaining: 30},
		{Title: "c", DaysRemaining: 0},
		{Title: "d", DaysRemaining: -1},
	})
	assert.Len(t, b[domain.UrgencySafe], 1)
	assert.Len(t, b[domain.UrgencySoon], 2)
	assert.Equal(t, "d", b[domain.UrgencyOverdue][0].Title)
}
