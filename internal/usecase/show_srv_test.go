package usecase_test

import (
	"context"
	"testing"

	"show-booking/internal/dto/request"
	"show-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIngestShow(t *testing.T) {
	st := newFakeState()
	svc := usecase.NewShowService(st.newRepository(), zap.NewNop())

	show, err := svc.IngestShow(context.Background(), &request.CreateShowRequest{
		TicketPrice:    250.0,
		TotalSeatCount: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, 250.0, show.TicketPrice)
	assert.Equal(t, 40, show.TotalSeatCount)
	assert.Equal(t, 40, show.SeatsLeft)
	assert.Empty(t, show.BookedSeats)

	got, err := svc.GetShow(context.Background(), show.ID)
	require.NoError(t, err)
	assert.Equal(t, show.ID, got.ID)
}

func TestIngestShow_RejectsInvalidInput(t *testing.T) {
	st := newFakeState()
	svc := usecase.NewShowService(st.newRepository(), zap.NewNop())

	_, err := svc.IngestShow(context.Background(), &request.CreateShowRequest{
		TicketPrice:    -1,
		TotalSeatCount: 40,
	})
	assert.Error(t, err)

	_, err = svc.IngestShow(context.Background(), &request.CreateShowRequest{
		TicketPrice:    250.0,
		TotalSeatCount: 0,
	})
	assert.Error(t, err)
}

func TestGetShow_NotFound(t *testing.T) {
	st := newFakeState()
	svc := usecase.NewShowService(st.newRepository(), zap.NewNop())

	_, err := svc.GetShow(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, usecase.ErrShowNotFound)
}
