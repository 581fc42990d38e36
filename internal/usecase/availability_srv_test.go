package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"show-booking/internal/dto/request"
	"show-booking/internal/usecase"
	"show-booking/pkg/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const seatCacheTTL = 5 * time.Second

func newAvailabilityService(st *fakeState, seatCache *cache.SeatCache) usecase.AvailabilityService {
	return usecase.NewAvailabilityService(st.newRepository(), seatCache, zap.NewNop())
}

func TestCheckAvailability_WithoutCache(t *testing.T) {
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(nil, seatCacheTTL, zap.NewNop()))
	showID := st.addShow(250.0, 40, "A1")

	resp, err := svc.Check(context.Background(), showID.String(), &request.CheckAvailabilityRequest{
		Seats: []string{"A2", "A3"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.ConflictingSeats)
	assert.Equal(t, 39, resp.SeatsLeft)
}

func TestCheckAvailability_ReportsConflicts(t *testing.T) {
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(nil, seatCacheTTL, zap.NewNop()))
	showID := st.addShow(250.0, 40, "A1", "B2")

	resp, err := svc.Check(context.Background(), showID.String(), &request.CheckAvailabilityRequest{
		Seats: []string{"A1", "B2", "C3"},
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.ElementsMatch(t, []string{"A1", "B2"}, resp.ConflictingSeats)
}

func TestCheckAvailability_NotEnoughSeatsLeft(t *testing.T) {
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(nil, seatCacheTTL, zap.NewNop()))
	showID := st.addShow(250.0, 3, "A1", "A2")

	resp, err := svc.Check(context.Background(), showID.String(), &request.CheckAvailabilityRequest{
		Seats: []string{"B1", "B2"},
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.ConflictingSeats)
	assert.Equal(t, 1, resp.SeatsLeft)
}

func TestCheckAvailability_CacheMissFillsSnapshot(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(rdb, seatCacheTTL, zap.NewNop()))
	showID := st.addShow(250.0, 40, "A1")

	raw, err := json.Marshal(cache.SeatSnapshot{TotalSeatCount: 40, BookedSeats: []string{"A1"}})
	require.NoError(t, err)

	key := "show:seats:" + showID.String()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, raw, seatCacheTTL).SetVal("OK")

	resp, err := svc.Check(context.Background(), showID.String(), &request.CheckAvailabilityRequest{
		Seats: []string{"A1"},
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, []string{"A1"}, resp.ConflictingSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAvailability_ServedFromCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	// empty state: a database read would report show-not-found, so a
	// successful answer proves the snapshot came from the cache
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(rdb, seatCacheTTL, zap.NewNop()))

	showID := uuid.New()
	raw, err := json.Marshal(cache.SeatSnapshot{TotalSeatCount: 40, BookedSeats: []string{"B2"}})
	require.NoError(t, err)
	mock.ExpectGet("show:seats:" + showID.String()).SetVal(string(raw))

	resp, err := svc.Check(context.Background(), showID.String(), &request.CheckAvailabilityRequest{
		Seats: []string{"B1"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 39, resp.SeatsLeft)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAvailability_ShowNotFound(t *testing.T) {
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(nil, seatCacheTTL, zap.NewNop()))

	_, err := svc.Check(context.Background(), uuid.NewString(), &request.CheckAvailabilityRequest{
		Seats: []string{"A1"},
	})

	assert.ErrorIs(t, err, usecase.ErrShowNotFound)
}

func TestCheckAvailability_RejectsMalformedSeatIDs(t *testing.T) {
	st := newFakeState()
	svc := newAvailabilityService(st, cache.NewSeatCache(nil, seatCacheTTL, zap.NewNop()))
	showID := st.addShow(250.0, 40)

	for _, seat := range []string{"a1", "1A", "AAA1", "A", ""} {
		_, err := svc.Check(context.Background(), showID.String(), &request.CheckAvailabilityRequest{
			Seats: []string{seat},
		})
		assert.Error(t, err, "seat ID %q should fail validation", seat)
	}
}
