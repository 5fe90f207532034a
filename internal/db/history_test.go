package db

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marinewatch/maritime-backend/internal/models"
)

func TestMongoHistoryCollection_ReplayOrdering(t *testing.T) {
	store := NewStore(testDatabase(t))
	ctx := context.Background()

	vessel, err := store.Vessels.InsertVessel(ctx, models.Vessel{Name: "Ocean Voyager", Type: "Cargo"})
	require.NoError(t, err)

	// Rapid appends can share a timestamp at the store's clock resolution.
	coords := [][2]float64{{15.0, 70.0}, {15.1, 70.2}, {15.2, 70.4}}
	for _, c := range coords {
		_, err := store.History.AppendTrackPoint(ctx, vessel.ID, c[0], c[1])
		require.NoError(t, err)
	}

	points, err := store.History.Replay(ctx, vessel.ID)
	require.NoError(t, err)
	require.Len(t, points, 3)

	for i, c := range coords {
		assert.Equal(t, c[0], points[i].Latitude)
		assert.Equal(t, c[1], points[i].Longitude)
	}
	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].Timestamp.Before(points[i-1].Timestamp),
			"timestamps must be non-decreasing")
	}
}

func TestMongoHistoryCollection_ReplayIsRestartable(t *testing.T) {
	store := NewStore(testDatabase(t))
	ctx := context.Background()

	vessel, err := store.Vessels.InsertVessel(ctx, models.Vessel{Name: "Sea Stallion", Type: "Tanker"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := store.History.AppendTrackPoint(ctx, vessel.ID, 10.0+float64(i), 65.0)
		require.NoError(t, err)
	}

	first, err := store.History.Replay(ctx, vessel.ID)
	require.NoError(t, err)
	second, err := store.History.Replay(ctx, vessel.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMongoHistoryCollection_ConcurrentAppendOrdering(t *testing.T) {
	store := NewStore(testDatabase(t))
	ctx := context.Background()

	vessel, err := store.Vessels.InsertVessel(ctx, models.Vessel{Name: "Gulf Explorer", Type: "Container"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.History.AppendTrackPoint(ctx, vessel.ID, float64(i), 60.0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	points, err := store.History.Replay(ctx, vessel.ID)
	require.NoError(t, err)
	require.Len(t, points, 20)
	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].Timestamp.Before(points[i-1].Timestamp))
	}
}

func TestMongoHistoryCollection_Recent(t *testing.T) {
	store := NewStore(testDatabase(t))
	ctx := context.Background()

	vessel, err := store.Vessels.InsertVessel(ctx, models.Vessel{Name: "Blue Whale", Type: "Oil Tanker"})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := store.History.AppendTrackPoint(ctx, vessel.ID, float64(i), 80.0)
		require.NoError(t, err)
	}

	points, err := store.History.Recent(ctx, bson.M{"vessel_id": vessel.ID}, 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	// Newest first.
	assert.Equal(t, 3.0, points[0].Latitude)
	assert.Equal(t, 2.0, points[1].Latitude)
}
