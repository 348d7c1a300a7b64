package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceIsZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-6.2099, 106.8503},
		{89.9, -179.9},
	}
	for _, p := range points {
		assert.Zero(t, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Position{Lat: -6.1376, Lon: 106.8146}
	b := Position{Lat: -6.2383, Lon: 106.9756}
	assert.Equal(t, Distance(a.Lat, a.Lon, b.Lat, b.Lon), Distance(b.Lat, b.Lon, a.Lat, a.Lon))
}

func TestDistanceJakartaKotaToManggarai(t *testing.T) {
	// Roughly 9 km apart on the ground.
	d := Distance(-6.1376, 106.8146, -6.2099, 106.8503)
	assert.InDelta(t, 8.9, d, 0.5)
}

type sourceFunc func(ctx context.Context) (Position, error)

func (f sourceFunc) CurrentPosition(ctx context.Context) (Position, error) {
	return f(ctx)
}

func TestLocateWithoutSource(t *testing.T) {
	pos, ok := Locate(context.Background(), nil)
	assert.False(t, ok)
	assert.Zero(t, pos)
}

func TestLocateSourceError(t *testing.T) {
	src := sourceFunc(func(ctx context.Context) (Position, error) {
		return Position{}, errors.New("permission denied")
	})
	_, ok := Locate(context.Background(), src)
	assert.False(t, ok)
}

func TestLocateTimesOutWithoutFailing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	src := sourceFunc(func(ctx context.Context) (Position, error) {
		<-ctx.Done()
		return Position{}, ctx.Err()
	})

	start := time.Now()
	_, ok := Locate(ctx, src)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLocateSuccess(t *testing.T) {
	src := sourceFunc(func(ctx context.Context) (Position, error) {
		return Position{Lat: -6.2099, Lon: 106.8503}, nil
	})
	pos, ok := Locate(context.Background(), src)
	require.True(t, ok)
	assert.Equal(t, Position{Lat: -6.2099, Lon: 106.8503}, pos)
}
