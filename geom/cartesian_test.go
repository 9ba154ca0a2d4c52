package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nverley/moc2d/xs"
)

func simpleTile(t *testing.T, w, h float64, m *xs.CrossSections) Tile {
	c, err := NewSimpleCell(w, h, m)
	if err != nil {
		t.Fatal(err.Error())
	}
	return Tile{Cell: c}
}

func TestCartesian2DLookup(tt *testing.T) {
	a, b := oneGroup(tt, 1), oneGroup(tt, 2)
	tiles := []Tile{
		simpleTile(tt, 1, 1, a), simpleTile(tt, 1, 1, b),
		simpleTile(tt, 1, 1, b), simpleTile(tt, 1, 1, a),
	}
	g, err := NewCartesian2D(
		[]float64{0, 1, 2}, []float64{0, 1, 2}, tiles,
	)
	assert.NoError(tt, err)
	assert.Equal(tt, 4, g.NumRegions())
	assert.Equal(tt, 2.0, g.Width())
	assert.Equal(tt, 2.0, g.Height())

	u := NewDirection(math.Pi / 4)
	table := []struct {
		r      Vec
		region int
	}{
		{Vec{0.5, 0.5}, 0},
		{Vec{1.5, 0.5}, 1},
		{Vec{0.5, 1.5}, 2},
		{Vec{1.5, 1.5}, 3},
	}
	for i, line := range table {
		region, err := g.FindFSR(line.r, u)
		if err != nil {
			tt.Errorf("%d) FindFSR failed: %s", i, err.Error())
		} else if region != line.region {
			tt.Errorf("%d) Expected region %d, got %d.", i, line.region, region)
		}
	}

	// Points on the internal tile boundary resolve along the direction.
	region, err := g.FindFSR(Vec{1, 0.5}, NewDirection(0))
	assert.NoError(tt, err)
	assert.Equal(tt, 1, region)
	region, err = g.FindFSR(Vec{1, 0.5}, NewDirection(math.Pi))
	assert.NoError(tt, err)
	assert.Equal(tt, 0, region)

	_, err = g.FindFSR(Vec{-0.5, 0.5}, u)
	assert.Error(tt, err, "point outside the lattice")

	assert.Same(tt, a, g.XS(0))
	assert.Same(tt, b, g.XS(1))
	assert.Same(tt, b, g.XS(2))
	assert.Same(tt, a, g.XS(3))
}

func TestCartesian2DDistance(tt *testing.T) {
	m := oneGroup(tt, 1)
	tiles := []Tile{
		simpleTile(tt, 1, 1, m), simpleTile(tt, 1, 1, m),
	}
	g, err := NewCartesian2D([]float64{0, 1, 2}, []float64{0, 1}, tiles)
	assert.NoError(tt, err)

	d, err := g.DistanceToSurface(Vec{0.25, 0.5}, NewDirection(0))
	assert.NoError(tt, err)
	assert.InDelta(tt, 0.75, d, 1e-6)

	// From the internal boundary the next surface is the far tile edge.
	d, err = g.DistanceToSurface(Vec{1, 0.5}, NewDirection(0))
	assert.NoError(tt, err)
	assert.InDelta(tt, 1.0, d, 1e-6)
}

func TestCartesian2DNested(tt *testing.T) {
	a, b := oneGroup(tt, 1), oneGroup(tt, 2)

	inner, err := NewCartesian2D(
		[]float64{0, 0.5, 1}, []float64{0, 0.5, 1},
		[]Tile{
			simpleTile(tt, 0.5, 0.5, a), simpleTile(tt, 0.5, 0.5, b),
			simpleTile(tt, 0.5, 0.5, b), simpleTile(tt, 0.5, 0.5, a),
		},
	)
	assert.NoError(tt, err)

	g, err := NewCartesian2D(
		[]float64{0, 1, 2}, []float64{0, 1},
		[]Tile{{Nested: inner}, simpleTile(tt, 1, 1, b)},
	)
	assert.NoError(tt, err)
	assert.Equal(tt, 5, g.NumRegions())

	u := NewDirection(math.Pi / 4)
	table := []struct {
		r      Vec
		region int
	}{
		{Vec{0.25, 0.25}, 0},
		{Vec{0.75, 0.25}, 1},
		{Vec{0.25, 0.75}, 2},
		{Vec{0.75, 0.75}, 3},
		{Vec{1.5, 0.5}, 4},
	}
	for i, line := range table {
		region, err := g.FindFSR(line.r, u)
		if err != nil {
			tt.Errorf("%d) FindFSR failed: %s", i, err.Error())
		} else if region != line.region {
			tt.Errorf("%d) Expected region %d, got %d.", i, line.region, region)
		}
	}

	// Distances see the nested tile boundaries as internal surfaces.
	d, err := g.DistanceToSurface(Vec{0.25, 0.25}, NewDirection(0))
	assert.NoError(tt, err)
	assert.InDelta(tt, 0.25, d, 1e-6)
}

func TestCartesian2DErrors(tt *testing.T) {
	m := oneGroup(tt, 1)

	_, err := NewCartesian2D(
		[]float64{0, 1}, []float64{0, 1}, []Tile{},
	)
	assert.Error(tt, err, "wrong tile count")

	_, err = NewCartesian2D(
		[]float64{0, 1, 1}, []float64{0, 1},
		[]Tile{simpleTile(tt, 1, 1, m), simpleTile(tt, 1, 1, m)},
	)
	assert.Error(tt, err, "non-ascending edges")

	_, err = NewCartesian2D(
		[]float64{0, 1}, []float64{0, 1},
		[]Tile{simpleTile(tt, 2, 1, m)},
	)
	assert.Error(tt, err, "cell size does not match the tile")

	_, err = NewCartesian2D(
		[]float64{0, 1}, []float64{0, 1}, []Tile{{}},
	)
	assert.Error(tt, err, "empty tile")
}
