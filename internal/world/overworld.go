package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/telemetry"
)

const (
	// Default overworld dimensions
	DefaultWidth  = 20
	DefaultHeight = 20

	// Documented start tile, on the main north-south road
	StartX = 10
	StartY = 12

	mainRoadX = 10
	mainRoadY = 10
)

// Point is a single map coordinate.
type Point struct {
	X, Y int
}

// Town layout. Everything is fixed; only the map size varies.
var (
	buildings = []Rect{
		{X: 7, Y: 7, Width: 2, Height: 2},   // House
		{X: 13, Y: 7, Width: 2, Height: 2},  // Critter Center
		{X: 7, Y: 13, Width: 3, Height: 2},  // Shop
		{X: 15, Y: 15, Width: 2, Height: 2}, // House
		{X: 3, Y: 3, Width: 2, Height: 2},   // House
	}

	ponds = []Rect{
		{X: 2, Y: 16, Width: 4, Height: 3},
		{X: 15, Y: 2, Width: 3, Height: 4},
	}

	trees = []Point{
		{1, 1}, {18, 1}, {1, 18}, {18, 18},
		{5, 5}, {14, 5}, {5, 14}, {16, 12},
		{8, 2}, {11, 2}, {2, 8}, {17, 8},
	}

	flowers = []Point{
		{4, 4}, {15, 4}, {4, 15}, {12, 16},
		{6, 6}, {13, 6}, {6, 13}, {17, 13},
		{9, 3}, {12, 3}, {3, 9}, {16, 9},
	}

	tallGrass = []Rect{
		{X: 0, Y: 0, Width: 3, Height: 3},
		{X: 17, Y: 17, Width: 3, Height: 3},
		{X: 0, Y: 17, Width: 3, Height: 3},
		{X: 17, Y: 0, Width: 3, Height: 3},
	}
)

// Overworld is the explorable tile map. Tiles are not modified after
// Generate returns.
type Overworld struct {
	Width     int
	Height    int
	Tiles     [][]Tile
	Buildings []Rect
	start     Point
}

// NewOverworld creates a new overworld filled with grass.
func NewOverworld(width, height int) *Overworld {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = NewTile(TerrainGrass)
		}
	}

	return &Overworld{
		Width:     width,
		Height:    height,
		Tiles:     tiles,
		Buildings: make([]Rect, 0, len(buildings)),
		start:     Point{StartX, StartY},
	}
}

// Generate lays out the town: roads, fenced buildings, ponds, then trees,
// flowers and tall grass on whatever grass is left. Any part of the layout
// outside the map is skipped.
func (o *Overworld) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "overworld.generate")
	defer span.End()

	startTime := time.Now()

	o.carveRoads()

	for _, b := range buildings {
		o.placeBuilding(b)
	}

	for _, p := range ponds {
		o.fill(p, TerrainWater)
	}

	for _, p := range trees {
		o.placeOnGrass(p.X, p.Y, TerrainTree)
	}
	for _, p := range flowers {
		o.placeOnGrass(p.X, p.Y, TerrainFlower)
	}
	for _, area := range tallGrass {
		for y := area.Y; y < area.Y+area.Height; y++ {
			for x := area.X; x < area.X+area.Width; x++ {
				o.placeOnGrass(x, y, TerrainTallGrass)
			}
		}
	}

	o.start = o.findStart()

	span.SetAttributes(
		attribute.Int("overworld.width", o.Width),
		attribute.Int("overworld.height", o.Height),
		attribute.Int("overworld.building_count", len(o.Buildings)),
		attribute.Int("overworld.walkable_tiles", o.countWalkable()),
		attribute.Int("overworld.start_x", o.start.X),
		attribute.Int("overworld.start_y", o.start.Y),
		attribute.Int64("overworld.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// InBounds returns true if the position is on the map.
func (o *Overworld) InBounds(x, y int) bool {
	return x >= 0 && x < o.Width && y >= 0 && y < o.Height
}

// IsWalkable returns true if the given position can be walked on.
func (o *Overworld) IsWalkable(x, y int) bool {
	if !o.InBounds(x, y) {
		return false
	}
	return o.Tiles[y][x].Walkable
}

// GetTile returns the tile at the given position. Positions off the map
// read as an impassable tree.
func (o *Overworld) GetTile(x, y int) Tile {
	if !o.InBounds(x, y) {
		return NewTile(TerrainTree)
	}
	return o.Tiles[y][x]
}

// Start returns the avatar's starting position. After Generate it is always
// walkable if the map has any walkable tile.
func (o *Overworld) Start() (int, int) {
	return o.start.X, o.start.Y
}

// carveRoads lays the main cross of paths.
func (o *Overworld) carveRoads() {
	for y := 0; y < o.Height; y++ {
		o.set(mainRoadX, y, TerrainPath)
	}
	for x := 0; x < o.Width; x++ {
		o.set(x, mainRoadY, TerrainPath)
	}
}

// placeBuilding fills the footprint and rings it with fence. Fences only
// replace grass, so roads pass through the ring as gates.
func (o *Overworld) placeBuilding(b Rect) {
	o.fill(b, TerrainBuilding)

	ring := b.Grow(1)
	for y := ring.Y; y < ring.Y+ring.Height; y++ {
		for x := ring.X; x < ring.X+ring.Width; x++ {
			if ring.OnBorder(x, y) {
				o.placeOnGrass(x, y, TerrainFence)
			}
		}
	}

	o.Buildings = append(o.Buildings, b)
}

func (o *Overworld) fill(r Rect, t Terrain) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			o.set(x, y, t)
		}
	}
}

func (o *Overworld) placeOnGrass(x, y int, t Terrain) {
	if o.InBounds(x, y) && o.Tiles[y][x].Terrain == TerrainGrass {
		o.Tiles[y][x] = NewTile(t)
	}
}

func (o *Overworld) set(x, y int, t Terrain) {
	if o.InBounds(x, y) {
		o.Tiles[y][x] = NewTile(t)
	}
}

// findStart keeps the documented start when it is walkable, else falls back
// to the first walkable tile in row order.
func (o *Overworld) findStart() Point {
	if o.IsWalkable(StartX, StartY) {
		return Point{StartX, StartY}
	}
	for y := 0; y < o.Height; y++ {
		for x := 0; x < o.Width; x++ {
			if o.Tiles[y][x].Walkable {
				return Point{x, y}
			}
		}
	}
	return Point{}
}

func (o *Overworld) countWalkable() int {
	count := 0
	for y := range o.Tiles {
		for x := range o.Tiles[y] {
			if o.Tiles[y][x].Walkable {
				count++
			}
		}
	}
	return count
}
