// Package world provides the overworld map and explorer movement.
package world

// Terrain is the kind of ground a tile is made of.
type Terrain string

const (
	TerrainGrass     Terrain = "grass"
	TerrainTallGrass Terrain = "tall_grass"
	TerrainPath      Terrain = "path"
	TerrainFlower    Terrain = "flower"
	TerrainSand      Terrain = "sand"
	TerrainTree      Terrain = "tree"
	TerrainWater     Terrain = "water"
	TerrainBuilding  Terrain = "building"
	TerrainFence     Terrain = "fence"
)

type terrainInfo struct {
	walkable      bool
	encounterRate float64
	glyph         rune
}

// Sand is walkable but no generated layout places it.
var terrains = map[Terrain]terrainInfo{
	TerrainGrass:     {walkable: true, encounterRate: 0.15, glyph: '.'},
	TerrainTallGrass: {walkable: true, encounterRate: 0.25, glyph: '"'},
	TerrainPath:      {walkable: true, encounterRate: 0.02, glyph: ':'},
	TerrainFlower:    {walkable: true, encounterRate: 0.05, glyph: '*'},
	TerrainSand:      {walkable: true, encounterRate: 0.10, glyph: ','},
	TerrainTree:      {glyph: 'T'},
	TerrainWater:     {glyph: '~'},
	TerrainBuilding:  {glyph: '#'},
	TerrainFence:     {glyph: '+'},
}

// Walkable reports whether the avatar can stand on this terrain.
func (t Terrain) Walkable() bool {
	return terrains[t].walkable
}

// EncounterRate returns the chance, in [0,1], of a wild encounter per roll.
func (t Terrain) EncounterRate() float64 {
	return terrains[t].encounterRate
}

// Rune returns the terrain's display character.
func (t Terrain) Rune() rune {
	if info, ok := terrains[t]; ok {
		return info.glyph
	}
	return '?'
}

// Tile is a single map cell. Walkable and EncounterRate are fixed from the
// terrain when the tile is placed.
type Tile struct {
	Terrain       Terrain
	Walkable      bool
	EncounterRate float64
}

// NewTile returns a tile of the given terrain.
func NewTile(t Terrain) Tile {
	return Tile{
		Terrain:       t,
		Walkable:      t.Walkable(),
		EncounterRate: t.EncounterRate(),
	}
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return t.Terrain.Rune()
}
