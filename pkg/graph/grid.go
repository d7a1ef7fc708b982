package graph

import (
	"math"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/util"
)

// spatialGrid is a uniform-cell hash of stops keyed by (cellX, cellY),
// sized so a 3x3 neighborhood around any cell is guaranteed to enclose a
// query disk of radius up to cellSizeM. It holds only NodeID
// indices into StopGraph's stop slice; it never owns coordinates.
type spatialGrid struct {
	cellSizeM  float64
	cellDegLat float64
	cells      map[int64][]NodeID
}

// maxCellCoord bounds |cx|, |cy| so the cy*1e6+cx pairing used by cellKey
// never collides.
// At cellSizeM=1500m the whole Earth spans roughly +-6,700 cells of
// latitude and +-13,400 cells of longitude, well inside this bound.
const maxCellCoord = 500000

func newSpatialGrid(cellSizeM float64) *spatialGrid {
	// One degree of latitude is ~111,320m; cells are sized in degrees of
	// latitude and scaled by cos(lat) for longitude at query time, since a
	// fixed-meter grid on a lat/lon plane isn't rectangular.
	return &spatialGrid{
		cellSizeM:  cellSizeM,
		cellDegLat: cellSizeM / 111320.0,
		cells:      make(map[int64][]NodeID),
	}
}

func (g *spatialGrid) cellCoords(lat, lon float64) (int, int) {
	cosLat := util.Max(math.Cos(lat*math.Pi/180.0), 0.01)
	cellDegLon := g.cellDegLat / cosLat
	cx := int(math.Floor(lon / cellDegLon))
	cy := int(math.Floor(lat / g.cellDegLat))
	return cx, cy
}

func cellKey(cx, cy int) int64 {
	return int64(cy)*int64(2*maxCellCoord) + int64(cx)
}

// insert adds id's cell membership. A stop is inserted exactly once, at
// construction time, and never moved: a stop appears in exactly one cell.
func (g *spatialGrid) insert(id NodeID, lat, lon float64) {
	cx, cy := g.cellCoords(lat, lon)
	key := cellKey(cx, cy)
	g.cells[key] = append(g.cells[key], id)
}

// query returns every NodeID in the 3x3 cell neighborhood around (lat,
// lon). Callers exact-filter the result by haversine distance; this only
// narrows the candidate set.
func (g *spatialGrid) query(lat, lon, r float64) []NodeID {
	cx, cy := g.cellCoords(lat, lon)
	var out []NodeID
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			key := cellKey(cx+dx, cy+dy)
			out = append(out, g.cells[key]...)
		}
	}
	return out
}
