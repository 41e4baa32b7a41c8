package terrain

import (
	"math"

	"Terrascape/internal/logger"

	"github.com/alitto/pond/v2"
	mgl32 "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ViewRadius is the chunk streaming radius around the camera; the visible
// window is (2*ViewRadius+1) chunks on a side.
const ViewRadius = 16

// ChunkCoord addresses a chunk in chunk-space.
type ChunkCoord struct {
	X, Z int32
}

// CoordFromWorld returns the chunk containing a world position.
func CoordFromWorld(pos mgl32.Vec3) ChunkCoord {
	return ChunkCoord{
		X: int32(math.Floor(float64(pos.X()) / ChunkWorldSize)),
		Z: int32(math.Floor(float64(pos.Z()) / ChunkWorldSize)),
	}
}

// WorldOffset returns the chunk's world-space origin.
func (c ChunkCoord) WorldOffset() [2]float32 {
	return [2]float32{
		float32(c.X) * ChunkWorldSize,
		float32(c.Z) * ChunkWorldSize,
	}
}

// VisibleInFrustum conservatively tests the chunk's AABB against the frustum
// planes. Height bounds assume terrain spans [-heightScale/2, heightScale].
func (c ChunkCoord) VisibleInFrustum(planes *[6]mgl32.Vec4, heightScale float32) bool {
	offset := c.WorldOffset()
	minX, maxX := offset[0], offset[0]+ChunkWorldSize
	minZ, maxZ := offset[1], offset[1]+ChunkWorldSize
	minY, maxY := -heightScale*0.5, heightScale

	for _, plane := range planes {
		px, py, pz := minX, minY, minZ
		if plane.X() >= 0 {
			px = maxX
		}
		if plane.Y() >= 0 {
			py = maxY
		}
		if plane.Z() >= 0 {
			pz = maxZ
		}
		if plane.X()*px+plane.Y()*py+plane.Z()*pz+plane.W() < 0 {
			return false
		}
	}
	return true
}

// chunkSlot is a reusable slot of the fixed chunk pool.
type chunkSlot struct {
	ready         bool
	hasCoord      bool
	coord         ChunkCoord
	heights       []float32
	params        ComputeParams
	lastUsedFrame uint64
}

// Renderer owns the chunk pool and runs the height kernel for chunks
// streaming around the camera.
type Renderer struct {
	slots        []chunkSlot
	coordToSlot  map[ChunkCoord]int
	currentFrame uint64
	viewRadius   int32

	settings   Settings
	needsRegen bool
	pool       pond.Pool
}

// NewRenderer creates the chunk pool and generates the initial window of
// chunks around the origin.
func NewRenderer(settings Settings, pool pond.Pool) *Renderer {
	return NewRendererWithRadius(settings, pool, ViewRadius)
}

// NewRendererWithRadius is NewRenderer with a custom streaming radius.
func NewRendererWithRadius(settings Settings, pool pond.Pool, radius int32) *Renderer {
	settings.Sanitize()
	span := int(radius)*2 + 1
	r := &Renderer{
		slots:       make([]chunkSlot, span*span),
		coordToSlot: make(map[ChunkCoord]int, span*span),
		viewRadius:  radius,
		settings:    settings,
		pool:        pool,
	}
	for i := range r.slots {
		r.slots[i].heights = make([]float32, ChunkSize*ChunkSize)
	}

	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			r.generateChunk(ChunkCoord{X: dx, Z: dz})
		}
	}
	logger.Log.Info("Generated initial chunks", zap.Int("count", span*span))
	return r
}

// Settings returns the renderer's last-applied settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// UpdateSettings replaces the settings and queues a full regeneration.
func (r *Renderer) UpdateSettings(settings Settings) {
	settings.Sanitize()
	r.settings = settings
	r.needsRegen = true
	logger.Log.Info("Terrain settings updated, regeneration queued")
}

// UpdateColors applies only the shading fields of the incoming settings.
// Height data is untouched, so no regeneration runs.
func (r *Renderer) UpdateColors(settings Settings) {
	s := &r.settings
	s.Ambient = settings.Ambient
	s.FogStart = settings.FogStart
	s.FogDistance = settings.FogDistance
	s.ColorAbyss = settings.ColorAbyss
	s.ColorDeepWater = settings.ColorDeepWater
	s.ColorShallowWater = settings.ColorShallowWater
	s.ColorSand = settings.ColorSand
	s.ColorGrass = settings.ColorGrass
	s.ColorRock = settings.ColorRock
	s.ColorSnow = settings.ColorSnow
	s.ColorSky = settings.ColorSky
	s.ColorSkyTop = settings.ColorSkyTop
	s.ColorSkyHorizon = settings.ColorSkyHorizon
}

// QueueRegeneration marks every chunk for regeneration with the current
// settings on the next Step.
func (r *Renderer) QueueRegeneration() {
	r.needsRegen = true
	logger.Log.Info("Terrain regeneration queued")
}

// CheckRegeneration regenerates all chunks if a regeneration is pending.
func (r *Renderer) CheckRegeneration(camPos mgl32.Vec3) {
	if r.needsRegen {
		r.RegenerateAll(camPos)
	}
}

// RegenerateAll clears every slot and rebuilds the chunk window around the
// camera with the current settings.
func (r *Renderer) RegenerateAll(camPos mgl32.Vec3) {
	for i := range r.slots {
		r.slots[i].ready = false
		r.slots[i].hasCoord = false
	}
	r.coordToSlot = make(map[ChunkCoord]int, len(r.slots))

	center := CoordFromWorld(camPos)
	for dz := -r.viewRadius; dz <= r.viewRadius; dz++ {
		for dx := -r.viewRadius; dx <= r.viewRadius; dx++ {
			r.generateChunk(ChunkCoord{X: center.X + dx, Z: center.Z + dz})
		}
	}
	r.needsRegen = false
	logger.Log.Info("Regenerated all terrain chunks", zap.Int("count", len(r.slots)))
}

// Update streams chunks as the camera moves: marks the needed window as used
// and generates any chunk not yet resident.
func (r *Renderer) Update(camPos mgl32.Vec3) {
	r.currentFrame++
	center := CoordFromWorld(camPos)

	for dz := -r.viewRadius; dz <= r.viewRadius; dz++ {
		for dx := -r.viewRadius; dx <= r.viewRadius; dx++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if idx, ok := r.coordToSlot[coord]; ok {
				r.slots[idx].lastUsedFrame = r.currentFrame
			} else {
				r.generateChunk(coord)
			}
		}
	}
}

// Heights returns the height buffer for a resident chunk.
func (r *Renderer) Heights(coord ChunkCoord) ([]float32, bool) {
	idx, ok := r.coordToSlot[coord]
	if !ok || !r.slots[idx].ready {
		return nil, false
	}
	return r.slots[idx].heights, true
}

// ResidentChunks returns the coordinates of all ready chunks.
func (r *Renderer) ResidentChunks() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(r.slots))
	for i := range r.slots {
		if r.slots[i].ready && r.slots[i].hasCoord {
			coords = append(coords, r.slots[i].coord)
		}
	}
	return coords
}

// ShadeChunk shades a resident chunk into dst using the current settings.
func (r *Renderer) ShadeChunk(dst []mgl32.Vec3, coord ChunkCoord, camPos mgl32.Vec3) bool {
	heights, ok := r.Heights(coord)
	if !ok {
		return false
	}
	offset := coord.WorldOffset()
	ShadeHeights(dst, heights, offset[0], offset[1], camPos, r.settings, r.pool)
	return true
}

func (r *Renderer) generateChunk(coord ChunkCoord) {
	idx := r.freeSlot()
	slot := &r.slots[idx]
	if slot.hasCoord {
		delete(r.coordToSlot, slot.coord)
	}

	slot.ready = true
	slot.hasCoord = true
	slot.coord = coord
	slot.lastUsedFrame = r.currentFrame
	r.coordToSlot[coord] = idx

	offset := coord.WorldOffset()
	slot.params = PackComputeParams(offset, r.settings)
	GenerateHeights(slot.heights, offset[0], offset[1], r.settings, r.pool)
}

// freeSlot returns an empty slot, or recycles the least recently used one.
func (r *Renderer) freeSlot() int {
	for i := range r.slots {
		if !r.slots[i].ready {
			return i
		}
	}
	oldest := uint64(math.MaxUint64)
	oldestIdx := 0
	for i := range r.slots {
		if r.slots[i].lastUsedFrame < oldest {
			oldest = r.slots[i].lastUsedFrame
			oldestIdx = i
		}
	}
	return oldestIdx
}
