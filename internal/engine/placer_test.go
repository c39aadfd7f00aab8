package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BinStack/internal/geometry"
)

func boxesFrom(dims ...[3]int) []innerBox {
	boxes := make([]innerBox, len(dims))
	for i, d := range dims {
		boxes[i] = newInnerBox(geometry.NewCuboid(d[0], d[1], d[2]))
	}
	return boxes
}

// orderedChromosome returns a chromosome whose order keys are ascending (so
// the packing order equals the input order) and whose orientation genes are
// zero.
func orderedChromosome(n int) chromosome {
	ch := make(chromosome, 2*n)
	for i := 0; i < n; i++ {
		ch[i] = float64(i) / float64(n)
	}
	return ch
}

func TestPlacerSingleItemFillsCarton(t *testing.T) {
	p := newPlacer(boxesFrom([3]int{10, 10, 10}), geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)

	sol := p.decode(orderedChromosome(1))

	require.Equal(t, 1, sol.numBins)
	require.Len(t, sol.placements, 1)
	assert.Equal(t, geometry.Point{}, sol.placements[0].space.BottomLeft)
	assert.Equal(t, geometry.Point{X: 10, Y: 10, Z: 10}, sol.placements[0].space.UpperRight)
	assert.Equal(t, 1000, sol.leastLoad)
}

func TestPlacerOpensSecondCartonWhenFull(t *testing.T) {
	p := newPlacer(
		boxesFrom([3]int{10, 10, 10}, [3]int{10, 10, 10}),
		geometry.NewCuboid(10, 10, 10),
		geometry.ThreeDimension,
	)

	sol := p.decode(orderedChromosome(2))

	require.Equal(t, 2, sol.numBins)
	require.Len(t, sol.placements, 2)
	for _, pl := range sol.placements {
		assert.Equal(t, geometry.Point{}, pl.space.BottomLeft)
	}
	assert.Equal(t, 0, sol.placements[0].binNo)
	assert.Equal(t, 1, sol.placements[1].binNo)
}

func TestPlacerPackingOrderFollowsKeys(t *testing.T) {
	// Two distinguishable items; the order keys are reversed, so the second
	// input item must be placed first.
	p := newPlacer(
		boxesFrom([3]int{2, 2, 2}, [3]int{3, 3, 3}),
		geometry.NewCuboid(10, 10, 10),
		geometry.ThreeDimension,
	)

	sol := p.decode(chromosome{0.9, 0.1, 0, 0})

	require.Len(t, sol.placements, 2)
	assert.Equal(t, 1, sol.placements[0].boxIdx, "item with the lower key packs first")
	assert.Equal(t, 0, sol.placements[1].boxIdx)
}

func TestPlacerOrderTiesBreakByIndex(t *testing.T) {
	p := newPlacer(
		boxesFrom([3]int{2, 2, 2}, [3]int{3, 3, 3}, [3]int{4, 4, 4}),
		geometry.NewCuboid(12, 12, 12),
		geometry.ThreeDimension,
	)

	sol := p.decode(chromosome{0.5, 0.5, 0.5, 0, 0, 0})

	require.Len(t, sol.placements, 3)
	for i, pl := range sol.placements {
		assert.Equal(t, i, pl.boxIdx)
	}
}

func TestOrientedPlacementGeneZeroPicksCanonical(t *testing.T) {
	p := newPlacer(boxesFrom([3]int{2, 3, 5}), geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)
	container := geometry.SpaceAt(geometry.Point{}, p.spec)

	// Orientation gene 0.0 decodes to k = max(1, ceil(0)) = 1, the first
	// fitting orientation, which is the canonical one.
	placed := p.orientedPlacement(chromosome{0, 0}, 0, container)
	assert.Equal(t, 2, placed.Width())
	assert.Equal(t, 3, placed.Depth())
	assert.Equal(t, 5, placed.Height())
}

func TestOrientedPlacementGeneSelectsAcrossRange(t *testing.T) {
	p := newPlacer(boxesFrom([3]int{2, 3, 5}), geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)
	container := geometry.SpaceAt(geometry.Point{}, p.spec)

	// Six orientations fit; a gene just under 1.0 must select the last one
	// and never index out of range.
	placed := p.orientedPlacement(chromosome{0, 0.999999}, 0, container)
	last := geometry.ThreeDimension.Orientations(geometry.NewCuboid(2, 3, 5))[5]
	assert.Equal(t, last, placed.Size())

	// A mid-range gene maps proportionally: gene 0.5 of 6 -> ceil(3) = index 2.
	placed = p.orientedPlacement(chromosome{0, 0.5}, 0, container)
	third := geometry.ThreeDimension.Orientations(geometry.NewCuboid(2, 3, 5))[2]
	assert.Equal(t, third, placed.Size())
}

func TestOrientedPlacementFiltersToContainer(t *testing.T) {
	// The container only admits the orientation with height 2.
	p := newPlacer(boxesFrom([3]int{2, 6, 6}), geometry.NewCuboid(10, 10, 3), geometry.ThreeDimension)
	container := geometry.SpaceAt(geometry.Point{}, geometry.NewCuboid(10, 10, 3))

	placed := p.orientedPlacement(chromosome{0, 0.7}, 0, container)
	assert.Equal(t, 2, placed.Height())
}

func TestPlacerTwoDimensionKeepsUpright(t *testing.T) {
	p := newPlacer(boxesFrom([3]int{3, 5, 7}), geometry.NewCuboid(10, 10, 10), geometry.TwoDimension)

	sol := p.decode(chromosome{0.5, 0.5})

	require.Len(t, sol.placements, 1)
	assert.Equal(t, 7, sol.placements[0].space.Height(), "2D mode must preserve the height axis")
}

func TestPlacerPrunesSpacesTooSmallForRemainingItems(t *testing.T) {
	// After the flat item is placed, the leftover slab is 10x10x6. The only
	// remaining item is a 7-cube, so the slab can never host another item and
	// must be pruned. The minima must come from the remaining items only; the
	// flat item's own 4mm dimension would wrongly keep the slab alive.
	p := newPlacer(
		boxesFrom([3]int{10, 10, 4}, [3]int{7, 7, 7}),
		geometry.NewCuboid(10, 10, 10),
		geometry.ThreeDimension,
	)

	sol := p.decode(chromosome{0.1, 0.9, 0, 0})

	require.Equal(t, 2, sol.numBins, "the cube cannot share the first carton")
	assert.Empty(t, p.bins[0].emptySpaces, "slab below the cube's size must be pruned")
}

func TestPlacerSuffixMinimaExcludeCurrent(t *testing.T) {
	p := newPlacer(
		boxesFrom([3]int{2, 2, 2}, [3]int{5, 5, 5}, [3]int{3, 3, 3}),
		geometry.NewCuboid(20, 20, 20),
		geometry.ThreeDimension,
	)
	p.calculateOrder(orderedChromosome(3))
	p.calculateSuffixMinima()

	// At position 0 (placing the 2-cube) the remaining items are the 5- and
	// 3-cubes: minimum dimension 3, minimum volume 27.
	assert.Equal(t, 3, p.suffixMinDim[1])
	assert.Equal(t, 27, p.suffixMinVol[1])
	// After the last item nothing remains; every remainder is prunable.
	assert.Greater(t, p.suffixMinDim[3], 1<<60)
}

func TestAllocateKeepsOneCopyOfDuplicateRemainders(t *testing.T) {
	// Two identical empty spaces produce pairwise-identical remainder slabs.
	// Exactly one copy of each distinct slab must survive subsumption.
	p := newPlacer(nil, geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)
	full := geometry.SpaceAt(geometry.Point{}, geometry.NewCuboid(10, 10, 10))
	bin := &packBin{
		spec:        geometry.NewCuboid(10, 10, 10),
		farCorner:   geometry.Point{X: 10, Y: 10, Z: 10},
		emptySpaces: []geometry.Space{full, full},
	}

	placed := geometry.SpaceAt(geometry.Point{}, geometry.NewCuboid(5, 5, 5))
	p.allocate(bin, placed, 1, 1)

	require.Len(t, bin.emptySpaces, 3)
	seen := make(map[geometry.Space]bool)
	for _, s := range bin.emptySpaces {
		assert.False(t, seen[s], "duplicate space %+v survived", s)
		seen[s] = true
	}
}

func TestAllocateCornerBoxLeavesThreeSlabs(t *testing.T) {
	// Placing a corner box into the full carton yields three slabs, none of
	// which contains another.
	p := newPlacer(nil, geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)
	bin := &packBin{}
	bin.reset(geometry.NewCuboid(10, 10, 10))

	placed := geometry.SpaceAt(geometry.Point{}, geometry.NewCuboid(4, 4, 4))
	p.allocate(bin, placed, 1, 1)

	require.Len(t, bin.emptySpaces, 3)
	for _, s := range bin.emptySpaces {
		assert.False(t, s.Intersects(placed))
	}
}

func TestPlacerScratchReuseIsClean(t *testing.T) {
	// Back-to-back decodes of different chromosomes on one placer must not
	// leak state between runs.
	p := newPlacer(
		boxesFrom([3]int{5, 5, 5}, [3]int{5, 5, 5}, [3]int{5, 5, 5}, [3]int{5, 5, 5}),
		geometry.NewCuboid(10, 10, 10),
		geometry.ThreeDimension,
	)

	first := p.decode(chromosome{0.1, 0.2, 0.3, 0.4, 0, 0, 0, 0})
	second := p.decode(chromosome{0.4, 0.3, 0.2, 0.1, 0.5, 0.5, 0.5, 0.5})

	for _, sol := range []innerSolution{first, second} {
		assert.Equal(t, 1, sol.numBins, "four 5-cubes fill half of one carton")
		assert.Len(t, sol.placements, 4)
		assert.Equal(t, 500, sol.leastLoad)
	}
}

func TestFindBestSpacePrefersOriginCorner(t *testing.T) {
	// With two free spaces, the placer prefers the one whose placement ends
	// farther from the carton's far corner, which packs toward the origin.
	p := newPlacer(boxesFrom([3]int{2, 2, 2}), geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)
	bin := &packBin{}
	bin.reset(geometry.NewCuboid(10, 10, 10))
	bin.emptySpaces = []geometry.Space{
		geometry.NewSpace(geometry.Point{X: 6, Y: 6, Z: 6}, geometry.Point{X: 10, Y: 10, Z: 10}),
		geometry.NewSpace(geometry.Point{}, geometry.Point{X: 4, Y: 4, Z: 4}),
	}

	best := p.findBestSpace(bin, geometry.NewCuboid(2, 2, 2))
	assert.Equal(t, 1, best)
}

func TestFindBestSpaceReturnsMinusOneWhenNothingFits(t *testing.T) {
	p := newPlacer(boxesFrom([3]int{9, 9, 9}), geometry.NewCuboid(10, 10, 10), geometry.ThreeDimension)
	bin := &packBin{}
	bin.reset(geometry.NewCuboid(10, 10, 10))
	bin.emptySpaces = []geometry.Space{
		geometry.NewSpace(geometry.Point{}, geometry.Point{X: 4, Y: 4, Z: 4}),
	}

	assert.Equal(t, -1, p.findBestSpace(bin, geometry.NewCuboid(9, 9, 9)))
}
