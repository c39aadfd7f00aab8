package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/BinStack/internal/geometry"
)

// chromosome is a candidate solution: 2N keys in [0,1). The first N order the
// items (ascending key = packed earlier), the last N select an orientation
// per item at placement time.
type chromosome []float64

// innerBox is an item prepared for placement, with its smallest dimension and
// volume precomputed for the empty-space pruning filter.
type innerBox struct {
	rect        geometry.Cuboid
	smallestDim int
	volume      int
}

func newInnerBox(rect geometry.Cuboid) innerBox {
	return innerBox{
		rect:        rect,
		smallestDim: min(rect.Width, rect.Depth, rect.Height),
		volume:      rect.Volume(),
	}
}

// innerPlacement records where one item ended up: the occupied space, the
// carton it went into, and the item's index in the expanded input list.
type innerPlacement struct {
	space  geometry.Space
	binNo  int
	boxIdx int
}

// innerSolution is the decoded form of a chromosome.
type innerSolution struct {
	numBins    int
	leastLoad  int
	placements []innerPlacement
}

// packBin is one open carton during decoding: its empty maximal subspaces and
// the volume packed so far.
type packBin struct {
	spec        geometry.Cuboid
	farCorner   geometry.Point
	emptySpaces []geometry.Space
	usedVolume  int
}

func (b *packBin) reset(spec geometry.Cuboid) {
	b.spec = spec
	b.farCorner = geometry.Point{X: spec.Width, Y: spec.Height, Z: spec.Depth}
	b.emptySpaces = append(b.emptySpaces[:0], geometry.SpaceAt(geometry.Point{}, spec))
	b.usedVolume = 0
}

// orderKey pairs an item index with its packing-sequence gene.
type orderKey struct {
	boxIdx int
	key    float64
}

// placer decodes chromosomes into concrete packings. It is created once per
// worker and keeps its scratch buffers across decodes, since a decode runs
// many times per solve. The placements slice of each returned solution is
// allocated fresh.
type placer struct {
	boxes    []innerBox
	spec     geometry.Cuboid
	rotation geometry.RotationMode

	// scratch, reused across decodes
	order        []orderKey
	suffixMinDim []int
	suffixMinVol []int
	bins         []packBin
	orient       []geometry.Cuboid
	intersecting []int
	candidates   []geometry.Space
}

func newPlacer(boxes []innerBox, spec geometry.Cuboid, rotation geometry.RotationMode) *placer {
	return &placer{
		boxes:    boxes,
		spec:     spec,
		rotation: rotation,
	}
}

// decode places every item following the chromosome's packing order and
// orientation genes, opening cartons first-fit as needed.
func (p *placer) decode(ch chromosome) innerSolution {
	n := len(p.boxes)
	p.calculateOrder(ch)
	p.calculateSuffixMinima()

	numBins := 0
	placements := make([]innerPlacement, 0, n)

	for pos, ord := range p.order {
		box := &p.boxes[ord.boxIdx]

		fitBin, fitSpace := -1, -1
		for bi := 0; bi < numBins; bi++ {
			if si := p.findBestSpace(&p.bins[bi], box.rect); si >= 0 {
				fitBin, fitSpace = bi, si
				break
			}
		}
		if fitBin < 0 {
			numBins++
			if len(p.bins) < numBins {
				p.bins = append(p.bins, packBin{})
			}
			p.bins[numBins-1].reset(p.spec)
			fitBin, fitSpace = numBins-1, 0
		}

		bin := &p.bins[fitBin]
		placed := p.orientedPlacement(ch, ord.boxIdx, bin.emptySpaces[fitSpace])

		// The pruning filter describes what future items still need, so the
		// minima exclude the item being placed right now.
		p.allocate(bin, placed, p.suffixMinDim[pos+1], p.suffixMinVol[pos+1])
		bin.usedVolume += box.volume

		placements = append(placements, innerPlacement{space: placed, binNo: fitBin, boxIdx: ord.boxIdx})
	}

	leastLoad := math.MaxInt
	for bi := 0; bi < numBins; bi++ {
		leastLoad = min(leastLoad, p.bins[bi].usedVolume)
	}
	if numBins == 0 {
		leastLoad = 0
	}

	return innerSolution{numBins: numBins, leastLoad: leastLoad, placements: placements}
}

// calculateOrder sorts item indices by their packing-sequence genes,
// ascending, ties broken by item index.
func (p *placer) calculateOrder(ch chromosome) {
	p.order = p.order[:0]
	for i := range p.boxes {
		p.order = append(p.order, orderKey{boxIdx: i, key: ch[i]})
	}
	sort.Slice(p.order, func(a, b int) bool {
		if p.order[a].key != p.order[b].key {
			return p.order[a].key < p.order[b].key
		}
		return p.order[a].boxIdx < p.order[b].boxIdx
	})
}

// calculateSuffixMinima fills suffixMinDim/suffixMinVol so that entry i holds
// the minima over the items at order positions i.. (entry n is the empty
// suffix: MaxInt, which prunes every remainder after the last placement).
func (p *placer) calculateSuffixMinima() {
	n := len(p.order)
	if cap(p.suffixMinDim) < n+1 {
		p.suffixMinDim = make([]int, n+1)
		p.suffixMinVol = make([]int, n+1)
	}
	p.suffixMinDim = p.suffixMinDim[:n+1]
	p.suffixMinVol = p.suffixMinVol[:n+1]

	p.suffixMinDim[n] = math.MaxInt
	p.suffixMinVol[n] = math.MaxInt
	for i := n - 1; i >= 0; i-- {
		box := &p.boxes[p.order[i].boxIdx]
		p.suffixMinDim[i] = min(p.suffixMinDim[i+1], box.smallestDim)
		p.suffixMinVol[i] = min(p.suffixMinVol[i+1], box.volume)
	}
}

// findBestSpace returns the index of the empty space that can host the item
// in some admissible orientation and maximizes the squared distance between
// the carton's far corner and the placed box's upper-right corner, or -1 if
// no space fits. Ties keep the earlier space.
func (p *placer) findBestSpace(bin *packBin, rect geometry.Cuboid) int {
	p.orient = p.rotation.AppendOrientations(p.orient[:0], rect)

	maxDist := -1
	best := -1
	for i, ems := range bin.emptySpaces {
		for _, o := range p.orient {
			if !o.FitsIn(ems) {
				continue
			}
			upperRight := geometry.SpaceAt(ems.Origin(), o).UpperRight
			if dist := bin.farCorner.Distance2From(upperRight); dist > maxDist {
				maxDist = dist
				best = i
			}
		}
	}
	return best
}

// orientedPlacement decodes the item's orientation gene against the chosen
// container and returns the occupied space. The gene indexes the fitting
// orientations via k = max(1, ceil(gene*len)); a gene of exactly zero
// therefore falls back to the first (canonical) fitting orientation.
func (p *placer) orientedPlacement(ch chromosome, boxIdx int, container geometry.Space) geometry.Space {
	gene := ch[len(ch)/2+boxIdx]

	p.orient = p.rotation.AppendOrientations(p.orient[:0], p.boxes[boxIdx].rect)
	fitting := p.orient[:0]
	for _, o := range p.orient {
		if o.FitsIn(container) {
			fitting = append(fitting, o)
		}
	}

	k := int(math.Ceil(gene * float64(len(fitting))))
	if k < 1 {
		k = 1
	}
	return geometry.SpaceAt(container.Origin(), fitting[k-1])
}

// allocate carves the placed space out of the carton's empty-space list.
// Every intersecting empty space is replaced by its six-way difference
// remainders; remainders too small for any future item (by the given minima)
// are pruned, and remainders contained in another new remainder are dropped.
func (p *placer) allocate(bin *packBin, placed geometry.Space, minDim, minVol int) {
	p.intersecting = p.intersecting[:0]
	for i, ems := range bin.emptySpaces {
		if ems.Intersects(placed) {
			p.intersecting = append(p.intersecting, i)
		}
	}

	keep := func(s geometry.Space) bool {
		return s.MinExtent() >= minDim && s.Volume() >= minVol
	}
	p.candidates = p.candidates[:0]
	for _, i := range p.intersecting {
		ems := bin.emptySpaces[i]
		p.candidates = ems.AppendDifference(p.candidates, ems.Intersect(placed), keep)
	}

	// Swap-remove the consumed spaces, highest index first so the collected
	// indices stay valid.
	for j := len(p.intersecting) - 1; j >= 0; j-- {
		i := p.intersecting[j]
		last := len(bin.emptySpaces) - 1
		bin.emptySpaces[i] = bin.emptySpaces[last]
		bin.emptySpaces = bin.emptySpaces[:last]
	}

	// Subsumption pass over the new remainders. A candidate strictly inside
	// another is redundant; of identical duplicates only the first survives.
	for i, c := range p.candidates {
		dominated := false
		for j, other := range p.candidates {
			if i == j || !other.Contains(c) {
				continue
			}
			if !c.Contains(other) || j < i {
				dominated = true
				break
			}
		}
		if !dominated {
			bin.emptySpaces = append(bin.emptySpaces, c)
		}
	}
}
