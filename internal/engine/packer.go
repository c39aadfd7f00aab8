// Package engine implements the 3D carton packing optimizer: a biased
// random-key genetic algorithm whose chromosomes are decoded into concrete
// packings by an empty-maximal-subspace placer.
package engine

import (
	"math"
	"time"

	"github.com/piwi3910/BinStack/internal/geometry"
	"github.com/piwi3910/BinStack/internal/model"
)

// decoder turns chromosomes into scored packings for one solve. Each
// evaluation worker gets its own decoder so placer scratch is never shared.
type decoder struct {
	placer       *placer
	cartonVolume int
}

func newDecoder(boxes []innerBox, spec geometry.Cuboid, rotation geometry.RotationMode) *decoder {
	return &decoder{
		placer:       newPlacer(boxes, spec, rotation),
		cartonVolume: spec.Volume(),
	}
}

func (d *decoder) decode(ch chromosome) innerSolution {
	return d.placer.decode(ch)
}

// fitnessOf scores a solution; lower is better. The carton count dominates,
// and the least-loaded carton's fill fraction breaks ties in favor of
// solutions that keep one carton nearly empty. A NaN fitness is a programming
// error and panics.
func (d *decoder) fitnessOf(sol innerSolution) float64 {
	fitness := float64(sol.numBins) + float64(sol.leastLoad)/float64(d.cartonVolume)
	if math.IsNaN(fitness) {
		panic("engine: NaN fitness; carton volume must be positive")
	}
	return fitness
}

// Pack assigns every item to a carton position and orientation, minimizing
// the number of cartons used. Items are expanded by quantity; the returned
// result has one entry per opened carton, in opening order.
func Pack(settings model.PackSettings, carton model.Carton, items []model.Item) (model.PackResult, error) {
	if err := model.ValidateInput(carton, items, settings.BoxRotation); err != nil {
		return model.PackResult{}, err
	}

	expanded := expandItems(items)
	boxes := make([]innerBox, len(expanded))
	for i, it := range expanded {
		boxes[i] = newInnerBox(it.Cuboid())
	}
	spec := carton.Cuboid()

	seed := settings.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := newSolver(
		gaParamsFor(settings, len(expanded)),
		generator{length: 2 * len(expanded)},
		func() *decoder { return newDecoder(boxes, spec, settings.BoxRotation) },
		seed,
		settings.Workers,
	)
	solution := s.solve()

	bins := make([]model.BinResult, solution.numBins)
	for i := range bins {
		bins[i] = model.BinResult{Carton: carton}
	}
	for _, p := range solution.placements {
		bins[p.binNo].Placements = append(bins[p.binNo].Placements, model.Placement{
			Item:  expanded[p.boxIdx],
			Space: p.space,
		})
	}
	return model.PackResult{Bins: bins}, nil
}

// gaParamsFor translates the user-facing factor and percentages into absolute
// population counts. Elite and mutant counts are clamped so that at least one
// elite exists and at least one slot remains for offspring.
func gaParamsFor(settings model.PackSettings, numItems int) gaParams {
	populationSize := settings.PopulationFactor * numItems
	if populationSize < 3 {
		populationSize = 3
	}
	numElites := int(settings.ElitesPercentage * float64(populationSize))
	if numElites < 1 {
		numElites = 1
	}
	if numElites > populationSize-1 {
		numElites = populationSize - 1
	}
	numMutants := int(settings.MutantsPercentage * float64(populationSize))
	if numElites+numMutants > populationSize-1 {
		numMutants = populationSize - 1 - numElites
		if numMutants < 0 {
			numMutants = 0
		}
	}
	return gaParams{
		populationSize:              populationSize,
		numElites:                   numElites,
		numMutants:                  numMutants,
		inheritEliteProbability:     settings.InheritEliteProbability,
		maxGenerations:              settings.MaxGenerations,
		maxGenerationsNoImprovement: settings.MaxGenerationsNoImprovement,
	}
}

// expandItems flattens the quantity field: an item with quantity 5 becomes
// five independent single items sharing a label and ID.
func expandItems(items []model.Item) []model.Item {
	var expanded []model.Item
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			cp := it
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}
