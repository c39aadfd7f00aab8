package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BinStack/internal/geometry"
	"github.com/piwi3910/BinStack/internal/model"
)

func testSolver(t *testing.T, workers int) *solver {
	t.Helper()
	boxes := boxesFrom(
		[3]int{5, 5, 5}, [3]int{5, 5, 5}, [3]int{4, 6, 5},
		[3]int{3, 3, 3}, [3]int{7, 2, 4},
	)
	spec := geometry.NewCuboid(10, 10, 10)
	params := gaParams{
		populationSize:              20,
		numElites:                   4,
		numMutants:                  5,
		inheritEliteProbability:     0.7,
		maxGenerations:              30,
		maxGenerationsNoImprovement: 5,
	}
	return newSolver(
		params,
		generator{length: 2 * len(boxes)},
		func() *decoder { return newDecoder(boxes, spec, geometry.ThreeDimension) },
		12345,
		workers,
	)
}

func TestSolverPopulationSizeStableAcrossGenerations(t *testing.T) {
	s := testSolver(t, 0)
	s.initPopulation()
	require.Len(t, s.population, 20)

	for gen := 0; gen < 5; gen++ {
		s.evolve()
		assert.Len(t, s.population, 20, "generation %d", gen)
	}
}

func TestSolverPopulationSortedAscending(t *testing.T) {
	s := testSolver(t, 0)
	s.initPopulation()
	s.evolve()

	for i := 1; i < len(s.population); i++ {
		assert.LessOrEqual(t, s.population[i-1].fitness, s.population[i].fitness)
	}
}

func TestSolverIncumbentNeverWorsens(t *testing.T) {
	s := testSolver(t, 0)
	s.initPopulation()

	best := s.population[0].fitness
	for gen := 0; gen < 10; gen++ {
		s.evolve()
		assert.LessOrEqual(t, s.population[0].fitness, best,
			"incumbent worsened in generation %d", gen)
		best = s.population[0].fitness
	}
}

func TestSolverChromosomeLengthIsTwiceItemCount(t *testing.T) {
	s := testSolver(t, 0)
	s.initPopulation()
	for _, ind := range s.population {
		assert.Len(t, ind.chromosome, 10)
	}
}

func TestSolverParallelMatchesSerialInvariants(t *testing.T) {
	s := testSolver(t, 4)
	solution := s.solve()

	assert.Len(t, s.population, 20)
	assert.Len(t, solution.placements, 5)
	assert.GreaterOrEqual(t, solution.numBins, 1)

	// Per-task RNG streams differ between execution modes, so only the
	// structural invariants are compared, not the exact packing.
	serial := testSolver(t, 0).solve()
	assert.Len(t, serial.placements, 5)
}

func TestCrossoverFullEliteBiasCopiesElite(t *testing.T) {
	s := testSolver(t, 0)
	s.params.inheritEliteProbability = 1.0
	rng := rand.New(rand.NewSource(1))

	elite := chromosome{0.1, 0.2, 0.3, 0.4}
	nonElite := chromosome{0.9, 0.8, 0.7, 0.6}

	for i := 0; i < 20; i++ {
		offspring := s.crossover(elite, nonElite, rng)
		assert.Equal(t, elite, offspring)
	}
}

func TestCrossoverZeroEliteBiasCopiesNonElite(t *testing.T) {
	// rng.Float64() can return exactly 0, which still inherits from the
	// elite under <=; anything above 0 must come from the non-elite. With a
	// bias of -1 every draw exceeds it, so the offspring is the non-elite.
	s := testSolver(t, 0)
	s.params.inheritEliteProbability = -1
	rng := rand.New(rand.NewSource(1))

	elite := chromosome{0.1, 0.2, 0.3, 0.4}
	nonElite := chromosome{0.9, 0.8, 0.7, 0.6}

	offspring := s.crossover(elite, nonElite, rng)
	assert.Equal(t, nonElite, offspring)
}

func TestCrossoverMixesGenesFromBothParents(t *testing.T) {
	s := testSolver(t, 0)
	s.params.inheritEliteProbability = 0.5
	rng := rand.New(rand.NewSource(7))

	elite := make(chromosome, 64)
	nonElite := make(chromosome, 64)
	for i := range elite {
		elite[i] = 0.0
		nonElite[i] = 1.0
	}

	offspring := s.crossover(elite, nonElite, rng)
	var fromElite, fromNonElite int
	for _, g := range offspring {
		if g == 0.0 {
			fromElite++
		} else {
			fromNonElite++
		}
	}
	assert.Positive(t, fromElite)
	assert.Positive(t, fromNonElite)
}

func TestGeneratorProducesKeysInUnitInterval(t *testing.T) {
	g := generator{length: 100}
	rng := rand.New(rand.NewSource(3))

	ch := g.generate(rng)
	require.Len(t, ch, 100)
	for _, key := range ch {
		assert.GreaterOrEqual(t, key, 0.0)
		assert.Less(t, key, 1.0)
	}
}

func TestGAParamsForTranslatesPercentages(t *testing.T) {
	settings := model.DefaultSettings()
	params := gaParamsFor(settings, 4)

	assert.Equal(t, 120, params.populationSize)
	assert.Equal(t, 12, params.numElites)
	assert.Equal(t, 18, params.numMutants)
	assert.Equal(t, 0.70, params.inheritEliteProbability)
	assert.Equal(t, 200, params.maxGenerations)
	assert.Equal(t, 5, params.maxGenerationsNoImprovement)
}

func TestGAParamsForClampsDegenerateCounts(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PopulationFactor = 1
	settings.ElitesPercentage = 0.0
	settings.MutantsPercentage = 1.0

	params := gaParamsFor(settings, 1)
	assert.GreaterOrEqual(t, params.numElites, 1)
	assert.LessOrEqual(t, params.numElites+params.numMutants, params.populationSize-1)
}

func TestSolverStopsOnStagnation(t *testing.T) {
	// A single item always decodes to the same one-carton solution, so the
	// incumbent can never improve and the solver must stop after the
	// stagnation cap rather than the generation cap.
	boxes := boxesFrom([3]int{5, 5, 5})
	spec := geometry.NewCuboid(10, 10, 10)
	s := newSolver(
		gaParams{
			populationSize:              10,
			numElites:                   2,
			numMutants:                  2,
			inheritEliteProbability:     0.7,
			maxGenerations:              1 << 30,
			maxGenerationsNoImprovement: 3,
		},
		generator{length: 2},
		func() *decoder { return newDecoder(boxes, spec, geometry.ThreeDimension) },
		99,
		0,
	)

	solution := s.solve()
	assert.Equal(t, 1, solution.numBins)
	assert.EqualValues(t, 4, s.batch, "init + three stagnant generations")
}
