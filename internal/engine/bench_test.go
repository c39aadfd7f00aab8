package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/BinStack/internal/geometry"
	"github.com/piwi3910/BinStack/internal/model"
)

func benchSettings() model.PackSettings {
	s := model.DefaultSettings()
	s.RandomSeed = 42
	s.MaxGenerations = 20
	s.MaxGenerationsNoImprovement = 3
	return s
}

func benchItems(n int, maxDim int, seed int64) []model.Item {
	rng := rand.New(rand.NewSource(seed))
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.Item{
			ID:       "bench",
			Label:    "Item",
			Width:    1 + rng.Intn(maxDim),
			Depth:    1 + rng.Intn(maxDim),
			Height:   1 + rng.Intn(maxDim),
			Quantity: 1,
		}
	}
	return items
}

func BenchmarkPackEasy(b *testing.B) {
	carton := model.NewCarton("Carton", 30, 30, 30)
	items := benchItems(12, 15, 1)
	settings := benchSettings()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Pack(settings, carton, items); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPackMedium(b *testing.B) {
	carton := model.NewCarton("Carton", 100, 100, 100)
	items := benchItems(40, 50, 2)
	settings := benchSettings()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Pack(settings, carton, items); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPackMediumParallel(b *testing.B) {
	carton := model.NewCarton("Carton", 100, 100, 100)
	items := benchItems(40, 50, 2)
	settings := benchSettings()
	settings.Workers = 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Pack(settings, carton, items); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeChromosome(b *testing.B) {
	boxes := make([]innerBox, 0, 40)
	for _, it := range benchItems(40, 50, 3) {
		boxes = append(boxes, newInnerBox(it.Cuboid()))
	}
	dec := newDecoder(boxes, model.NewCarton("Carton", 100, 100, 100).Cuboid(), geometry.ThreeDimension)
	rng := rand.New(rand.NewSource(4))
	ch := generator{length: 80}.generate(rng)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dec.decode(ch)
	}
}
