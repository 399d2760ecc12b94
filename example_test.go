package nblist_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/nblist"
	"github.com/hupe1980/nblist/blobstore"
)

func ExampleBuild() {
	points := [][]float64{{0, 0, 0}, {0.5, 0, 0}, {9.5, 0, 0}}

	lists, err := nblist.Build(points, 1.0)
	if err != nil {
		panic(err)
	}
	fmt.Println(lists.Lists())
	// Output: [[1] [0] []]
}

func ExampleWithPeriodicLengths() {
	points := [][]float64{{0, 0, 0}, {0.5, 0, 0}, {9.5, 0, 0}}

	lists, err := nblist.Build(points, 1.0, nblist.WithPeriodicLengths([]float64{10, 10, 10}))
	if err != nil {
		panic(err)
	}
	fmt.Println(lists.Lists())
	// Output: [[1 2] [0] [0]]
}

func ExampleBuildBatch() {
	frames := []nblist.Frame{
		{Points: [][]float64{{0}, {1}, {3}}, Cutoff: 1.5},
		{Points: [][]float64{{0}, {2}, {3}}, Cutoff: 1.5},
	}

	results, err := nblist.BuildBatch(context.Background(), frames, nblist.WithWorkers(2))
	if err != nil {
		panic(err)
	}
	for i, r := range results {
		fmt.Println(i, r.Lists())
	}
	// Output:
	// 0 [[1] [0] []]
	// 1 [[] [2] [1]]
}

func ExampleSave() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	lists, _ := nblist.Build([][]float64{{0, 0}, {1, 0}, {0, 1}}, 1.2)
	if err := nblist.Save(ctx, store, "frame-0", lists); err != nil {
		panic(err)
	}

	loaded, err := nblist.Load(ctx, store, "frame-0")
	if err != nil {
		panic(err)
	}
	fmt.Println(loaded.Lists(), loaded.Equal(lists))
	// Output: [[1 2] [0] [0]] true
}
