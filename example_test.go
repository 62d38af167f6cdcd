package annot3d_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/annot3d/annotator/points"
	"github.com/hupe1980/annot3d/annotator/spheres"
	"github.com/hupe1980/annot3d/blobstore"
	"github.com/hupe1980/annot3d/geometry"
	"github.com/hupe1980/annot3d/scene"
)

func Example() {
	viewer := scene.NewMemoryViewer(3)
	plane := scene.NewMemoryPlaneLayer("volume",
		geometry.NewBoundingBox([]float64{0, 0, 0}, []float64{32, 32, 32}),
		geometry.Plane{
			Point:  geometry.Vec3{X: 14, Y: 14, Z: 14},
			Normal: geometry.Vec3{X: 1},
		})
	layer := scene.NewMemoryPointLayer("points", 3)
	viewer.AddLayer(plane)
	viewer.AddLayer(layer)

	ann := points.NewAnnotator(viewer, points.WithLayers(plane, layer))
	ann.SetEnabled(true)

	// An Alt+click whose cursor ray hits the slicing plane becomes a point.
	viewer.Click(viewer.MouseEvent([]float64{0, 14, 14}, []float64{1, 0, 0}, scene.ModAlt))

	fmt.Println(ann.DataModel().Len())
	// Output: 1
}

func Example_spheres() {
	viewer := scene.NewMemoryViewer(3)
	plane := scene.NewMemoryPlaneLayer("volume",
		geometry.NewBoundingBox([]float64{0, 0, 0}, []float64{32, 32, 32}),
		geometry.Plane{
			Point:  geometry.Vec3{X: 14, Y: 14, Z: 14},
			Normal: geometry.Vec3{X: 1},
		})
	viewer.AddLayer(plane)

	ann := spheres.NewAnnotator(viewer, spheres.WithLayers(plane, nil, nil))
	ann.SetEnabled(true)

	// First click places a sphere and switches to edit mode.
	viewer.Click(viewer.MouseEvent([]float64{0, 14, 14}, []float64{1, 0, 0}, scene.ModAlt))

	fmt.Println(ann.Mode(), ann.PointLayer().Len())
	// Output: edit 1
}

func Example_persistence() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	model := points.NewModel()
	if err := model.SetData([][]float64{{14, 14, 14}, {1, 2, 3}}); err != nil {
		log.Fatal(err)
	}
	if err := model.ToArchive(ctx, store, "run-042"); err != nil {
		log.Fatal(err)
	}

	restored := points.NewModel()
	if err := restored.FromArchive(ctx, store, "run-042"); err != nil {
		log.Fatal(err)
	}

	fmt.Println(restored.Len())
	// Output: 2
}
