package spheres

import (
	"context"
	"fmt"

	"github.com/hupe1980/annot3d/archive"
	"github.com/hupe1980/annot3d/blobstore"
	"github.com/hupe1980/annot3d/scene"
)

// Spheres is a value snapshot of a sphere annotation set: parallel centers
// and radii, one entry per sphere.
type Spheres struct {
	centers [][]float64
	radii   []float64
}

// NewSpheres creates a sphere set. Centers must be rectangular, radii must
// be non-negative and match the number of centers.
func NewSpheres(centers [][]float64, radii []float64) (*Spheres, error) {
	if len(centers) != len(radii) {
		return nil, fmt.Errorf("spheres: %d centers but %d radii", len(centers), len(radii))
	}
	if len(centers) > 0 {
		cols := len(centers[0])
		for i, row := range centers {
			if len(row) != cols {
				return nil, fmt.Errorf("spheres: center %d has %d coordinates, want %d", i, len(row), cols)
			}
		}
	}
	for i, r := range radii {
		if r < 0 {
			return nil, fmt.Errorf("spheres: radius %d is negative: %v", i, r)
		}
	}
	return &Spheres{
		centers: copyRows(centers),
		radii:   append([]float64(nil), radii...),
	}, nil
}

// Len returns the number of spheres.
func (s *Spheres) Len() int { return len(s.centers) }

// Centers returns a copy of the center array.
func (s *Spheres) Centers() [][]float64 { return copyRows(s.centers) }

// Radii returns a copy of the radius array.
func (s *Spheres) Radii() []float64 { return append([]float64(nil), s.radii...) }

// ToArchive writes the sphere set as the named archive. Centers go into
// the data array; radii travel as an attribute.
func (s *Spheres) ToArchive(ctx context.Context, store blobstore.BlobStore, name string, opts ...archive.Option) error {
	arr := &archive.Array{
		Data: s.Centers(),
		Attrs: map[string]any{
			archive.TypeAttr:  archive.TypeSpheres,
			archive.RadiiAttr: s.Radii(),
		},
	}
	return archive.Save(ctx, store, name, arr, opts...)
}

// FromArchive reads a sphere set from the named archive.
func FromArchive(ctx context.Context, store blobstore.BlobStore, name string, opts ...archive.Option) (*Spheres, error) {
	arr, err := archive.Load(ctx, store, name, opts...)
	if err != nil {
		return nil, err
	}
	if err := arr.ValidateType(archive.TypeSpheres); err != nil {
		return nil, err
	}
	radii, ok := archive.FloatsAttr(arr.Attrs, archive.RadiiAttr)
	if !ok {
		return nil, &archive.ErrFormat{Name: name, Issue: "missing radii attribute"}
	}
	return NewSpheres(arr.Data, radii)
}

// FromLayer reads a sphere set from a point layer's centers and radius
// column.
func FromLayer(layer scene.PointLayer) (*Spheres, error) {
	centers := layer.Data()
	radii, ok := layer.Floats(RadiusColumn)
	if !ok {
		radii = make([]float64, len(centers))
		for i := range radii {
			radii[i] = DefaultRadius
		}
	}
	return NewSpheres(centers, radii)
}

// AsLayer materializes the sphere set as a new in-memory point layer with
// ids numbered from 1 in insertion order, carrying the sphere annotation
// type tag.
func (s *Spheres) AsLayer(name string, ndim int) *scene.MemoryPointLayer {
	if len(s.centers) > 0 {
		ndim = len(s.centers[0])
	}
	layer := scene.NewMemoryPointLayer(name, ndim)
	layer.Metadata()[archive.TypeAttr] = archive.TypeSpheres
	layer.SetData(s.centers)

	ids := make([]int64, len(s.centers))
	for i := range ids {
		ids[i] = int64(i) + 1
	}
	layer.SetInts(SphereIDColumn, ids)
	layer.SetFloats(RadiusColumn, s.radii)
	return layer
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		r := make([]float64, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}
