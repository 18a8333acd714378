package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/jonasrsv42/blobfig/blob"
)

// FromDense converts a gonum matrix into an owned 2-D f64 array. The
// matrix must be contiguous row-major (stride equal to column count);
// strided views fail with a contiguity error rather than being copied
// into shape here, since compacting is the caller's decision.
func FromDense(m *mat.Dense) (*blob.Array, error) {
	raw := m.RawMatrix()
	if raw.Stride != raw.Cols {
		return nil, &blob.Error{
			Kind:   blob.ErrKindContiguous,
			Msg:    "tensor: matrix is not contiguous row-major",
			Offset: -1,
		}
	}
	return FromSlice([]uint64{uint64(raw.Rows), uint64(raw.Cols)}, raw.Data[:raw.Rows*raw.Cols])
}

// ToDense converts a decoded 2-D f64 array into a gonum matrix. The
// elements are copied, so the matrix outlives the decode buffer.
func ToDense(a *blob.ArrayView) (*mat.Dense, error) {
	// gonum matrices require positive dimensions.
	if len(a.Shape) != 2 || a.Shape[0] == 0 || a.Shape[1] == 0 {
		return nil, &blob.Error{
			Kind:   blob.ErrKindShape,
			Msg:    "tensor: expected a 2-D array with positive dimensions",
			Offset: -1,
		}
	}
	vals, err := Values[float64](a)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(int(a.Shape[0]), int(a.Shape[1]), vals), nil
}

// FromVecDense converts a gonum vector into an owned 1-D f64 array. The
// vector must be densely packed (increment 1).
func FromVecDense(v *mat.VecDense) (*blob.Array, error) {
	raw := v.RawVector()
	if raw.Inc != 1 {
		return nil, &blob.Error{
			Kind:   blob.ErrKindContiguous,
			Msg:    "tensor: vector is not densely packed",
			Offset: -1,
		}
	}
	return FromSlice([]uint64{uint64(raw.N)}, raw.Data[:raw.N])
}

// ToVecDense converts a decoded 1-D f64 array into a gonum vector,
// copying the elements.
func ToVecDense(a *blob.ArrayView) (*mat.VecDense, error) {
	if len(a.Shape) != 1 || a.Shape[0] == 0 {
		return nil, &blob.Error{
			Kind:   blob.ErrKindShape,
			Msg:    "tensor: expected a 1-D array with positive length",
			Offset: -1,
		}
	}
	vals, err := Values[float64](a)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(int(a.Shape[0]), vals), nil
}
