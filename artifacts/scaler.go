package artifacts

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Scaler maps an encoded feature vector into the space the model was fit in.
type Scaler interface {
	Transform(x []float64) []float64
	Width() int
}

// StandardScaler standardizes each column as (x - mean) / scale.
type StandardScaler struct {
	mean  *mat.VecDense
	scale *mat.VecDense
}

// NewStandardScaler copies mean and scale. A zero scale entry marks a constant
// training column and is replaced by 1 so the column is only centered.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("scaler has no columns")
	}
	if len(mean) != len(scale) {
		return nil, errors.Errorf("scaler mean has %d columns, scale has %d", len(mean), len(scale))
	}
	m := make([]float64, len(mean))
	copy(m, mean)
	s := make([]float64, len(scale))
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s[i] = v
	}
	return &StandardScaler{
		mean:  mat.NewVecDense(len(m), m),
		scale: mat.NewVecDense(len(s), s),
	}, nil
}

func (s *StandardScaler) Width() int { return s.mean.Len() }

// Transform returns a new vector and leaves x untouched. It panics when len(x)
// does not match the scaler width.
func (s *StandardScaler) Transform(x []float64) []float64 {
	n := s.mean.Len()
	if len(x) != n {
		panic(fmt.Sprintf("artifacts: scaler expects %d features, got %d", n, len(x)))
	}
	out := mat.NewVecDense(n, nil)
	out.SubVec(mat.NewVecDense(n, x), s.mean)
	out.DivElemVec(out, s.scale)
	return out.RawVector().Data
}
