package artifacts

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Model produces a point estimate from one scaled feature vector.
type Model interface {
	Predict(x []float64) float64
	Width() int
}

// LinearModel is a fitted linear regression: coefficients · x + intercept.
type LinearModel struct {
	coef      *mat.VecDense
	intercept float64
}

func NewLinearModel(coefficients []float64, intercept float64) (*LinearModel, error) {
	if len(coefficients) == 0 {
		return nil, errors.New("linear model has no coefficients")
	}
	coef := make([]float64, len(coefficients))
	copy(coef, coefficients)
	return &LinearModel{
		coef:      mat.NewVecDense(len(coef), coef),
		intercept: intercept,
	}, nil
}

func (m *LinearModel) Width() int { return m.coef.Len() }

// Predict panics when len(x) does not match the model width.
func (m *LinearModel) Predict(x []float64) float64 {
	if len(x) != m.coef.Len() {
		panic(fmt.Sprintf("artifacts: model expects %d features, got %d", m.coef.Len(), len(x)))
	}
	return mat.Dot(m.coef, mat.NewVecDense(len(x), x)) + m.intercept
}
