package linearmodel

import (
	"fmt"

	mat_ "github.com/aouyang1/go-linreg/mat"

	"gonum.org/v1/gonum/mat"
)

// fitNormal projects y onto the column space of the design matrix X = [1 | x] by solving the normal
// equations β = (XᵀX)⁻¹Xᵀy where β[0] is the intercept and β[1] is the slope.
func fitNormal(x, y []float64) (float64, float64, error) {
	design, err := mat_.NewDesignMatrix(x)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to build design matrix, %w", err)
	}
	target := mat.NewVecDense(len(y), y)

	var gram mat.Dense
	gram.Mul(design.T(), design)

	// gonum reports both exactly singular and ill-conditioned matrices through the returned error
	var gramInv mat.Dense
	if err := gramInv.Inverse(&gram); err != nil {
		return 0, 0, fmt.Errorf("unable to invert XᵀX, %v, %w", err, ErrSingularFit)
	}

	var moment mat.VecDense
	moment.MulVec(design.T(), target)

	var beta mat.VecDense
	beta.MulVec(&gramInv, &moment)
	return beta.AtVec(1), beta.AtVec(0), nil
}
