// Package scibonus provides add-on estimators and transformers for
// scikit-learn-style machine learning in Go.
//
// The library complements a Fit/Predict/Transform toolkit built on
// gonum/mat with components that the core toolkit does not ship:
//
//   - meta: ExplainableBoostingMetaRegressor, an additive model
//     f(x) = mean(y) + Σ_j g_j(x_j) where every g_j is a learned
//     one-dimensional curve on a fixed grid, boosted round-robin from
//     any pluggable 1-D base regressor
//   - tree: a depth-limited 1-D regression tree, the default base
//     regressor for the meta estimator
//   - isotonic: weighted isotonic regression, for building models that
//     are monotone in chosen features while staying explainable
//   - timeseries: feature engineering over a time-indexed table
//     (calendar features, cyclical encoding, date indicators, power
//     trends, generalized Gaussian smoothing of event indicators)
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scibonus/meta"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//
//	    ebm := meta.NewExplainableBoostingMetaRegressor()
//	    if err := ebm.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := ebm.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(pred))
//	}
//
// # Packages
//
//   - meta: boosted additive meta regressor
//   - tree, isotonic, linear: 1-D base regressors
//   - timeseries: time-indexed feature engineering transforms
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - core/model: estimator base type and interfaces
//   - pkg/errors, pkg/log: structured errors and logging
package scibonus
