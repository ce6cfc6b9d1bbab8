// Package log defines standard attribute keys for machine learning operations.
//
// Using these keys consistently across estimators enables structured log
// analysis and filtering. The keys follow a hierarchical naming convention
// (e.g. "model.name", "data.samples").

package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "ExplainableBoostingMetaRegressor", "GeneralGaussianSmoother"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "meta", "timeseries", "isotonic"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ColumnsKey lists the column names of a frame being transformed.
	ColumnsKey = "data.columns"
)

// Training configuration and progress.
const (
	// RoundsKey indicates the number of boosting rounds.
	RoundsKey = "train.rounds"

	// LearningRateKey records the shrinkage factor of a boosting run.
	LearningRateKey = "train.learning_rate"

	// GridPointsKey records the per-feature grid resolution.
	GridPointsKey = "train.grid_points"
)

// Performance metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
