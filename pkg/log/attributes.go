// Standard attribute keys for training and prediction logs. Keys follow a
// hierarchical "group.name" convention so log queries can filter by group.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator, e.g. "GradientDescent".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or tool emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "training", "inference", "preprocessing".
	PhaseKey = "ml.phase"

	// RunIDKey identifies one training run across log lines and history rows.
	RunIDKey = "run.id"
)

// Data shape and sources.
const (
	SamplesKey = "data.samples"
	PathKey    = "data.path"
	ColumnKey  = "data.column"
)

// Training progress and results.
const (
	DurationMsKey = "perf.duration_ms"
	IterationKey  = "training.iteration"
	GradientKey   = "training.gradient"
	Theta0Key     = "model.theta0"
	Theta1Key     = "model.theta1"
	PrecisionKey  = "metrics.precision"
	R2ScoreKey    = "metrics.r2_score"
	MSEKey        = "metrics.mse"
	MileageKey    = "input.mileage"
	PriceKey      = "output.price"
)

// Hyperparameters.
const (
	LearningRateKey = "hyperparams.learning_rate"
	ToleranceKey    = "hyperparams.tolerance"
	MaxIterKey      = "hyperparams.max_iterations"
	WarmStartKey    = "hyperparams.warm_start"
)

// Error context.
const (
	// ErrorTypeKey categorizes the failure, e.g. "DivergedGradient".
	ErrorTypeKey = "error.type"

	// SuggestionKey carries an operator-facing hint.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
