// Package log defines standard attribute keys for online learning operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in river. Using these standard keys enables better
// log analysis, monitoring, and debugging of incremental learning workflows.
//
// The attributes are organized into categories:
//   - Stage and Operation Context
//   - Record and Feature Characteristics
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "stage.name",
// "stream.samples") to enable structured log analysis and filtering.

package log

// Stage and Operation Context
// These attributes identify the pipeline stage and the operation being performed.
const (
	// StageNameKey identifies the pipeline stage type.
	// Examples: "StandardScaler", "TargetAgg", "LinearRegression"
	StageNameKey = "stage.name"

	// PipelineKey provides a human-readable identifier for a pipeline instance.
	// Examples: "scale|lm", pipeline String() output
	PipelineKey = "pipeline.name"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "predict_one", "learn_one", "transform_one", "debug_one"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "compose", "featx", "preprocessing", "evaluate"
	ComponentKey = "ml.component"
)

// Record and Feature Characteristics
// These attributes describe the observations flowing through a pipeline.
const (
	// SamplesKey indicates the number of observations processed so far.
	SamplesKey = "stream.samples"

	// FeaturesKey indicates the number of features in the current record.
	FeaturesKey = "record.features"

	// GroupKeyKey carries the composite group key used by aggregation stages.
	GroupKeyKey = "record.group_key"

	// TargetKey carries the ground-truth value of the current observation.
	TargetKey = "record.target"

	// PredictionKey carries the prediction emitted for the current observation.
	PredictionKey = "record.prediction"
)

// Performance Metrics
// These attributes capture timing and evaluation information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// ThroughputKey records observations processed per second.
	ThroughputKey = "perf.samples_per_second"

	// MetricNameKey identifies the evaluation metric being reported.
	// Examples: "MAE", "RMSE", "R2"
	MetricNameKey = "metrics.name"

	// MetricValueKey records the current value of the evaluation metric.
	MetricValueKey = "metrics.value"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ConfigurationError", "CapabilityError", "InputShapeError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// FeatureNameKey identifies the feature that caused an input error.
	FeatureNameKey = "error.feature"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard pipeline operations
	OperationPredictOne   = "predict_one"
	OperationLearnOne     = "learn_one"
	OperationTransformOne = "transform_one"
	OperationDebugOne     = "debug_one"

	// Standard components
	ComponentCompose       = "compose"
	ComponentFeatx         = "featx"
	ComponentPreprocessing = "preprocessing"
	ComponentLinear        = "linear"
	ComponentEvaluate      = "evaluate"
)
