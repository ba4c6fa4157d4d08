// Package river provides online machine learning for Go: models and feature
// transformers that learn from one observation at a time instead of a fixed
// training set.
//
// Everything in the library consumes and produces feature records, maps from
// feature name to value. Records flow through pipelines built from
// stages: transformers that rewrite records, and a terminal estimator that
// predicts from them.
//
// # Quick Start
//
// A pipeline that scales its input and fits a linear model online:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/Bantey17/river/compose"
//	    "github.com/Bantey17/river/core/feature"
//	    "github.com/Bantey17/river/linear"
//	    "github.com/Bantey17/river/preprocessing"
//	)
//
//	func main() {
//	    model, err := compose.NewPipeline(
//	        preprocessing.NewStandardScalerDefault(),
//	        linear.NewLinearRegression(),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x := feature.Record{"ordered": feature.Num(3), "distance": feature.Num(2.5)}
//
//	    yPred, err := model.PredictOne(x)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.LearnOne(x, 42.0); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("Prediction:", yPred)
//	}
//
// Calling PredictOne and then LearnOne once per observation is the intended
// usage; the pipeline guarantees each stage's state advances exactly once per
// observation regardless of how many transformers it contains.
//
// # Packages
//
//   - core/feature: the Record type and feature values
//   - core/model: stage capability interfaces and shared estimator state
//   - compose: pipelines, transformer unions, and trace-based debugging
//   - stats: incremental univariate and bivariate statistics
//   - featx: streaming feature extraction (grouped and target aggregates)
//   - preprocessing: online scalers
//   - linear: linear models trained by online gradient descent
//   - metrics: incrementally updated evaluation metrics
//   - stream: sample iterators over slices and channels
//   - evaluate: progressive validation
//   - drift: concept drift detection (DDM, ADWIN)
//   - cluster: online k-means clustering
//
// # License
//
// river is released under the MIT License.
package river
