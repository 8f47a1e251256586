// Package linreg fits price as a linear function of mileage by batch
// gradient descent and answers single-point price predictions from the
// fitted model.
//
// The repository is organised like a small scikit-learn style library with
// two commands on top:
//
//   - linear: the model price = theta0 + theta1*mileage, the
//     GradientDescent trainer and the Predictor
//   - preprocessing: StandardScaler (population standard deviation)
//   - metrics: precision, MSE, RMSE, MAE and R²
//   - dataset: the "km,price" CSV sample file
//   - core/model: the two-scalar model file and shared interfaces
//   - app: train and predict workflows, observers, operator messages
//   - visualize, history: optional observers (PNG plot, SQLite run history)
//   - config: YAML configuration
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//   - cmd/train, cmd/predict, cmd/history: the command line tools
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/linreg/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(2, 1, []float64{0, 100})
//	    y := mat.NewDense(2, 1, []float64{10, 20})
//
//	    gd := linear.NewGradientDescent()
//	    if err := gd.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p := linear.NewPredictor(gd.Params())
//	    fmt.Println(p.PredictPrice(50)) // ~15
//	}
//
// # Command line
//
//	train data.csv            # writes .model, prints precision
//	predict                   # prompts "mileage: ", prints price
//	train -plot fit.png -history runs.db data.csv
//	history runs.db
//
// # Error handling
//
// Failures are classified with sentinels in pkg/errors and matched with
// errors.Is; one error may carry more than one class, e.g. an empty sample
// matches both ErrEmptySample and ErrInvalidTrainingData. app.Describe maps
// them to the operator messages printed by the commands.
package linreg
