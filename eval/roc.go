package eval

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/SiegfriedLudwig/is-constructs/table"
)

// Evaluate scores a symmetric similarity table against a same-shape binary
// identity table. Both are flattened to their strict upper triangles
// (matching labeling assumed) before the ROC curve and AUC are computed.
func Evaluate(sim, gold *table.Table) (fpr, tpr []float64, auc float64, err error) {
	if sim.Len() != gold.Len() {
		return nil, nil, 0, fmt.Errorf("eval: similarity table is %d ids, gold is %d", sim.Len(), gold.Len())
	}
	fpr, tpr, auc = EvaluateFlat(sim.TriuFlat(), gold.TriuFlat())
	return fpr, tpr, auc, nil
}

// EvaluateFlat computes the ROC curve and AUC for already flattened score
// and binary label vectors. The identity label is ground truth and the
// similarity value the predicted score. A label vector holding a single
// class yields whatever the underlying ROC computation defines (a NaN
// curve side and NaN AUC), not an error.
func EvaluateFlat(scores, labels []float64) (fpr, tpr []float64, auc float64) {
	y := make([]float64, len(scores))
	copy(y, scores)
	classes := make([]bool, len(labels))
	for i, l := range labels {
		classes[i] = l != 0
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ = stat.ROC(nil, y, classes, nil)
	auc = integrate.Trapezoidal(fpr, tpr)
	return fpr, tpr, auc
}
