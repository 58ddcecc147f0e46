/*
Package evaluation provides metrics to compare the labels predicted by a tree
with the expected ones.
*/
package evaluation

import (
	"fmt"
)

func checkLengths(expected, predicted []bool) {
	if len(expected) != len(predicted) {
		panic(fmt.Sprintf("evaluation: %d expected labels but %d predicted", len(expected), len(predicted)))
	}
}

func confusion(expected, predicted []bool) (tp, fp, fn, tn int) {
	checkLengths(expected, predicted)
	for i, e := range expected {
		switch {
		case e && predicted[i]:
			tp++
		case !e && predicted[i]:
			fp++
		case e && !predicted[i]:
			fn++
		default:
			tn++
		}
	}
	return
}

/*
PrecisionRecall takes aligned slices of expected and predicted labels and
returns the precision and recall of the predictions. Both are 0 when there are
no true positives. It panics if the slices differ in length.
*/
func PrecisionRecall(expected, predicted []bool) (precision, recall float64) {
	tp, fp, fn, _ := confusion(expected, predicted)
	return precisionRecall(tp, fp, fn)
}

func precisionRecall(tp, fp, fn int) (float64, float64) {
	if tp == 0 {
		return 0, 0
	}
	return float64(tp) / float64(tp+fp), float64(tp) / float64(tp+fn)
}

/*
F1 takes aligned slices of expected and predicted labels and returns the
harmonic mean of the precision and recall of the predictions, 0 when both are
0. It panics if the slices differ in length.
*/
func F1(expected, predicted []bool) float64 {
	return f1(PrecisionRecall(expected, predicted))
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

/*
Report summarizes the comparison of a set of predictions with the expected
labels.
*/
type Report struct {
	Count          int
	Correct        int
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int
	Precision      float64
	Recall         float64
	F1             float64
}

/*
NewReport takes aligned slices of expected and predicted labels and returns
their Report. It panics if the slices differ in length.
*/
func NewReport(expected, predicted []bool) *Report {
	r := &Report{Count: len(expected)}
	r.TruePositives, r.FalsePositives, r.FalseNegatives, r.TrueNegatives = confusion(expected, predicted)
	r.Correct = r.TruePositives + r.TrueNegatives
	r.Precision, r.Recall = precisionRecall(r.TruePositives, r.FalsePositives, r.FalseNegatives)
	r.F1 = f1(r.Precision, r.Recall)
	return r
}

// Accuracy returns the share of correct predictions, 0 for an empty report
func (r *Report) Accuracy() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Count)
}

func (r *Report) String() string {
	return fmt.Sprintf("%d/%d correct (accuracy %.4f), precision %.4f, recall %.4f, F1 %.4f",
		r.Correct, r.Count, r.Accuracy(), r.Precision, r.Recall, r.F1)
}
