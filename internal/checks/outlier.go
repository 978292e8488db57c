package checks

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

const (
	defaultScoreThreshold = 0.65
	defaultTreeCount      = 100
	defaultSubsample      = 256
	outlierMinSample      = 10
)

// Outliers scores every entry with an ensemble of randomized partitioning
// trees (isolation style): atypical entries are isolated in few splits, so
// their average path length is short and their anomaly score high. Entries
// scoring at or above score_threshold are flagged MINOR. This is a
// deterministic, explainable heuristic, not a trained model: tree randomness
// is seeded from the snapshot ID, so re-running over the same snapshot
// yields identical findings.
//
// Features per entry: amount, booking delay (days between piece and booking
// dates), time of day, account posting frequency, and the amount's ratio to
// the account's mean amount.
func Outliers(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	threshold := ctx.Params.Float("score_threshold", defaultScoreThreshold)
	trees := ctx.Params.Int("trees", defaultTreeCount)
	subsample := ctx.Params.Int("subsample", defaultSubsample)
	minSample := ctx.Params.Int("min_sample", outlierMinSample)
	if trees < 1 || subsample < 2 {
		return "", nil, fmt.Errorf("invalid forest parameters: trees=%d subsample=%d", trees, subsample)
	}

	features, indices := outlierFeatures(ctx.Snapshot)
	if len(features) < minSample {
		return model.OutcomeInsufficientData, nil, nil
	}
	if subsample > len(features) {
		subsample = len(features)
	}

	forest := growForest(features, trees, subsample, snapshotSeed(ctx.Snapshot.ID()))

	var findings []model.Finding
	for i, f := range features {
		score := forest.score(f)
		if score < threshold {
			continue
		}
		e := ctx.Snapshot.Entry(indices[i])
		findings = append(findings, model.Finding{
			RuleCode: ctx.Rule.Code,
			Severity: model.SeverityMinor,
			Category: ctx.Rule.Category,
			Message: fmt.Sprintf("atypical entry on account %s: %q of %s on %s (anomaly score %.2f)",
				e.Account, e.Label, e.Amount().StringFixed(2), e.Date.Format("2006-01-02"), score),
			Account:    e.Account,
			Suggestion: "review the supporting document: amount or timing is unusual for this account",
		})
	}

	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}

// outlierFeatures builds one feature vector per entry with a non-zero
// amount, returning the vectors and the snapshot index each row came from.
func outlierFeatures(snapshot *model.TrialBalanceSnapshot) ([][]float64, []int) {
	// First pass: per-account counts and mean amounts.
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for i := 0; i < snapshot.Len(); i++ {
		e := snapshot.Entry(i)
		amount := e.Amount().Abs().InexactFloat64()
		if amount == 0 {
			continue
		}
		counts[e.Account]++
		sums[e.Account] += amount
	}

	var features [][]float64
	var indices []int
	for i := 0; i < snapshot.Len(); i++ {
		e := snapshot.Entry(i)
		amount := e.Amount().Abs().InexactFloat64()
		if amount == 0 {
			continue
		}

		delay := e.Date.Sub(e.PieceDate).Hours() / 24
		timeOfDay := float64(e.Date.Hour()) + float64(e.Date.Minute())/60
		freq := float64(counts[e.Account])
		mean := sums[e.Account] / freq
		ratio := 1.0
		if mean > 0 {
			ratio = amount / mean
		}

		features = append(features, []float64{amount, delay, timeOfDay, freq, ratio})
		indices = append(indices, i)
	}
	return features, indices
}

func snapshotSeed(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}

// isoNode is one node of a partitioning tree. Leaves keep the size of the
// subset they ended with, for the standard path-length adjustment.
type isoNode struct {
	dim         int
	split       float64
	left, right *isoNode
	size        int
}

type isoForest struct {
	trees     []*isoNode
	subsample int
}

func growForest(features [][]float64, trees, subsample int, seed int64) *isoForest {
	rng := rand.New(rand.NewSource(seed))
	maxDepth := int(math.Ceil(math.Log2(float64(subsample))))

	f := &isoForest{subsample: subsample}
	for t := 0; t < trees; t++ {
		sample := make([][]float64, subsample)
		for i := range sample {
			sample[i] = features[rng.Intn(len(features))]
		}
		f.trees = append(f.trees, growTree(sample, 0, maxDepth, rng))
	}
	return f
}

func growTree(subset [][]float64, depth, maxDepth int, rng *rand.Rand) *isoNode {
	if depth >= maxDepth || len(subset) <= 1 {
		return &isoNode{size: len(subset)}
	}

	dim := rng.Intn(len(subset[0]))
	lo, hi := subset[0][dim], subset[0][dim]
	for _, row := range subset[1:] {
		if row[dim] < lo {
			lo = row[dim]
		}
		if row[dim] > hi {
			hi = row[dim]
		}
	}
	if lo == hi {
		return &isoNode{size: len(subset)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right [][]float64
	for _, row := range subset {
		if row[dim] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: len(subset)}
	}

	return &isoNode{
		dim:   dim,
		split: split,
		left:  growTree(left, depth+1, maxDepth, rng),
		right: growTree(right, depth+1, maxDepth, rng),
	}
}

// score returns the anomaly score 2^(-E(h)/c(n)) in (0,1): near 1 means the
// point isolates quickly.
func (f *isoForest) score(row []float64) float64 {
	total := 0.0
	for _, tree := range f.trees {
		total += pathLength(tree, row, 0)
	}
	avg := total / float64(len(f.trees))
	return math.Pow(2, -avg/avgPathLength(f.subsample))
}

func pathLength(node *isoNode, row []float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if row[node.dim] < node.split {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// avgPathLength is c(n), the expected path length of an unsuccessful BST
// search over n points.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}
