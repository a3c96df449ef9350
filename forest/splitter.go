package forest

// splitResult describes the best split found for a node.
type splitResult struct {
	varID    int
	value    float64
	decrease float64
}

// splitter finds the best (variable, threshold) pair for a node under the
// Gini criterion. The class-count and threshold buffers are reused across
// nodes of a tree, so a splitter must not be shared between trees.
type splitter struct {
	data       *Dataset
	classIDs   []int
	numClasses int

	countsLeft  []int
	countsRight []int
	valueBuf    []float64
}

func newSplitter(data *Dataset, classIDs []int, numClasses int) *splitter {
	return &splitter{
		data:        data,
		classIDs:    classIDs,
		numClasses:  numClasses,
		countsLeft:  make([]int, numClasses),
		countsRight: make([]int, numClasses),
	}
}

// findBestSplit evaluates every candidate variable and threshold for the
// node's samples and returns the split maximizing
//
//	sum_k(leftCounts[k]^2)/nLeft + sum_k(rightCounts[k]^2)/nRight
//
// which is monotone in the Gini impurity decrease. The first-seen candidate
// wins on ties. ok is false when no threshold produces two non-empty
// children, in which case the node must become a leaf.
func (sp *splitter) findBestSplit(samples []int, candidates []int) (best splitResult, ok bool) {
	bestDecrease := -1.0
	bestVarID := 0
	bestValue := 0.0

	for _, varID := range candidates {
		sp.valueBuf = sp.data.UniqueValues(sp.valueBuf[:0], samples, varID)

		// All equal for this variable, try the next one.
		if len(sp.valueBuf) < 2 {
			continue
		}

		for _, splitValue := range sp.valueBuf {
			nLeft := 0
			nRight := 0
			for i := 0; i < sp.numClasses; i++ {
				sp.countsLeft[i] = 0
				sp.countsRight[i] = 0
			}

			for _, sampleID := range samples {
				classID := sp.classIDs[sampleID]
				if sp.data.Get(sampleID, varID) <= splitValue {
					nLeft++
					sp.countsLeft[classID]++
				} else {
					nRight++
					sp.countsRight[classID]++
				}
			}

			if nLeft == 0 || nRight == 0 {
				continue
			}

			sumLeft := 0.0
			sumRight := 0.0
			for i := 0; i < sp.numClasses; i++ {
				sumLeft += float64(sp.countsLeft[i] * sp.countsLeft[i])
				sumRight += float64(sp.countsRight[i] * sp.countsRight[i])
			}

			decrease := sumLeft/float64(nLeft) + sumRight/float64(nRight)
			if decrease > bestDecrease {
				bestValue = splitValue
				bestVarID = varID
				bestDecrease = decrease
			}
		}
	}

	if bestDecrease < 0 {
		return splitResult{}, false
	}
	return splitResult{varID: bestVarID, value: bestValue, decrease: bestDecrease}, true
}

// countClasses tallies the class distribution of the given samples into
// counts, which must have numClasses entries and is zeroed first.
func (sp *splitter) countClasses(counts []int, samples []int) {
	for i := range counts {
		counts[i] = 0
	}
	for _, sampleID := range samples {
		counts[sp.classIDs[sampleID]]++
	}
}
