package services

// SelectDiverse converts a descending-sorted candidate list into a bounded,
// category-diverse top-N: one pass admitting candidates while their primary
// category is under ceil(N/2), then a backfill pass in score order when the
// first pass came up short. The output size is always min(N, len(items)).
func SelectDiverse(items []*RankedCandidate, n int) []*RankedCandidate {
	if n <= 0 || len(items) == 0 {
		return nil
	}

	perCategoryCap := (n + 1) / 2

	counts := make(map[string]int)
	admitted := make(map[*RankedCandidate]struct{})
	out := make([]*RankedCandidate, 0, n)

	for _, item := range items {
		if len(out) == n {
			break
		}
		cat := item.Candidate.PrimaryCategory()
		if counts[cat] >= perCategoryCap {
			continue
		}
		counts[cat]++
		admitted[item] = struct{}{}
		out = append(out, item)
	}

	// Backfill with the next-highest-scored leftovers regardless of
	// category, preserving score order.
	if len(out) < n {
		for _, item := range items {
			if len(out) == n {
				break
			}
			if _, ok := admitted[item]; ok {
				continue
			}
			out = append(out, item)
		}
	}

	return out
}
