package aggregate

import "sort"

// Rankings are the two ranked lists of a run.
type Rankings struct {
	// Study lists the weakest openings first.
	Study []OpeningAggregate `json:"study"`
	// Keep lists the strongest openings first.
	Keep []OpeningAggregate `json:"keep"`
}

// Rank builds the study list (ascending score, at least minStudy games) and
// the keep list (descending score, at least minKeep games). Ties go to more
// games, then the smaller id. Unclassified never appears in either list.
func Rank(aggs []OpeningAggregate, minStudy, minKeep int) Rankings {
	var r Rankings
	for _, a := range aggs {
		if a.OpeningID == Unclassified {
			continue
		}
		if a.Games >= minStudy {
			r.Study = append(r.Study, a)
		}
		if a.Games >= minKeep {
			r.Keep = append(r.Keep, a)
		}
	}
	sort.SliceStable(r.Study, func(i, j int) bool {
		return less(r.Study[i], r.Study[j], r.Study[i].Score < r.Study[j].Score)
	})
	sort.SliceStable(r.Keep, func(i, j int) bool {
		return less(r.Keep[i], r.Keep[j], r.Keep[i].Score > r.Keep[j].Score)
	})
	return r
}

func less(a, b OpeningAggregate, better bool) bool {
	if a.Score != b.Score {
		return better
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	return a.OpeningID < b.OpeningID
}
