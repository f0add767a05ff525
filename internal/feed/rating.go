package feed

type StarRating struct {
	Stars int    `json:"stars"`
	Label string `json:"label"`
}

const MaxStars = 5

// ratingSteps is ordered by descending threshold.
var ratingSteps = []struct {
	min    int64
	rating StarRating
}{
	{250, StarRating{Stars: MaxStars, Label: "Legendary"}},
	{100, StarRating{Stars: 4, Label: "Hot"}},
	{50, StarRating{Stars: 3, Label: "Trending"}},
	{25, StarRating{Stars: 2, Label: "Popular"}},
	{10, StarRating{Stars: 1, Label: "Rising"}},
}

var unrated = StarRating{Stars: 0, Label: "New"}

func ComputeStarRating(likes int64) StarRating {
	for _, step := range ratingSteps {
		if likes >= step.min {
			return step.rating
		}
	}
	return unrated
}

// Milestone reports whether going from prev to next likes is a single newly
// added like that crosses a star threshold. Unlikes and unchanged counts are
// never milestones.
func Milestone(prev, next int64) (StarRating, bool) {
	if next != prev+1 {
		return StarRating{}, false
	}
	reached := ComputeStarRating(next)
	if reached.Stars <= ComputeStarRating(prev).Stars {
		return StarRating{}, false
	}
	return reached, true
}
