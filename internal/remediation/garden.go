package remediation

// GardenStatus is the freshness stage of a topic record. Failures step
// a topic down the ladder one stage at a time; the lowest stage absorbs
// further failures without change.
type GardenStatus string

const (
	GardenFresh    GardenStatus = "fresh"
	GardenWilted   GardenStatus = "wilted"
	GardenSeedling GardenStatus = "seedling"
)

// UnstableTag marks a topic implicated in a non-process failure.
const UnstableTag = "unstable"

// StepDown returns the next-lower garden stage and whether a transition
// happened. Unknown statuses (including "") pass through untouched:
// only topic records that carry a garden status participate.
func StepDown(s GardenStatus) (GardenStatus, bool) {
	switch s {
	case GardenFresh:
		return GardenWilted, true
	case GardenWilted:
		return GardenSeedling, true
	default:
		return s, false
	}
}

// AddTag appends tag to tags if absent, reporting whether it was added.
func AddTag(tags []string, tag string) ([]string, bool) {
	for _, t := range tags {
		if t == tag {
			return tags, false
		}
	}
	return append(tags, tag), true
}
