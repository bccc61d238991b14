package game

// PointsPerLevel is the number of eco points needed to advance one level
const PointsPerLevel = 100

// Award applies a point delta to a running total and derives the new level.
// Negative deltas are clamped to zero: points are never spent and levels
// never decrease.
func Award(current, delta int) (points, level int) {
	if current < 0 {
		current = 0
	}
	if delta < 0 {
		delta = 0
	}
	points = current + delta
	return points, LevelFor(points)
}

// LevelFor derives the level for a point total
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// LevelProgress returns how many points have been earned toward the next
// level and how many are needed in total
func LevelProgress(points int) (earned, needed int) {
	if points < 0 {
		points = 0
	}
	return points % PointsPerLevel, PointsPerLevel
}
