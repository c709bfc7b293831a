package domain

import "time"

// StudentRecord is one enrolled student. Records are created and
// deleted, never updated in place.
type StudentRecord struct {
	ID        int64
	Name      string
	Email     string
	Course    string
	DateAdded time.Time
}

// CourseCount is one entry of the per-course aggregation. Labels and
// values stay index-paired downstream, so order is preserved as a slice
// rather than a map.
type CourseCount struct {
	Course string
	Count  int
}

// Stats is the aggregate view read atomically from the store, so Total
// always equals the sum of the per-course counts.
type Stats struct {
	Total   int
	Courses []CourseCount
}
