package jobs

// Job is one unit of recurring background work.
type Job interface {
	Process()
}
