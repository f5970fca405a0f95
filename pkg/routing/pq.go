package routing

// frontierItem pairs a vertex with its search priority: tentative distance
// from the source plus the straight-line estimate to the destination.
type frontierItem struct {
	id   int64
	dist float64
}

// frontier is a min-heap of search candidates. Superseded entries are left
// in place and discarded when popped (lazy deletion), so the same vertex
// may appear more than once.
type frontier []frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}
