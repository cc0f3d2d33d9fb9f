package crawl

import "github.com/citegraph/citegraph/internal/paper"

// frontierItem is one queued paper with its BFS depth.
type frontierItem struct {
	p     paper.Paper
	depth int
}

// frontier is the crawl-run-local BFS state: a FIFO queue plus the visited
// set. It is owned by the single goroutine driving the BFS and carries no
// locking; workers never touch it.
type frontier struct {
	queue   []frontierItem
	queued  map[string]bool
	visited map[string]bool
}

func newFrontier() *frontier {
	return &frontier{
		queued:  make(map[string]bool),
		visited: make(map[string]bool),
	}
}

// enqueue appends a paper unless it is already queued or visited.
func (f *frontier) enqueue(p paper.Paper, depth int) {
	if f.queued[p.ID] || f.visited[p.ID] {
		return
	}
	f.queue = append(f.queue, frontierItem{p: p, depth: depth})
	f.queued[p.ID] = true
}

// dequeue pops the next item in FIFO order.
func (f *frontier) dequeue() (frontierItem, bool) {
	if len(f.queue) == 0 {
		return frontierItem{}, false
	}
	item := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, item.p.ID)
	return item, true
}

// seen reports whether the paper has already been visited.
func (f *frontier) seen(id string) bool {
	return f.visited[id]
}

// markVisited records a paper as visited. Called at dequeue time, before
// expansion, so re-discovered papers are connected but never re-enqueued.
func (f *frontier) markVisited(id string) {
	f.visited[id] = true
}
