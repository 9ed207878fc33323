// Package neighbors finds the side adjacency of a triangulation given only its cell to vertex
// connectivity. For every cell k and local side j it finds the cell across that side, EToE[k][j],
// and the local side of that cell facing back, EToF[k][j]. Boundary sides hold -1.
//
// Discovery runs as a wave. Starting from a seed cell, the sides of every cell on the current
// wavefront are compared against the sides of every cell the wave has not yet passed, and the
// cells matched become the next wavefront. No global side table is built.
package neighbors

import (
	"fmt"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/meshneighbors/types"
	"github.com/notargets/meshneighbors/utils"
)

// Boundary marks a side with no neighbor
const Boundary = -1

// RandomSeed as FinderConfig.Seed starts the wave at a randomly chosen cell
const RandomSeed = -1

// minBucketSize is the fewest unchecked cells worth a goroutine of their own
const minBucketSize = 256

type FinderConfig struct {
	Seed             int  // Cell the first wave starts from, RandomSeed picks one
	ParallelDegree   int  // Number of buckets the unchecked cells are split into for comparison
	RequireConnected bool // Fail instead of reseeding when the wave can not reach every cell
	Logger           *zap.Logger
}

func DefaultFinderConfig() *FinderConfig {
	return &FinderConfig{
		Seed:           0,
		ParallelDegree: runtime.NumCPU(),
		Logger:         zap.NewNop(),
	}
}

type Finder struct {
	config *FinderConfig
	log    *zap.Logger
}

func NewFinder(config *FinderConfig) (f *Finder) {
	if config == nil {
		config = DefaultFinderConfig()
	}
	f = &Finder{
		config: config,
		log:    config.Logger,
	}
	if f.log == nil {
		f.log = zap.NewNop()
	}
	return
}

// FindNeighbors runs a Finder with the default configuration
func FindNeighbors(EToV [][types.NFaces]int) (c *Connectivity, err error) {
	return NewFinder(nil).Find(EToV)
}

// match records that side P of cell E and side Q of cell O hold the same vertices
type match struct {
	E, P, O, Q int
}

// wavefront holds the state of one Find call, all buffers are indexed by cell and reused
// from wave to wave
type wavefront struct {
	keys      [][types.NFaces]types.EdgeKey
	visited   cellSet // Cells that have been, or are queued to be, on the wavefront
	edge      utils.Index
	nextEdge  utils.Index
	remaining utils.Index // Cells not yet visited, in increasing order
	matches   [][]match   // One buffer per bucket, the last one for frontier against frontier
}

// Find computes the side adjacency of the cells in EToV, which must be 0-indexed. EToV is
// not modified.
func (f *Finder) Find(EToV [][types.NFaces]int) (c *Connectivity, err error) {
	var (
		K        = len(EToV)
		seed     = f.config.Seed
		nChecked int
	)
	c = NewConnectivity(K)
	if K == 0 {
		return
	}
	switch {
	case seed == RandomSeed:
		seed = rand.Intn(K)
	case seed < 0 || seed >= K:
		return nil, errors.Errorf("seed cell %d is outside of the mesh, which has %d cells", seed, K)
	}
	w := f.newWavefront(EToV)
	w.edge = append(w.edge, seed)
	w.visited.add(seed)
	c.Components = 1
	for {
		c.Waves++
		nChecked += len(w.edge)
		f.log.Info("checked cells",
			zap.Int("wave", c.Waves),
			zap.Int("checked", nChecked),
			zap.Int("total", K),
			zap.String("percent", fmt.Sprintf("%.2f%%", 100*float64(nChecked)/float64(K))))
		w.compactRemaining()
		if err = f.compare(w); err != nil {
			return nil, err
		}
		if err = w.apply(c); err != nil {
			return nil, err
		}
		// The last wavefront still has to be compared against itself
		if nChecked == K {
			break
		}
		w.edge, w.nextEdge = w.nextEdge, w.edge[:0]
		if len(w.edge) == 0 {
			// The wave died out with cells left over, start again in the next component
			unreached := w.firstUnvisited()
			if f.config.RequireConnected {
				return nil, &DisconnectedError{Seed: seed, Reached: nChecked, Total: K, Unreached: unreached}
			}
			f.log.Debug("reseeding wave", zap.Int("cell", unreached), zap.Int("component", c.Components+1))
			c.Components++
			w.edge = append(w.edge, unreached)
			w.visited.add(unreached)
		}
	}
	if c.Components > 1 {
		f.log.Warn("mesh is disconnected, each component was resolved from its own seed",
			zap.Int("components", c.Components))
	}
	return
}

func (f *Finder) newWavefront(EToV [][types.NFaces]int) (w *wavefront) {
	var (
		K = len(EToV)
	)
	w = &wavefront{
		keys:      make([][types.NFaces]types.EdgeKey, K),
		visited:   newCellSet(K),
		edge:      make(utils.Index, 0, 64),
		nextEdge:  make(utils.Index, 0, 64),
		remaining: utils.NewRange(0, K-1),
		matches:   make([][]match, f.parallelDegree()+1),
	}
	// Sorting each side's vertex pair makes side (a,b) and side (b,a) compare equal
	for k, verts := range EToV {
		w.keys[k] = types.CellSideKeys(verts)
	}
	return
}

func (f *Finder) parallelDegree() int {
	if f.config.ParallelDegree < 1 {
		return 1
	}
	return f.config.ParallelDegree
}

// compare finds every side shared between the wavefront and the unchecked cells, and between
// two wavefront cells. Cells on the same wavefront are both checked at the end of the wave, so
// they would never meet again. The unchecked cells are split into buckets compared concurrently,
// each bucket writes only to its own match buffer.
func (f *Finder) compare(w *wavefront) (err error) {
	var (
		g  errgroup.Group
		np = f.parallelDegree()
	)
	if n := len(w.remaining) / minBucketSize; n < np {
		np = n
	}
	if np < 1 {
		np = 1
	}
	pm := utils.NewPartitionMap(np, len(w.remaining))
	for i := range w.matches {
		w.matches[i] = w.matches[i][:0]
	}
	for bn := 0; bn < np; bn++ {
		bn := bn
		g.Go(func() error {
			kMin, kMax := pm.GetBucketRange(bn)
			w.matches[bn] = w.matchRange(w.remaining[kMin:kMax], w.matches[bn])
			return nil
		})
	}
	last := len(w.matches) - 1
	g.Go(func() error {
		w.matches[last] = w.matchFrontier(w.matches[last])
		return nil
	})
	return g.Wait()
}

// matchRange compares the three sides of every wavefront cell against the three sides of each
// cell in others, the nine side pairings (p,q) are tested for every pair of cells
func (w *wavefront) matchRange(others utils.Index, matches []match) []match {
	for _, o := range others {
		ko := &w.keys[o]
		for _, e := range w.edge {
			ke := &w.keys[e]
			for p := 0; p < types.NFaces; p++ {
				for q := 0; q < types.NFaces; q++ {
					if ke[p] == ko[q] {
						matches = append(matches, match{E: e, P: p, O: o, Q: q})
					}
				}
			}
		}
	}
	return matches
}

// matchFrontier compares each pair of wavefront cells once
func (w *wavefront) matchFrontier(matches []match) []match {
	for i, e := range w.edge {
		ke := &w.keys[e]
		for _, o := range w.edge[i+1:] {
			ko := &w.keys[o]
			for p := 0; p < types.NFaces; p++ {
				for q := 0; q < types.NFaces; q++ {
					if ke[p] == ko[q] {
						matches = append(matches, match{E: e, P: p, O: o, Q: q})
					}
				}
			}
		}
	}
	return matches
}

// apply records the matches of a wave in both directions and queues the newly reached cells,
// frontier pairs go first then the buckets in order, so the outcome does not depend on the
// number of buckets
func (w *wavefront) apply(c *Connectivity) (err error) {
	last := len(w.matches) - 1
	for _, m := range w.matches[last] {
		if err = c.connect(m.E, m.P, m.O, m.Q); err != nil {
			return
		}
	}
	for _, matches := range w.matches[:last] {
		for _, m := range matches {
			if err = c.connect(m.E, m.P, m.O, m.Q); err != nil {
				return
			}
			if !w.visited.has(m.O) {
				w.visited.add(m.O)
				w.nextEdge = append(w.nextEdge, m.O)
			}
		}
	}
	return
}

// compactRemaining drops visited cells from remaining in place, keeping the order
func (w *wavefront) compactRemaining() {
	n := 0
	for _, k := range w.remaining {
		if !w.visited.has(k) {
			w.remaining[n] = k
			n++
		}
	}
	w.remaining = w.remaining[:n]
}

func (w *wavefront) firstUnvisited() int {
	for _, k := range w.remaining {
		if !w.visited.has(k) {
			return k
		}
	}
	panic("no unvisited cell left")
}
