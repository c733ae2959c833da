package mcts

import (
	"math/rand"
	"time"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/pattern"
	"github.com/hafner-go/goigo/internal/playout"
)

// playoutJob is what the coordinator sends to a worker: the tree path
// selected by one descent, the moves to replay onto the worker's board
// clone to reach that leaf, and the number of tree nodes the leaf's
// expansion just added (carried through unchanged so it can be recorded
// alongside the eventual playout result on the same path).
type playoutJob struct {
	path       []*Node
	moves      []board.Move
	nodesAdded uint64
}

// playoutResult is what a worker sends back: either an empty
// self-registration message (path is nil, sent once on startup to hand
// the coordinator its inbox) or a finished playout paired with the job
// data it was given.
type playoutResult struct {
	path       []*Node
	nodesAdded uint64
	result     playout.Result
	inbox      chan playoutJob
}

// WorkerPool is a fixed-size set of stateless playout workers, each
// owning its own RNG and inbound job channel, communicating with the
// coordinator only by message passing: no shared mutable state, no
// tree references held by any worker.
type WorkerPool struct {
	out   chan playoutResult
	halts []chan struct{}
}

// Spin starts n workers, which share b read-only and clone it for every
// job, and returns the pool. Each worker immediately sends an empty registration result
// carrying its inbox so the coordinator can address its first job.
func Spin(n int, b *board.Board, cfg playout.Config, matcher *pattern.Matcher) *WorkerPool {
	if n < 1 {
		n = 1
	}
	pool := &WorkerPool{out: make(chan playoutResult, n)}
	for i := 0; i < n; i++ {
		halt := make(chan struct{})
		pool.halts = append(pool.halts, halt)
		seed := time.Now().UnixNano() ^ int64(i)<<32
		rng := rand.New(rand.NewSource(seed))
		policy := playout.NewPolicy(cfg, matcher, rng)
		go runWorker(b, policy, pool.out, halt)
	}
	return pool
}

func runWorker(b *board.Board, policy *playout.Policy, out chan playoutResult, halt chan struct{}) {
	inbox := make(chan playoutJob, 1)
	out <- playoutResult{inbox: inbox}
	for {
		select {
		case <-halt:
			return
		case job := <-inbox:
			clone := b.Clone()
			for _, m := range job.moves {
				clone.PlayLegalMove(m)
			}
			result := policy.Run(clone)
			out <- playoutResult{
				path:       job.path,
				nodesAdded: job.nodesAdded,
				result:     result,
				inbox:      inbox,
			}
		}
	}
}

// Halt broadcasts shutdown to every worker. A worker in the middle of a
// playout finishes it (playouts are bounded to 3*size^2 plies) before
// noticing the halt and exiting its select loop.
func (p *WorkerPool) Halt() {
	for _, h := range p.halts {
		close(h)
	}
}

// Results is the channel workers deliver registration messages and
// finished playouts on.
func (p *WorkerPool) Results() <-chan playoutResult {
	return p.out
}
