package renderer

import (
	"runtime"
	"sync"
)

// parallelRowThreshold is the minimum row count to fan out to workers.
// Below this, shading inline is faster than the channel round trip.
const parallelRowThreshold = 32

// rowChunk is a half-open range of image rows for one worker.
type rowChunk struct {
	start, end int
}

// rowPool shades image rows on persistent worker goroutines. Workers only
// read the uploaded uniforms and write disjoint rows, so no locking is needed
// beyond the dispatch barrier.
type rowPool struct {
	numWorkers int
	shade      func(start, end int)

	workChan chan rowChunk  // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool
}

// newRowPool creates a pool of n workers (GOMAXPROCS when n <= 0) that call
// shade for every dispatched chunk.
func newRowPool(n int, shade func(start, end int)) *rowPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &rowPool{numWorkers: n, shade: shade}
}

func (p *rowPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *rowPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *rowPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.shade(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run shades rows [0, rows) and returns once every row is done.
func (p *rowPool) run(rows int) {
	if rows <= 0 {
		return
	}
	if rows < parallelRowThreshold || p.numWorkers == 1 {
		p.shade(0, rows)
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (rows + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, rows)
		if start >= end {
			continue
		}
		p.workChan <- rowChunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
