package renderer

import (
	"image"
	"math/rand"
	"runtime"
	"sync"
)

// bandHeight is the number of image rows per worker task. Small enough
// to balance load, large enough to keep channel traffic negligible.
const bandHeight = 16

// BandTask represents one horizontal image band for a worker to render
type BandTask struct {
	Bounds image.Rectangle
	Seed   int64
}

// BandResult contains the statistics from rendering one band
type BandResult struct {
	Stats RenderStats
}

// WorkerPool renders non-overlapping image bands in parallel. Workers
// write into a shared image; bands never overlap, so the only
// synchronization is the task and result channels.
type WorkerPool struct {
	raytracer   *Raytracer
	img         *image.RGBA
	taskQueue   chan BandTask
	resultQueue chan BandResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of
// workers (0 means one per CPU)
func NewWorkerPool(rt *Raytracer, img *image.RGBA, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	maxBands := (rt.height + bandHeight - 1) / bandHeight

	return &WorkerPool{
		raytracer:   rt,
		img:         img,
		taskQueue:   make(chan BandTask, maxBands),
		resultQueue: make(chan BandResult, maxBands),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop signals that no more tasks will arrive and waits for the workers
// to drain the queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// run is the main worker loop. Each task carries its own seed, so the
// output is independent of worker count and scheduling.
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		random := rand.New(rand.NewSource(task.Seed))
		stats := wp.raytracer.RenderBounds(task.Bounds, wp.img, random)
		wp.resultQueue <- BandResult{Stats: stats}
	}
}

// RenderParallel renders a full-frame pass across numWorkers goroutines
// (0 means one per CPU). Band seeds derive from the raytracer's base
// seed and the band index, so two runs with the same seed produce
// identical images regardless of worker count.
func (rt *Raytracer) RenderParallel(numWorkers int) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	pool := NewWorkerPool(rt, img, numWorkers)
	pool.Start()

	bands := 0
	for y := 0; y < rt.height; y += bandHeight {
		yEnd := min(y+bandHeight, rt.height)
		pool.SubmitTask(BandTask{
			Bounds: image.Rect(0, y, rt.width, yEnd),
			Seed:   rt.seed + int64(bands),
		})
		bands++
	}
	pool.Stop()

	stats := RenderStats{}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
	}

	return img, stats
}
