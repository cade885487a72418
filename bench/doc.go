// Package bench times pipelines and farms on a CPU-bound Fibonacci workload.
//
// MeasureFarm pushes batches through a single farm, doubling the batch size
// each round, and records how long each batch takes. MeasurePipeline builds
// an alternating chain of workers and farms and times one pass over a fixed
// batch.
package bench
