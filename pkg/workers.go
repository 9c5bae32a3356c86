package hardware

import "fmt"

// WaferJob carries everything a worker needs to lay out the detectors
// of one wafer slot.
type WaferJob struct {
	Telescope   string
	TubeName    string
	Tube        Tube
	TubeSpacing float64
	WaferName   string
	Wafer       Wafer
	Bands       map[string]Band
	Readout     ReadoutMap
}

type WaferResult struct {
	WaferName string
	Detectors map[string]Detector
	Error     bool
}

func waferWorker(id int, jobs <-chan WaferJob, results chan<- WaferResult) {
	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("worker %d recovered from panic: %v", id, r)
			logger.Error(message)
			results <- WaferResult{Error: true}
		}
	}()

	for job := range jobs {
		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Worker %d simulating wafer %s", id, job.WaferName)
			logger.Info(message, "detectors")
		}
		results <- simWafer(job)
	}
}

func sendWafersToWorkers(jobs chan<- WaferJob, queue []WaferJob) {
	for _, job := range queue {
		jobs <- job
	}
	close(jobs)
}
