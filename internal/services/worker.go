package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Codeversity-bois/JD-parser/internal/models"
	"github.com/Codeversity-bois/JD-parser/internal/repositories"
)

// Worker executes queued evaluation runs in the background. Concurrent runs
// for different jobs are fine: the pipeline only reads shared state.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

type worker struct {
	runRepo     repositories.RunRepository
	pipeline    Pipeline
	runQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	runRepo repositories.RunRepository,
	pipeline Pipeline,
	concurrency int,
) Worker {
	return &worker{
		runRepo:     runRepo,
		pipeline:    pipeline,
		runQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingRuns(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.runQueue <- runID:
		log.Printf("📥 Run %s enqueued\n", runID)
	case <-w.stopChan:
		log.Printf("⚠️ Worker stopped, cannot enqueue run %s\n", runID)
	}
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case runID := <-w.runQueue:
			log.Printf("👷 Worker #%d processing run %s\n", workerID, runID)
			if err := w.executeRun(ctx, runID); err != nil {
				log.Printf("❌ Worker #%d failed run %s: %v\n", workerID, runID, err)
			} else {
				log.Printf("✅ Worker #%d completed run %s\n", workerID, runID)
			}
		}
	}
}

func (w *worker) executeRun(ctx context.Context, runID uuid.UUID) error {
	if err := w.runRepo.UpdateStatus(runID, models.StatusProcessing); err != nil {
		return err
	}

	run, err := w.runRepo.FindByID(runID)
	if err != nil {
		w.runRepo.UpdateError(runID, err.Error())
		return err
	}

	report, err := w.pipeline.Run(ctx, run.JobID)
	if err != nil {
		// Run-level failure: no partial report is stored.
		w.runRepo.UpdateError(runID, err.Error())
		return err
	}

	return w.runRepo.UpdateReport(runID, report)
}

func (w *worker) pollPendingRuns(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending runs poller stopped")
			return
		case <-ticker.C:
			pending, err := w.runRepo.FindPendingRuns(10)
			if err != nil {
				log.Printf("⚠️ Failed to fetch pending runs: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending runs\n", len(pending))
			}

			for _, run := range pending {
				w.EnqueueRun(run.ID)
			}
		}
	}
}
