package infrastructure

import (
	"ledger/banking/model"
	"ledger/utils"
	"log/slog"
	"sync"
)

type CommandExecutor interface {
	Execute(workerId int, command model.Command) error
}

// ProcessingStation runs the workers. A worker leaves its loop only when the
// queue is closed and drained.
type ProcessingStation struct {
	readyQueue *utils.BoundedQueue[model.Command]
	executor   CommandExecutor

	processingSlotsCount int
	runId                string

	wg sync.WaitGroup
}

func NewProcessingStation(readyQueue *utils.BoundedQueue[model.Command], executor CommandExecutor, processingSlotsCount int, runId string) *ProcessingStation {
	return &ProcessingStation{
		readyQueue:           readyQueue,
		executor:             executor,
		processingSlotsCount: processingSlotsCount,
		runId:                runId,
	}
}

func (ps *ProcessingStation) Start() {
	for i := 0; i < ps.processingSlotsCount; i++ {
		ps.wg.Add(1)
		go func(workerId int) {
			defer ps.wg.Done()
			ps.processSlot(workerId)
		}(i)
	}
}

func (ps *ProcessingStation) Wait() {
	ps.wg.Wait()
}

func (ps *ProcessingStation) processSlot(workerId int) {
	processed := 0
	for {
		command, ok := ps.readyQueue.Pop()
		if !ok {
			break
		}
		_ = ps.executor.Execute(workerId, command)
		processed++
	}
	slog.Debug("Worker drained the queue",
		slog.String("run_id", ps.runId),
		slog.Int("worker", workerId),
		slog.Int("processed", processed))
}
