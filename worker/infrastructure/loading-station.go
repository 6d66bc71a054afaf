package infrastructure

import (
	"ledger/banking/model"
	"ledger/utils"
	"ledger/worker/domain"
	"log/slog"
	"sync"
)

// LoadingStation runs the loaders. Each loader parses one record under the
// reader lock and pushes it after releasing that lock, so a full queue only
// keeps the blocked loader from pushing. The last loader to reach the end of
// the input closes the queue.
type LoadingStation struct {
	reader     *domain.LedgerReader
	readyQueue *utils.BoundedQueue[model.Command]

	loadersCount int
	runId        string

	remainingLoaders int
	lock             sync.Mutex
	wg               sync.WaitGroup
}

func NewLoadingStation(reader *domain.LedgerReader, readyQueue *utils.BoundedQueue[model.Command], loadersCount int, runId string) *LoadingStation {
	return &LoadingStation{reader: reader, readyQueue: readyQueue, loadersCount: loadersCount, runId: runId}
}

func (ls *LoadingStation) Start() {
	ls.remainingLoaders = ls.loadersCount
	for i := 0; i < ls.loadersCount; i++ {
		ls.wg.Add(1)
		go func(loaderId int) {
			defer ls.wg.Done()
			defer ls.loaderDone()
			ls.load(loaderId)
		}(i)
	}
}

func (ls *LoadingStation) Wait() {
	ls.wg.Wait()
}

func (ls *LoadingStation) load(loaderId int) {
	loaded := 0
	for {
		command, ok := ls.reader.Next()
		if !ok {
			break
		}
		if err := ls.readyQueue.Push(command); err != nil {
			slog.Error("Loader could not push ledger entry",
				slog.String("run_id", ls.runId),
				slog.Int("loader", loaderId),
				slog.Int("ledger", command.SequenceId),
				slog.Any("error", err))
			return
		}
		loaded++
	}
	slog.Debug("Loader reached the end of the ledger",
		slog.String("run_id", ls.runId),
		slog.Int("loader", loaderId),
		slog.Int("loaded", loaded))
}

func (ls *LoadingStation) loaderDone() {
	ls.lock.Lock()
	ls.remainingLoaders--
	isLast := ls.remainingLoaders == 0
	ls.lock.Unlock()

	if isLast {
		ls.readyQueue.Close()
	}
}
