package infrastructure

import (
	"fmt"
	"github.com/google/uuid"
	"io"
	"ledger/banking/db"
	"ledger/banking/model"
	"ledger/banking/services"
	"ledger/config"
	"ledger/utils"
	"ledger/worker/domain"
	"log/slog"
	"time"
)

// Worker is one processing run: loaders feed a bounded queue, workers drain
// it into the banking service, and Run returns once all of them are done.
type Worker struct {
	runId string

	reader         *domain.LedgerReader
	readyQueue     *utils.BoundedQueue[model.Command]
	bankingService *services.BankingService

	loadersCount int
	workersCount int
}

type RunReport struct {
	RunId           string                 `json:"runId"`
	InitialAccounts []model.AccountBalance `json:"initialAccounts"`
	Accounts        []model.AccountBalance `json:"accounts"`
	LedgerEntries   int                    `json:"ledgerEntries"`
	Succeeded       int                    `json:"succeeded"`
	Failed          int                    `json:"failed"`
}

func NewWorker(runId string, reader *domain.LedgerReader, readyQueue *utils.BoundedQueue[model.Command], bankingService *services.BankingService, loadersCount int, workersCount int) *Worker {
	return &Worker{runId: runId, reader: reader, readyQueue: readyQueue, bankingService: bankingService, loadersCount: loadersCount, workersCount: workersCount}
}

// BuildNewWorker wires a run over source with report lines written to sink,
// starting from params.InitialAccounts open, empty accounts.
func BuildNewWorker(params *config.RunParameters, source io.Reader, sink io.Writer) (*Worker, error) {
	if !config.IsRunParametersValid(params) {
		return nil, fmt.Errorf("worker parameters are not valid: %w", params.Validate())
	}

	accounts := db.NewAccountMemDaoWithOpenAccounts(params.InitialAccounts)
	recorder := services.NewOutcomeRecorder(sink)
	bankingService := services.NewBankingService(accounts, recorder)

	return NewWorker(
		uuid.NewString(),
		domain.NewLedgerReader(source),
		utils.NewBoundedQueue[model.Command](params.QueueCapacity),
		bankingService,
		params.Loaders,
		params.Workers,
	), nil
}

func (w *Worker) GetRunId() string {
	return w.runId
}

func (w *Worker) Run() (RunReport, error) {
	startTime := time.Now()
	slog.Info("Ledger run started",
		slog.String("run_id", w.runId),
		slog.Int("loaders", w.loadersCount),
		slog.Int("workers", w.workersCount),
		slog.Int("queue_capacity", w.readyQueue.Capacity()))

	report := RunReport{RunId: w.runId}
	report.InitialAccounts = w.bankingService.ReportAccounts()

	loadingStation := NewLoadingStation(w.reader, w.readyQueue, w.loadersCount, w.runId)
	processingStation := NewProcessingStation(w.readyQueue, w.bankingService, w.workersCount, w.runId)

	loadingStation.Start()
	processingStation.Start()

	loadingStation.Wait()
	processingStation.Wait()

	report.Accounts = w.bankingService.ReportAccounts()
	report.LedgerEntries = w.reader.ReadCount()
	report.Succeeded, report.Failed = w.bankingService.Counts()

	slog.Info("Ledger run completed",
		slog.String("run_id", w.runId),
		slog.Int("entries", report.LedgerEntries),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Duration("elapsed", time.Since(startTime)))

	if err := w.reader.Err(); err != nil {
		return report, fmt.Errorf("read ledger: %w", err)
	}
	return report, nil
}
