package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/aws/aws-lambda-go/lambda"
	"ledger/banking/model"
	"ledger/config"
	"ledger/worker/infrastructure"
	"strings"
)

type LedgerRunInput struct {
	Workers         int    `json:"workers"`
	Loaders         int    `json:"loaders"`
	QueueCapacity   int    `json:"queueCapacity"`
	InitialAccounts *int   `json:"initialAccounts"`
	Ledger          string `json:"ledger"`
}

type LedgerRunOutput struct {
	RunId     string                 `json:"runId"`
	Lines     []string               `json:"lines"`
	Accounts  []model.AccountBalance `json:"accounts"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
}

func handler(_ context.Context, evt json.RawMessage) (LedgerRunOutput, error) {
	input := &LedgerRunInput{}
	err := json.Unmarshal(evt, input)
	if err != nil {
		return LedgerRunOutput{}, err
	}

	if input.Workers <= 0 {
		return LedgerRunOutput{}, errors.New("cannot have a non positive number of workers")
	}

	params := buildRunParameters(input)
	if !config.IsRunParametersValid(params) {
		return LedgerRunOutput{}, errors.New("run parameters are not valid")
	}

	var sink bytes.Buffer
	worker, err := infrastructure.BuildNewWorker(params, strings.NewReader(input.Ledger), &sink)
	if err != nil {
		return LedgerRunOutput{}, err
	}

	report, err := worker.Run()
	if err != nil {
		return LedgerRunOutput{}, err
	}

	return LedgerRunOutput{
		RunId:     report.RunId,
		Lines:     strings.Split(strings.TrimSuffix(sink.String(), "\n"), "\n"),
		Accounts:  report.Accounts,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	}, nil
}

func buildRunParameters(input *LedgerRunInput) *config.RunParameters {
	params := config.NewRunParameters(input.Workers)
	params.Loaders = input.Loaders
	params.QueueCapacity = input.QueueCapacity
	if input.InitialAccounts != nil {
		params.InitialAccounts = *input.InitialAccounts
	}
	params.ApplyDefaults()
	return params
}

func main() {
	lambda.Start(handler)
}
