package services

import (
	"fmt"
	"ledger/banking/model"
	"log/slog"
	"math"
)

// BankingService applies ledger commands to the account store. Every
// operation takes exactly the locks it needs, checks and mutates while
// holding them, releases them and only then records its outcome.
type BankingService struct {
	accounts model.AccountStore
	recorder *OutcomeRecorder
}

func NewBankingService(accounts model.AccountStore, recorder *OutcomeRecorder) *BankingService {
	return &BankingService{accounts: accounts, recorder: recorder}
}

func (bs *BankingService) Execute(workerId int, command model.Command) error {
	switch command.Opcode {
	case model.Deposit:
		return bs.Deposit(workerId, command.SequenceId, command.From, command.Amount)
	case model.Withdraw:
		return bs.Withdraw(workerId, command.SequenceId, command.From, command.Amount)
	case model.Transfer:
		return bs.Transfer(workerId, command.SequenceId, command.From, command.To, command.Amount)
	case model.CheckBalance:
		return bs.CheckBalance(workerId, command.SequenceId, command.From)
	case model.Open:
		return bs.OpenAccount(workerId, command.SequenceId, command.From)
	case model.Close:
		return bs.CloseAccount(workerId, command.SequenceId, command.From)
	default:
		bs.report(workerId, command.SequenceId, fmt.Sprintf("unknown opcode %d", int(command.Opcode)), model.ErrUnknownOpcode)
		return model.ErrUnknownOpcode
	}
}

func (bs *BankingService) Deposit(workerId int, ledgerId int, accountId int, amount int) error {
	err := bs.deposit(accountId, amount)
	bs.report(workerId, ledgerId, fmt.Sprintf("deposit $%d into account %d", amount, accountId), err)
	return err
}

func (bs *BankingService) Withdraw(workerId int, ledgerId int, accountId int, amount int) error {
	err := bs.withdraw(accountId, amount)
	bs.report(workerId, ledgerId, fmt.Sprintf("withdraw $%d from account %d", amount, accountId), err)
	return err
}

func (bs *BankingService) Transfer(workerId int, ledgerId int, srcId int, dstId int, amount int) error {
	err := bs.transfer(srcId, dstId, amount)
	bs.report(workerId, ledgerId, fmt.Sprintf("transfer $%d from account %d to account %d", amount, srcId, dstId), err)
	return err
}

func (bs *BankingService) CheckBalance(workerId int, ledgerId int, accountId int) error {
	balance, err := bs.checkBalance(accountId)
	if err != nil {
		bs.report(workerId, ledgerId, fmt.Sprintf("balance of account %d.", accountId), err)
	} else {
		bs.report(workerId, ledgerId, fmt.Sprintf("balance of $%d in account %d.", balance, accountId), nil)
	}
	return err
}

func (bs *BankingService) OpenAccount(workerId int, ledgerId int, accountId int) error {
	err := bs.openAccount(accountId)
	bs.report(workerId, ledgerId, fmt.Sprintf("open account %d.", accountId), err)
	return err
}

func (bs *BankingService) CloseAccount(workerId int, ledgerId int, accountId int) error {
	err := bs.closeAccount(accountId)
	bs.report(workerId, ledgerId, fmt.Sprintf("close account %d.", accountId), err)
	return err
}

// ReportAccounts writes one `ID# <id> | <balance>` line per account in id
// order, followed by the aggregate line, and returns the balances it read.
func (bs *BankingService) ReportAccounts() []model.AccountBalance {
	var balances []model.AccountBalance
	for _, id := range bs.accounts.Ids() {
		account, ok := bs.accounts.Get(id)
		if !ok {
			continue
		}
		var balance int
		account.Read(func(state model.AccountState) {
			balance = state.Balance
		})
		balances = append(balances, model.AccountBalance{Id: id, Balance: balance})
		bs.recorder.WriteLine(fmt.Sprintf("ID# %d | %d", id, balance))
	}
	bs.recorder.WriteSummary()
	return balances
}

func (bs *BankingService) Counts() (succeeded int, failed int) {
	return bs.recorder.Counts()
}

func (bs *BankingService) deposit(accountId int, amount int) error {
	if amount < 0 {
		return model.ErrInvalidAmount
	}
	account, ok := bs.accounts.Get(accountId)
	if !ok {
		return model.ErrAccountNotFound
	}

	var err error
	account.Write(func(state *model.AccountState) {
		if !state.Open {
			err = model.ErrAccountClosed
			return
		}
		if !canCredit(state.Balance, amount) {
			err = model.ErrBalanceOverflow
			return
		}
		state.Balance += amount
	})
	return err
}

func (bs *BankingService) withdraw(accountId int, amount int) error {
	if amount < 0 {
		return model.ErrInvalidAmount
	}
	account, ok := bs.accounts.Get(accountId)
	if !ok {
		return model.ErrAccountNotFound
	}

	var err error
	account.Write(func(state *model.AccountState) {
		if !state.Open {
			err = model.ErrAccountClosed
			return
		}
		if state.Balance < amount {
			err = model.ErrInsufficientFunds
			return
		}
		state.Balance -= amount
	})
	return err
}

func (bs *BankingService) transfer(srcId int, dstId int, amount int) error {
	// the same lock cannot be taken twice
	if srcId == dstId {
		return model.ErrSelfTransfer
	}
	if amount < 0 {
		return model.ErrInvalidAmount
	}
	src, ok := bs.accounts.Get(srcId)
	if !ok {
		return model.ErrAccountNotFound
	}
	dst, ok := bs.accounts.Get(dstId)
	if !ok {
		return model.ErrAccountNotFound
	}

	var err error
	bs.accounts.WriteBoth(src, dst, func(srcState *model.AccountState, dstState *model.AccountState) {
		if !srcState.Open || !dstState.Open {
			err = model.ErrAccountClosed
			return
		}
		if srcState.Balance < amount {
			err = model.ErrInsufficientFunds
			return
		}
		if !canCredit(dstState.Balance, amount) {
			err = model.ErrBalanceOverflow
			return
		}
		srcState.Balance -= amount
		dstState.Balance += amount
	})
	return err
}

func canCredit(balance int, amount int) bool {
	return amount <= math.MaxInt-balance
}

// checkBalance reads the balance even when the account is closed; the
// outcome is still a failure in that case.
func (bs *BankingService) checkBalance(accountId int) (int, error) {
	account, ok := bs.accounts.Get(accountId)
	if !ok {
		return 0, model.ErrAccountNotFound
	}

	var balance int
	var err error
	account.Read(func(state model.AccountState) {
		balance = state.Balance
		if !state.Open {
			err = model.ErrAccountClosed
		}
	})
	return balance, err
}

func (bs *BankingService) openAccount(accountId int) error {
	account, _ := bs.accounts.GetOrCreate(accountId)

	var err error
	account.Write(func(state *model.AccountState) {
		if state.Open {
			err = model.ErrAlreadyOpen
			return
		}
		state.Open = true
	})
	return err
}

func (bs *BankingService) closeAccount(accountId int) error {
	account, ok := bs.accounts.Get(accountId)
	if !ok {
		return model.ErrAccountNotFound
	}

	var err error
	account.Write(func(state *model.AccountState) {
		if !state.Open {
			err = model.ErrAlreadyClosed
			return
		}
		state.Open = false
	})
	return err
}

func (bs *BankingService) report(workerId int, ledgerId int, description string, err error) {
	if err == nil {
		bs.recorder.RecordSuccess(fmt.Sprintf("Worker %d completed ledger %d: %s", workerId, ledgerId, description))
		return
	}
	slog.Debug("Ledger entry rejected",
		slog.Int("worker", workerId),
		slog.Int("ledger", ledgerId),
		slog.Any("reason", err))
	bs.recorder.RecordFailure(fmt.Sprintf("Worker %d failed to complete ledger %d: %s", workerId, ledgerId, description))
}
