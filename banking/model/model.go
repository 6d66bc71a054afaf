package model

import "fmt"

type Opcode int

const (
	Deposit Opcode = iota
	Withdraw
	Transfer
	CheckBalance
	Open
	Close
)

func (o Opcode) IsValid() bool {
	return o >= Deposit && o <= Close
}

func (o Opcode) String() string {
	switch o {
	case Deposit:
		return "Deposit"
	case Withdraw:
		return "Withdraw"
	case Transfer:
		return "Transfer"
	case CheckBalance:
		return "CheckBalance"
	case Open:
		return "Open"
	case Close:
		return "Close"
	default:
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
}

// Command is one ledger record. To is only meaningful for Transfer.
type Command struct {
	SequenceId int
	Opcode     Opcode
	From       int
	To         int
	Amount     int
}

func NewCommand(sequenceId int, opcode Opcode, from int, to int, amount int) Command {
	return Command{SequenceId: sequenceId, Opcode: opcode, From: from, To: to, Amount: amount}
}

// AccountState is the mutable part of an account, only reachable while the
// account lock is held.
type AccountState struct {
	Open    bool
	Balance int
}

type AccountBalance struct {
	Id      int `json:"id"`
	Balance int `json:"balance"`
}
