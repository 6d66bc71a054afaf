package domain

import (
	"bufio"
	"errors"
	"io"
	"ledger/banking/model"
	"strconv"
	"sync"
)

const fieldsPerRecord = 4

// LedgerReader hands out one command at a time from a shared source of
// whitespace separated `from to amount mode` records. It is safe for
// concurrent loaders; the first malformed or incomplete record ends the
// input for everybody.
type LedgerReader struct {
	lock        sync.Mutex
	scanner     *bufio.Scanner
	nextLedger  int
	isExhausted bool
}

func NewLedgerReader(source io.Reader) *LedgerReader {
	scanner := bufio.NewScanner(source)
	scanner.Split(bufio.ScanWords)
	return &LedgerReader{scanner: scanner}
}

// Next parses the next record. Sequence ids follow the order in which
// records are taken from the source.
func (lr *LedgerReader) Next() (model.Command, bool) {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	if lr.isExhausted {
		return model.Command{}, false
	}

	var fields [fieldsPerRecord]int
	for i := 0; i < fieldsPerRecord; i++ {
		if !lr.scanner.Scan() {
			lr.isExhausted = true
			return model.Command{}, false
		}
		value, err := strconv.Atoi(lr.scanner.Text())
		if err != nil {
			lr.isExhausted = true
			return model.Command{}, false
		}
		fields[i] = value
	}

	opcode := model.Opcode(fields[3])
	if !opcode.IsValid() {
		lr.isExhausted = true
		return model.Command{}, false
	}

	command := model.NewCommand(lr.nextLedger, opcode, fields[0], fields[1], fields[2])
	lr.nextLedger++
	return command, true
}

// Err reports an I/O error from the source. An oversized token is a
// malformed record and only ends the input.
func (lr *LedgerReader) Err() error {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	err := lr.scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return nil
	}
	return err
}

func (lr *LedgerReader) ReadCount() int {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	return lr.nextLedger
}
