package db

import (
	"cmp"
	"fmt"
	"golang.org/x/exp/maps"
	"ledger/banking/model"
	"slices"
	"sync"
)

type MemAccount struct {
	id int

	// shared for readers, exclusive for writers; writer-preferring so a
	// stream of balance checks cannot starve a mutation
	lock  sync.RWMutex
	state model.AccountState
}

func (a *MemAccount) GetId() int {
	return a.id
}

func (a *MemAccount) Read(action func(state model.AccountState)) {
	a.lock.RLock()
	defer a.lock.RUnlock()
	action(a.state)
}

func (a *MemAccount) Write(action func(state *model.AccountState)) {
	a.lock.Lock()
	defer a.lock.Unlock()
	action(&a.state)
}

// AccountMemDao maps ids to account records. Records are created lazily and
// never removed; the mapping lock only covers lookup and creation.
type AccountMemDao struct {
	lock     sync.Mutex
	accounts map[int]*MemAccount
}

func NewAccountMemDao() *AccountMemDao {
	return &AccountMemDao{accounts: make(map[int]*MemAccount)}
}

// NewAccountMemDaoWithOpenAccounts creates accounts 0 ... n-1, open and empty.
func NewAccountMemDaoWithOpenAccounts(n int) *AccountMemDao {
	dao := NewAccountMemDao()
	for i := 0; i < n; i++ {
		dao.accounts[i] = &MemAccount{id: i, state: model.AccountState{Open: true}}
	}
	return dao
}

func (dao *AccountMemDao) Get(id int) (model.Account, bool) {
	dao.lock.Lock()
	defer dao.lock.Unlock()
	account, ok := dao.accounts[id]
	if !ok {
		return nil, false
	}
	return account, true
}

// GetOrCreate returns the record for id, creating a closed one if absent.
// The boolean reports whether this call created it.
func (dao *AccountMemDao) GetOrCreate(id int) (model.Account, bool) {
	dao.lock.Lock()
	defer dao.lock.Unlock()
	if account, ok := dao.accounts[id]; ok {
		return account, false
	}
	account := &MemAccount{id: id}
	dao.accounts[id] = account
	return account, true
}

func (dao *AccountMemDao) WriteBoth(first model.Account, second model.Account, action func(first *model.AccountState, second *model.AccountState)) {
	firstAccount := dao.mustOwn(first)
	secondAccount := dao.mustOwn(second)
	if firstAccount.id == secondAccount.id {
		panic(fmt.Sprintf("cannot write-lock account %v twice", firstAccount.id))
	}

	ordered := []*MemAccount{firstAccount, secondAccount}
	slices.SortFunc(ordered, func(a, b *MemAccount) int { return cmp.Compare(a.id, b.id) })
	for _, account := range ordered {
		account.lock.Lock()
	}
	defer func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			ordered[i].lock.Unlock()
		}
	}()

	action(&firstAccount.state, &secondAccount.state)
}

func (dao *AccountMemDao) Ids() []int {
	dao.lock.Lock()
	ids := maps.Keys(dao.accounts)
	dao.lock.Unlock()

	slices.Sort(ids)
	return ids
}

func (dao *AccountMemDao) mustOwn(account model.Account) *MemAccount {
	memAccount, ok := account.(*MemAccount)
	if !ok {
		panic(fmt.Sprintf("account %v of type %T does not belong to the in-memory store", account.GetId(), account))
	}
	return memAccount
}
