package model

// Account is a handle to one account record. The state is only handed to the
// callbacks, so no caller keeps access to it after the lock is released.
type Account interface {
	GetId() int
	Read(func(state AccountState))
	Write(func(state *AccountState))
}

type AccountStore interface {
	Get(id int) (Account, bool)
	GetOrCreate(id int) (Account, bool)
	// WriteBoth locks both accounts in ascending id order and passes their
	// states in argument order.
	WriteBoth(first Account, second Account, action func(first *AccountState, second *AccountState))
	Ids() []int
}
