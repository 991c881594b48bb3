package services_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeTx stands in for a pgx.Tx. Only its identity matters to the store.
type fakeTx struct {
	pgx.Tx
	closed bool
}

type storeState struct {
	users        map[int64]domain.User
	currencies   map[int64]domain.Currency
	categories   map[int64]domain.Category
	accounts     map[int64]domain.Account
	transactions map[int64]domain.Transaction
	receipts     map[int64]domain.Receipt
	nextID       int64
}

func (s storeState) clone() storeState {
	return storeState{
		users:        maps.Clone(s.users),
		currencies:   maps.Clone(s.currencies),
		categories:   maps.Clone(s.categories),
		accounts:     maps.Clone(s.accounts),
		transactions: maps.Clone(s.transactions),
		receipts:     maps.Clone(s.receipts),
		nextID:       s.nextID,
	}
}

// fakeStore is an in-memory implementation of every repository port. Begin snapshots the
// state and Rollback restores it, so partially applied units of work disappear on failure.
type fakeStore struct {
	mu       sync.Mutex
	state    storeState
	snapshot *storeState
	clock    time.Time

	commits   int
	rollbacks int

	// failAdjust makes the next AdjustBalancesInTx call fail.
	failAdjust error
	// failAccountInsert makes InsertAccountInTx fail.
	failAccountInsert error
}

var (
	_ portsrepo.TransactionManager          = (*fakeStore)(nil)
	_ portsrepo.UserRepositoryFacade        = (*fakeStore)(nil)
	_ portsrepo.CurrencyRepositoryFacade    = (*fakeStore)(nil)
	_ portsrepo.CategoryRepositoryFacade    = (*fakeStore)(nil)
	_ portsrepo.AccountRepositoryWithTx     = (*fakeStore)(nil)
	_ portsrepo.TransactionRepositoryWithTx = (*fakeStore)(nil)
	_ portsrepo.ReceiptRepositoryFacade     = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: storeState{
			users:        map[int64]domain.User{},
			currencies:   map[int64]domain.Currency{},
			categories:   map[int64]domain.Category{},
			accounts:     map[int64]domain.Account{},
			transactions: map[int64]domain.Transaction{},
			receipts:     map[int64]domain.Receipt{},
		},
		clock: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

// provider exposes the store through every port of a RepositoryProvider.
func (f *fakeStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       f,
		UserRepo:        f,
		CurrencyRepo:    f,
		CategoryRepo:    f,
		AccountRepo:     f,
		TransactionRepo: f,
		ReceiptRepo:     f,
	}
}

func (f *fakeStore) id() int64 {
	f.state.nextID++
	return f.state.nextID
}

// tick returns a strictly increasing timestamp.
func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// setClock moves the clock so that the next insert happens one minute after t.
func (f *fakeStore) setClock(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = t.Add(-time.Minute)
}

// Begin implements portsrepo.TransactionManager.
func (f *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.state.clone()
	f.snapshot = &snap
	return &fakeTx{}, nil
}

func (f *fakeStore) Commit(ctx context.Context, tx pgx.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ftx := tx.(*fakeTx)
	if ftx.closed {
		return pgx.ErrTxClosed
	}
	ftx.closed = true
	f.snapshot = nil
	f.commits++
	return nil
}

func (f *fakeStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ftx := tx.(*fakeTx)
	if ftx.closed {
		return nil
	}
	ftx.closed = true
	if f.snapshot != nil {
		f.state = *f.snapshot
		f.snapshot = nil
	}
	f.rollbacks++
	return nil
}

// Users

func (f *fakeStore) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.state.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) InsertUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.state.users {
		if u.Email == user.Email {
			return nil, apperrors.ErrDuplicate
		}
	}
	user.UserID = f.id()
	user.CreatedAt = f.tick()
	f.state.users[user.UserID] = user
	return &user, nil
}

// Currencies

func (f *fakeStore) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.state.currencies[currencyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) FindCurrencyByCodeInTx(ctx context.Context, tx pgx.Tx, code domain.CurrencyCode) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.state.currencies {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Collect(maps.Values(f.state.currencies))
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeStore) InsertMissingCurrencies(ctx context.Context, currencies []domain.Currency) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	added := 0
outer:
	for _, c := range currencies {
		for _, existing := range f.state.currencies {
			if existing.Code == c.Code {
				continue outer
			}
		}
		c.CurrencyID = f.id()
		f.state.currencies[c.CurrencyID] = c
		added++
	}
	return added, nil
}

// Categories

func (f *fakeStore) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.state.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) ListCategoriesForUser(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Category
	for _, c := range f.state.categories {
		if !c.VisibleTo(userID) {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out, nil
}

func (f *fakeStore) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category.CategoryID = f.id()
	f.state.categories[category.CategoryID] = category
	return &category, nil
}

func (f *fakeStore) UpsertSharedCategories(ctx context.Context, categories []domain.Category) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inserted, updated := 0, 0
	for _, c := range categories {
		found := false
		for id, existing := range f.state.categories {
			if existing.IsShared() && existing.Name == c.Name {
				found = true
				if existing.Icon != c.Icon {
					existing.Icon = c.Icon
					f.state.categories[id] = existing
					updated++
				}
				break
			}
		}
		if !found {
			c.UserID = nil
			c.CategoryID = f.id()
			f.state.categories[c.CategoryID] = c
			inserted++
		}
	}
	return inserted, updated, nil
}

// Accounts

func (f *fakeStore) withCurrency(a domain.Account) *domain.Account {
	if c, ok := f.state.currencies[a.CurrencyID]; ok {
		a.Currency = &c
	}
	return &a
}

func (f *fakeStore) FindAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.state.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return f.withCurrency(a), nil
}

func (f *fakeStore) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Account
	for _, a := range f.state.accounts {
		if a.UserID == userID {
			out = append(out, *f.withCurrency(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (f *fakeStore) insertAccount(account domain.Account) (*domain.Account, error) {
	if _, ok := f.state.currencies[account.CurrencyID]; !ok {
		return nil, apperrors.ErrInvalidReference
	}
	account.AccountID = f.id()
	account.CreatedAt = f.tick()
	account.Balance = account.Balance.Round(domain.AmountScale)
	f.state.accounts[account.AccountID] = account
	return &account, nil
}

func (f *fakeStore) InsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertAccount(account)
}

func (f *fakeStore) InsertAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAccountInsert != nil {
		return nil, f.failAccountInsert
	}
	return f.insertAccount(account)
}

func (f *fakeStore) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, userID int64, accountID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.state.accounts[accountID]
	if !ok || a.UserID != userID {
		return apperrors.ErrNotFound
	}
	for _, t := range f.state.transactions {
		if t.AccountID == accountID {
			return apperrors.ErrInvalidReference
		}
	}
	delete(f.state.accounts, accountID)
	return nil
}

func (f *fakeStore) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64, accountID int64) (*domain.Account, error) {
	return f.FindAccountByID(ctx, userID, accountID)
}

func (f *fakeStore) AdjustBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdjust != nil {
		err := f.failAdjust
		f.failAdjust = nil
		return err
	}
	for id, delta := range balanceChanges {
		a, ok := f.state.accounts[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		a.Balance = a.Balance.Add(delta)
		f.state.accounts[id] = a
	}
	return nil
}

// Transactions

func (f *fakeStore) withCategory(t domain.Transaction) *domain.Transaction {
	if c, ok := f.state.categories[t.CategoryID]; ok {
		t.Category = &c
	}
	return &t
}

func (f *fakeStore) FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.state.transactions[transactionID]
	if !ok || t.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return f.withCategory(t), nil
}

func (f *fakeStore) ListTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter, loc *time.Location, page domain.PageRequest) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Transaction
	for _, t := range f.state.transactions {
		if t.UserID != userID {
			continue
		}
		local := t.CreatedAt.In(loc)
		if filter.Month != nil && int(local.Month()) != *filter.Month {
			continue
		}
		if filter.Year != nil && local.Year() != *filter.Year {
			continue
		}
		out = append(out, *f.withCategory(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].TransactionID > out[j].TransactionID
	})
	if page.Offset >= len(out) {
		return []domain.Transaction{}, nil
	}
	end := min(page.Offset+page.Limit, len(out))
	return out[page.Offset:end], nil
}

func (f *fakeStore) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state.accounts[txn.AccountID]; !ok {
		return nil, apperrors.ErrInvalidReference
	}
	if _, ok := f.state.categories[txn.CategoryID]; !ok {
		return nil, apperrors.ErrInvalidReference
	}
	txn.TransactionID = f.id()
	txn.CreatedAt = f.tick()
	txn.Category = nil
	f.state.transactions[txn.TransactionID] = txn
	return &txn, nil
}

func (f *fakeStore) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.state.transactions[txn.TransactionID]
	if !ok || existing.UserID != txn.UserID {
		return apperrors.ErrNotFound
	}
	txn.CreatedAt = existing.CreatedAt
	txn.Category = nil
	f.state.transactions[txn.TransactionID] = txn
	return nil
}

func (f *fakeStore) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, userID int64, transactionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.state.transactions[transactionID]
	if !ok || t.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(f.state.transactions, transactionID)
	for id, r := range f.state.receipts {
		if r.TransactionID != nil && *r.TransactionID == transactionID {
			r.TransactionID = nil
			f.state.receipts[id] = r
		}
	}
	return nil
}

func (f *fakeStore) DeleteTransactionsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, t := range f.state.transactions {
		if t.AccountID == accountID {
			delete(f.state.transactions, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64, transactionID int64) (*domain.Transaction, error) {
	return f.FindTransactionByID(ctx, userID, transactionID)
}

// Receipts

func (f *fakeStore) SaveReceipt(ctx context.Context, receipt domain.Receipt) (*domain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt.ReceiptID = f.id()
	receipt.CreatedAt = f.tick()
	f.state.receipts[receipt.ReceiptID] = receipt
	return &receipt, nil
}

func (f *fakeStore) ListReceiptsByUser(ctx context.Context, userID int64) ([]domain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Receipt
	for _, r := range f.state.receipts {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceiptID > out[j].ReceiptID })
	return out, nil
}

// Inspection helpers

func (f *fakeStore) countUsers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.users)
}

func (f *fakeStore) countAccounts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.accounts)
}

func (f *fakeStore) countTransactions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.transactions)
}

func (f *fakeStore) allAccounts() []domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Collect(maps.Values(f.state.accounts))
}

func (f *fakeStore) allTransactions() []domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Collect(maps.Values(f.state.transactions))
}

// removeAccountRow drops an account without touching its transactions, simulating a
// store where the account vanished underneath its ledger entries.
func (f *fakeStore) removeAccountRow(accountID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.state.accounts, accountID)
}

func (f *fakeStore) sharedCategory(name string) domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.state.categories {
		if c.IsShared() && c.Name == name {
			return c
		}
	}
	panic(errors.New("shared category not seeded: " + name))
}

func (f *fakeStore) currencyByCode(code domain.CurrencyCode) domain.Currency {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.state.currencies {
		if c.Code == code {
			return c
		}
	}
	panic(errors.New("currency not seeded: " + string(code)))
}
