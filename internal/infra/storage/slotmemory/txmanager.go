package slotmemory

import "context"

// TransactionManager для in-memory хранилища: выполняет fn без транзакции.
// Атомарность отдельных операций обеспечивает мьютекс репозитория,
// конкурентные изменения одного слота разрешает проверка версии в Update.
type TransactionManager struct{}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
