package memstore

import (
	"context"
	"sync"
)

// TxManager транзакции для тестов: мьютекс удерживается на всё время fn
// Это модель блокировки строки услуги: конкурирующие транзакции выполняются по очереди
type TxManager struct {
	mu sync.Mutex

	// Store если задан, при ошибке fn хранилище возвращается к состоянию до транзакции
	Store *Store

	// Calls количество начатых транзакций
	Calls int
	// Rollbacks количество откатов
	Rollbacks int
}

// NewTxManager создает менеджер с откатом изменений store
func NewTxManager(store *Store) *TxManager {
	return &TxManager{Store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++

	var snap *snapshot
	if m.Store != nil {
		snap = m.Store.snapshot()
	}

	if err := fn(ctx); err != nil {
		if snap != nil {
			m.Store.restore(snap)
			m.Rollbacks++
		}
		return err
	}
	return nil
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
