package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
)

type PaymentRepository interface {
	//transaction_id 重複は ErrDuplicate
	Create(ctx context.Context, payment model.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (model.Payment, bool, error)
	//email が空なら全件
	List(ctx context.Context, email string) ([]model.Payment, error)
}
