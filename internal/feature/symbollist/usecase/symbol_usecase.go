// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"strings"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for the watchlist.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes returns the codes of all active symbols.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// EnsureSymbols は設定されたウォッチリストのうち未登録の銘柄を、指定順のsort_keyで登録します。
// コードは大文字に正規化し、空文字と重複は除きます。
func (u *SymbolUsecase) EnsureSymbols(ctx context.Context, codes []string) error {
	seen := make(map[string]struct{}, len(codes))
	symbols := make([]entity.Symbol, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		symbols = append(symbols, entity.Symbol{Code: c, Name: c, IsActive: true, SortKey: len(symbols) + 1})
	}
	return u.repo.Insert(ctx, symbols)
}
