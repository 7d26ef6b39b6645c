// Package usecase は銘柄の企業情報取得を実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stock_dashboard/internal/feature/company/domain/entity"
	"stock_dashboard/internal/shared/apperr"
)

// ProfileRepository は企業プロファイルの取得元です。
type ProfileRepository interface {
	GetProfile(ctx context.Context, symbol string) (entity.Profile, error)
}

// CompanyUsecase は企業ヘッダー（名称・説明・ロゴ）を提供します。
type CompanyUsecase struct {
	profiles ProfileRepository
}

// NewCompanyUsecase はCompanyUsecaseの新しいインスタンスを生成します。
func NewCompanyUsecase(profiles ProfileRepository) *CompanyUsecase {
	return &CompanyUsecase{profiles: profiles}
}

// GetProfile は銘柄の企業情報を返します。名称が空のプロファイルはデータなしとして扱います。
func (u *CompanyUsecase) GetProfile(ctx context.Context, symbol string) (entity.Profile, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return entity.Profile{}, fmt.Errorf("%w: symbol is required", apperr.ErrInvalidArgument)
	}

	p, err := u.profiles.GetProfile(ctx, symbol)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("get profile %s: %w", symbol, err)
	}
	if p.Name == "" {
		return entity.Profile{}, fmt.Errorf("%w: no company profile for %s", apperr.ErrDataUnavailable, symbol)
	}
	p.Symbol = symbol
	return p, nil
}
