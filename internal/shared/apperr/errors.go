// Package apperr defines the error taxonomy shared by all dashboard features.
package apperr

import "errors"

// Errors returned by usecases. Wrap them with fmt.Errorf("...: %w", ...) and
// check with errors.Is in upper layers.
var (
	// ErrInvalidArgument は必須入力の欠落または不正な形式を表します。
	// ダッシュボードではエラー表示せずにアクションをスキップします。
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataUnavailable は未知の銘柄、またはプロバイダーが空のデータを返したことを表します。
	ErrDataUnavailable = errors.New("data unavailable")
)
