package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_dashboard/internal/feature/candles/domain/entity"
	"stock_dashboard/internal/shared/ratelimiter"
)

// DefaultIngestWindow は1回の取り込みで遡る期間です。
const DefaultIngestWindow = 365 * 24 * time.Hour

// CandleStore はローソク足データを永続化するストアのインターフェイスです。
type CandleStore interface {
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// IngestUsecase は外部APIからデータを取得し、データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	market      MarketRepository
	store       CandleStore
	rateLimiter ratelimiter.RateLimiterInterface
	window      time.Duration
	now         func() time.Time
}

// NewIngestUsecase は新しい IngestUsecase を作成します。windowが0以下なら1年分を取り込みます。
func NewIngestUsecase(market MarketRepository, store CandleStore, rateLimiter ratelimiter.RateLimiterInterface, window time.Duration) *IngestUsecase {
	if window <= 0 {
		window = DefaultIngestWindow
	}
	return &IngestUsecase{
		market:      market,
		store:       store,
		rateLimiter: rateLimiter,
		window:      window,
		now:         time.Now,
	}
}

// ingestOne は指定された銘柄の日足を外部リポジトリから取得し、
// データベースに一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	cs, err := iu.market.GetTimeSeries(ctx, symbol, DefaultInterval, start, end)
	if err != nil {
		return 0, err
	}

	// 取得したデータに銘柄コードと時間足を設定
	for i := range cs {
		cs[i].Symbol = symbol
		cs[i].Interval = DefaultInterval
	}
	return len(cs), iu.store.UpsertBatch(ctx, cs)
}

// IngestAll は指定された全銘柄の直近window分の日足を取得し、データベースに永続化します。
// APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	end := Today(iu.now())
	start := end.Add(-iu.window)

	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}

		iu.rateLimiter.WaitIfNeeded()
		n, err := iu.ingestOne(ctx, s, start, end)
		if err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to ingest data", "symbol", s, "error", err)
			continue
		}
		slog.Info("ingested candles", "symbol", s, "count", n)
	}
	return nil
}
