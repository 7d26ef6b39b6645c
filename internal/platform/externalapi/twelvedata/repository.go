package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	candleentity "stock_dashboard/internal/feature/candles/domain/entity"
	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	companyentity "stock_dashboard/internal/feature/company/domain/entity"
	companyusecase "stock_dashboard/internal/feature/company/usecase"
	"stock_dashboard/internal/platform/externalapi/twelvedata/dto"
	"stock_dashboard/internal/shared/apperr"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	// maxOutputSize はtime_seriesで一度に取得できる最大件数です。
	maxOutputSize = 5000
)

// TwelveDataMarket はTwelve Data外部APIから株価データと企業情報を取得するリポジトリ実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketが各ユースケースのリポジトリを実装していることをコンパイル時に検証します。
var (
	_ candlesusecase.MarketRepository  = (*TwelveDataMarket)(nil)
	_ companyusecase.ProfileRepository = (*TwelveDataMarket)(nil)
)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetTimeSeries はTwelve Data APIから期間指定で時系列株価データを取得し、
// 古い順に並べたCandleのスライスとして返します。start/endがゼロ値の場合は指定しません。
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]candleentity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(maxOutputSize))
	q.Set("order", "asc")
	if !start.IsZero() {
		q.Set("start_date", start.Format(dateLayout))
	}
	if !end.IsZero() {
		q.Set("end_date", end.Format(dateLayout))
	}

	var body dto.TimeSeriesResponse
	if err := t.get(ctx, "time_series", q, &body); err != nil {
		return nil, err
	}

	candles := make([]candleentity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		// タイムスタンプをパース
		tm, err := time.Parse(dateTimeLayout, v.Datetime)
		if err != nil {
			tm, err = time.Parse(dateLayout, v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		o, err := strconv.ParseFloat(v.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open %q: %w", v.Open, err)
		}
		h, err := strconv.ParseFloat(v.High, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high %q: %w", v.High, err)
		}
		l, err := strconv.ParseFloat(v.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low %q: %w", v.Low, err)
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		// 指数や為替には出来高がないため、空文字は0として扱う
		var vol int64
		if v.Volume != "" {
			vol, err = strconv.ParseInt(v.Volume, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse volume %q: %w", v.Volume, err)
			}
		}

		candles = append(candles, candleentity.Candle{
			Symbol:   symbol,
			Interval: interval,
			Time:     tm,
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			Volume:   vol,
		})
	}

	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

// GetProfile は企業プロファイルとロゴURLを取得します。
// ロゴの取得に失敗してもプロファイルは返します。
func (t *TwelveDataMarket) GetProfile(ctx context.Context, symbol string) (companyentity.Profile, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var p dto.ProfileResponse
	if err := t.get(ctx, "profile", q, &p); err != nil {
		return companyentity.Profile{}, err
	}

	out := companyentity.Profile{
		Symbol:      symbol,
		Name:        p.Name,
		Description: p.Description,
		Exchange:    p.Exchange,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Website:     p.Website,
	}

	var logo dto.LogoResponse
	if err := t.get(ctx, "logo", q, &logo); err != nil {
		slog.Warn("failed to fetch logo", "symbol", symbol, "error", err)
		return out, nil
	}
	out.LogoURL = logo.URL
	return out, nil
}

// get はエンドポイントを呼び出し、エラーエンベロープを検査したうえでoutへデコードします。
func (t *TwelveDataMarket) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	u := fmt.Sprintf("%s/%s?%s", strings.TrimRight(t.cfg.BaseURL, "/"), endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	// APIキーはURLではなくヘッダーで渡す
	req.Header.Set("Authorization", "apikey "+t.cfg.TwelveDataAPIKey)

	res, err := t.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("twelvedata %s: %w", endpoint, urlErr.Err)
		}
		return fmt.Errorf("twelvedata %s: %w", endpoint, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: twelvedata http %d", apperr.ErrDataUnavailable, res.StatusCode)
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("twelvedata read body: %w", err)
	}

	var env dto.ErrorEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("twelvedata decode: %w", err)
	}
	if env.Status == "error" {
		// 400/404 は未知の銘柄やデータなしを意味する
		if env.Code == http.StatusBadRequest || env.Code == http.StatusNotFound {
			return fmt.Errorf("%w: twelvedata: %s", apperr.ErrDataUnavailable, env.Message)
		}
		return fmt.Errorf("twelvedata: %s", env.Message)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("twelvedata decode: %w", err)
	}
	return nil
}
