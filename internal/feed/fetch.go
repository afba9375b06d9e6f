package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultFetchTimeout ограничивает один запрос к фиду.
	DefaultFetchTimeout = 15 * time.Second
	// DefaultUserAgent — идентификатор импортёра в запросах к площадкам.
	DefaultUserAgent = "SceneBoard/1.0 iCal-Importer"
)

// NetworkError — сбой получения фида: недоступный хост, таймаут либо
// неуспешный HTTP-статус. Ошибка уровня площадки, её ловит оркестратор.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Fetcher скачивает iCal-фиды по HTTP.
type Fetcher struct {
	logger    *slog.Logger
	client    *http.Client
	userAgent string
}

// NewFetcher создаёт Fetcher с фиксированным таймаутом запроса.
// Нулевые параметры заменяются значениями по умолчанию.
func NewFetcher(logger *slog.Logger, timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Fetcher{
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch возвращает сырые байты фида. Любой сбой сети или неуспешный
// статус приходит как *NetworkError; ретраев внутри нет — повтор
// произойдёт при следующем плановом запуске.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	op := "feed.Fetcher.Fetch()"
	log := f.logger.With(
		slog.String("op", op),
		slog.String("url", url),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	log.Debug("feed fetched", slog.Int("bytes", len(body)))

	return body, nil
}
