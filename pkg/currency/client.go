package currency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"resty.dev/v3"
)

// ErrQuoteUnavailable é retornado quando nenhum provedor respondeu e não
// há cotação anterior em cache
var ErrQuoteUnavailable = errors.New("cotação indisponível")

// Quote representa a cotação do dólar
type Quote struct {
	Buy       decimal.Decimal `json:"buy"`        // Valor de Compra
	Sell      decimal.Decimal `json:"sell"`       // Valor de Venda
	Source    string          `json:"source"`     // Provedor de Origem
	FetchedAt time.Time       `json:"fetched_at"` // Momento da Consulta
}

// Payload retornado pelos provedores de cotação
type quotePayload struct {
	Bid string `json:"bid"`
	Ask string `json:"ask"`
}

// Client consulta a cotação do dólar em um provedor primário, com
// fallback para um provedor secundário e, por fim, para a última
// cotação obtida com sucesso.
type Client struct {
	http        *resty.Client
	primaryURL  string
	fallbackURL string
	logger      logger.Logger

	mu   sync.RWMutex
	last *Quote
}

// NewClient cria um novo cliente de cotações
func NewClient(primaryURL, fallbackURL string, log logger.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		logger:      log,
	}
}

// Close libera os recursos do cliente HTTP
func (c *Client) Close() error {
	return c.http.Close()
}

// GetQuote retorna a cotação atual do dólar
func (c *Client) GetQuote(ctx context.Context) (*Quote, error) {
	quote, err := c.fetch(ctx, c.primaryURL)
	if err == nil {
		c.remember(quote)
		return quote, nil
	}
	c.logger.Warn("provedor primário de cotação falhou", "url", c.primaryURL, "error", err)

	if c.fallbackURL != "" {
		quote, err = c.fetch(ctx, c.fallbackURL)
		if err == nil {
			c.remember(quote)
			return quote, nil
		}
		c.logger.Warn("provedor secundário de cotação falhou", "url", c.fallbackURL, "error", err)
	}

	// Última cotação conhecida, melhor do que nada
	c.mu.RLock()
	last := c.last
	c.mu.RUnlock()
	if last != nil {
		c.logger.Info("usando última cotação em cache", "fetched_at", last.FetchedAt)
		return last, nil
	}

	return nil, ErrQuoteUnavailable
}

// Convert converte um valor em dólares para a moeda local usando o valor
// de venda da cotação atual
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	quote, err := c.GetQuote(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(quote.Sell).Round(2), nil
}

func (c *Client) fetch(ctx context.Context, url string) (*Quote, error) {
	var payload quotePayload

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar provedor de cotação: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("provedor de cotação retornou status %d", resp.StatusCode())
	}

	buy, err := decimal.NewFromString(payload.Bid)
	if err != nil {
		return nil, fmt.Errorf("valor de compra inválido na cotação: %w", err)
	}

	sell, err := decimal.NewFromString(payload.Ask)
	if err != nil {
		return nil, fmt.Errorf("valor de venda inválido na cotação: %w", err)
	}

	return &Quote{
		Buy:       buy,
		Sell:      sell,
		Source:    url,
		FetchedAt: time.Now(),
	}, nil
}

func (c *Client) remember(quote *Quote) {
	c.mu.Lock()
	c.last = quote
	c.mu.Unlock()
}
