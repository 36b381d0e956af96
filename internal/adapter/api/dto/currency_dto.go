package dto

import (
	"time"

	"github.com/hugohenrick/gestor-vendas/pkg/currency"
	"github.com/shopspring/decimal"
)

// QuoteResponse representa a resposta de cotação do dólar
type QuoteResponse struct {
	Buy       decimal.Decimal `json:"buy"`
	Sell      decimal.Decimal `json:"sell"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// ConvertResponse representa o resultado da conversão de um valor em dólar
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
	Rate      decimal.Decimal `json:"rate"`
}

// ToQuoteResponse converte uma cotação para o formato de resposta
func ToQuoteResponse(q *currency.Quote) QuoteResponse {
	return QuoteResponse{
		Buy:       q.Buy,
		Sell:      q.Sell,
		Source:    q.Source,
		FetchedAt: q.FetchedAt,
	}
}
