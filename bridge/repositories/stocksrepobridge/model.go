package stocksrepobridge

import (
	"time"

	"github.com/jrazmi/stockdata/core/repositories/stocksrepo"
)

// Stock is the API representation of a stock.
type Stock struct {
	ID           int64     `json:"id"`
	StockCode    string    `json:"stockCode"`
	StockName    string    `json:"stockName"`
	Market       string    `json:"market"`
	Sector       string    `json:"sector"`
	CurrentPrice *float64  `json:"currentPrice"`
	MarketCap    *int64    `json:"marketCap"`
	PER          *float64  `json:"per"`
	PBR          *float64  `json:"pbr"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateStockInput struct {
	StockCode    string   `json:"stockCode"`
	StockName    string   `json:"stockName"`
	Market       string   `json:"market"`
	Sector       string   `json:"sector"`
	CurrentPrice *float64 `json:"currentPrice"`
	MarketCap    *int64   `json:"marketCap"`
	PER          *float64 `json:"per"`
	PBR          *float64 `json:"pbr"`
}

type UpdateStockInput struct {
	StockCode    *string  `json:"stockCode"`
	StockName    *string  `json:"stockName"`
	Market       *string  `json:"market"`
	Sector       *string  `json:"sector"`
	CurrentPrice *float64 `json:"currentPrice"`
	MarketCap    *int64   `json:"marketCap"`
	PER          *float64 `json:"per"`
	PBR          *float64 `json:"pbr"`
}

func toBridge(s stocksrepo.Stock) Stock {
	return Stock{
		ID:           s.ID,
		StockCode:    s.StockCode,
		StockName:    s.StockName,
		Market:       s.Market,
		Sector:       s.Sector,
		CurrentPrice: s.CurrentPrice,
		MarketCap:    s.MarketCap,
		PER:          s.PER,
		PBR:          s.PBR,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toBridgeList(stocks []stocksrepo.Stock) []Stock {
	out := make([]Stock, len(stocks))
	for i, s := range stocks {
		out[i] = toBridge(s)
	}
	return out
}

func (in CreateStockInput) toRepository() stocksrepo.CreateStock {
	return stocksrepo.CreateStock{
		StockCode:    in.StockCode,
		StockName:    in.StockName,
		Market:       in.Market,
		Sector:       in.Sector,
		CurrentPrice: in.CurrentPrice,
		MarketCap:    in.MarketCap,
		PER:          in.PER,
		PBR:          in.PBR,
	}
}

func (in UpdateStockInput) toRepository() stocksrepo.UpdateStock {
	return stocksrepo.UpdateStock{
		StockCode:    in.StockCode,
		StockName:    in.StockName,
		Market:       in.Market,
		Sector:       in.Sector,
		CurrentPrice: in.CurrentPrice,
		MarketCap:    in.MarketCap,
		PER:          in.PER,
		PBR:          in.PBR,
	}
}
