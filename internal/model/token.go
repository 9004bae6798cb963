package model

// Token is an ERC20 token known to the upstream API.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	ChainID  int64  `json:"chain_id"`
}

// TokenPrice is the current USD price of a token.
type TokenPrice struct {
	TokenAddress string  `json:"token_address"`
	PriceUSD     float64 `json:"price_usd"`
	Timestamp    int64   `json:"timestamp"`
}

// PricePoint is one hourly sample of a token's price history.
type PricePoint struct {
	TokenAddress string  `json:"token_address"`
	Timestamp    int64   `json:"timestamp"`
	PriceUSD     float64 `json:"price_usd"`
	Interval     string  `json:"interval"`
}

// TopHolder is a single entry in a token's holder ranking.
type TopHolder struct {
	HolderAddress string  `json:"holder_address"`
	Balance       string  `json:"balance"`
	BalanceUSD    float64 `json:"balance_usd"`
	Percentage    float64 `json:"percentage"`
}

// HoldersReport summarizes the concentration of a token's top holders.
type HoldersReport struct {
	TokenAddress       string      `json:"token_address"`
	Holders            []TopHolder `json:"holders"`
	TotalHolders       int         `json:"total_holders"`
	Top10Concentration float64     `json:"top_10_concentration"`
}
