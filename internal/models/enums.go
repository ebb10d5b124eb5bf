package models

// Direction is the side of a position.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Status is the lifecycle state of a Trade.
type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusPartial Status = "partial"
)

// AssetType classifies the traded instrument.
type AssetType string

const (
	AssetStock  AssetType = "stock"
	AssetOption AssetType = "option"
	AssetFuture AssetType = "future"
	AssetForex  AssetType = "forex"
	AssetCrypto AssetType = "crypto"
	AssetCFD    AssetType = "cfd"
	AssetOther  AssetType = "other"
)

// Broker is the stable identifier of a supported (or reserved) broker export format.
type Broker string

const (
	BrokerGeneric            Broker = "generic"
	BrokerInteractiveBrokers Broker = "interactive_brokers"
	BrokerMetaTrader4        Broker = "metatrader4"
	BrokerMetaTrader5        Broker = "metatrader5"
	BrokerBinance            Broker = "binance"
	BrokerNinjaTrader        Broker = "ninja_trader"
	BrokerTradovate          Broker = "tradovate"

	// Reserved for future parsers; not implemented.
	BrokerCoinbase      Broker = "coinbase"
	BrokerTopstepX       Broker = "topstepx"
	BrokerThinkOrSwim    Broker = "thinkorswim"
	BrokerWebull         Broker = "webull"
	BrokerRobinhood      Broker = "robinhood"
	BrokerETrade         Broker = "etrade"
	BrokerTradeStation   Broker = "tradestation"
)
