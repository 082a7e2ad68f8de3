package model

// Currency is a symbol+name pair from the fixed supported list.
type Currency struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies is the fixed list of supported currencies. The first entry is
// the fallback when a stored symbol is missing or unrecognized.
var Currencies = []Currency{
	{Symbol: "$", Name: "US Dollar"},
	{Symbol: "€", Name: "Euro"},
	{Symbol: "£", Name: "British Pound"},
	{Symbol: "¥", Name: "Japanese Yen"},
	{Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Symbol: "₹", Name: "Indian Rupee"},
	{Symbol: "K", Name: "Myanmar Kyat"},
}

// CurrencyBySymbol finds a currency by its symbol.
func CurrencyBySymbol(symbol string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Currency{}, false
}

// DefaultCurrency is the fallback currency.
func DefaultCurrency() Currency { return Currencies[0] }

// Language is a supported UI language.
type Language struct {
	Code  string
	Label string
}

// Languages is the fixed list of supported language codes.
var Languages = []Language{
	{Code: "en", Label: "English"},
	{Code: "id", Label: "Indonesia"},
	{Code: "ja", Label: "日本語"},
	{Code: "zh", Label: "中文"},
	{Code: "tl", Label: "Timor-Leste"},
	{Code: "mm", Label: "Myanmar"},
}

// NotificationTime is the time of day for the daily reminder.
type NotificationTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DefaultNotificationTime is 20:00, used when no time has been stored.
var DefaultNotificationTime = NotificationTime{Hour: 20, Minute: 0}

// Preferences is the full user preference set. An empty PIN means the lock
// is disabled.
type Preferences struct {
	Currency            Currency
	NotificationEnabled bool
	NotificationTime    NotificationTime
	Language            string
	PIN                 string
}
