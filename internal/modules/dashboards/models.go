package dashboards

import (
	"time"

	"github.com/zentra/paper-trader/internal/clients/yahoo"
	"github.com/zentra/paper-trader/internal/modules/analytics"
	"github.com/zentra/paper-trader/internal/modules/ledger"
	"github.com/zentra/paper-trader/internal/modules/news"
)

// RegisteredAsset is one asset with a dashboard, created the first time
// the asset is traded
type RegisteredAsset struct {
	Symbol       string    `json:"symbol"`
	RegisteredAt time.Time `json:"registered_at"`
}

// AssetDashboard aggregates everything the per-asset page shows. Info,
// LivePrice and Unrealized are absent when their upstream source had
// nothing; the dashboard renders with whatever resolved.
type AssetDashboard struct {
	Symbol       string                      `json:"symbol"`
	Info         *yahoo.AssetInfo            `json:"info,omitempty"`
	LivePrice    *float64                    `json:"live_price,omitempty"`
	Transactions []ledger.Transaction        `json:"transactions"`
	Unrealized   *analytics.UnrealizedReturn `json:"unrealized_return,omitempty"`
	News         []news.Headline             `json:"news"`
}
