// Package bcb queries closing exchange quotes from the Brazilian
// central bank's Olinda PTAX service.
package bcb

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/andrelq/equitax"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Olinda OData endpoint.
const DefaultBaseURL = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"

// Source queries the PTAX closing quote for a foreign currency. It
// implements equitax.RateSource. Days with no published quote (weekends,
// bank holidays) come back as an empty result set, not as an error.
type Source struct {
	// BaseURL overrides DefaultBaseURL, for tests.
	BaseURL string
	// Currency is the ISO code of the foreign currency, e.g. "EUR".
	Currency string

	client *http.Client
}

// NewSource returns a Source for the given foreign currency backed by a
// daily-expiring disk cache.
func NewSource(currency string) *Source {
	return &Source{Currency: currency, client: daily()}
}

// ptaxResponse is the Olinda payload. An empty Value slice means the
// service has no quote for the requested day.
type ptaxResponse struct {
	Value []struct {
		Buy  decimal.Decimal `json:"cotacaoCompra"`
		Sell decimal.Decimal `json:"cotacaoVenda"`
	} `json:"value"`
}

// Query fetches the closing quote published on a given day.
func (s *Source) Query(on equitax.Date) (q equitax.Quote, found bool, err error) {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	client := s.client
	if client == nil {
		client = http.DefaultClient
	}

	// Olinda takes US-style dates and single-quoted OData parameters.
	day := on.Format("01-02-2006")
	query := fmt.Sprintf("@moeda='%s'&@dataInicial='%s'&@dataFinalCotacao='%s'&$format=json",
		url.QueryEscape(s.Currency), day, day)

	addr := base + "/CotacaoMoedaPeriodoFechamento(codigoMoeda=@moeda,dataInicialCotacao=@dataInicial,dataFinalCotacao=@dataFinalCotacao)?" + query

	var payload ptaxResponse
	if err := jwget(client, addr, &payload); err != nil {
		return equitax.Quote{}, false, fmt.Errorf("querying quote for %s: %w", on, err)
	}
	if len(payload.Value) == 0 {
		return equitax.Quote{}, false, nil
	}
	last := payload.Value[len(payload.Value)-1]
	return equitax.Quote{Buy: last.Buy, Sell: last.Sell}, true, nil
}
