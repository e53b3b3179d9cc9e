package simem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
)

// MaxWindowDays é o maior intervalo pedido em uma única chamada ao GetData.
const MaxWindowDays = 31

// SIMEMRepositoryImpl implementa o MarketDataRepository sobre a API pública do SIMEM.
type SIMEMRepositoryImpl struct {
	baseURL string
	client  *http.Client
}

// NewSIMEMRepository cria o cliente apontando para baseURL (sem o sufixo /GetData).
func NewSIMEMRepository(baseURL string, timeout time.Duration) repository.MarketDataRepository {
	return &SIMEMRepositoryImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type getDataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  struct {
		Records []entity.MarketRecord `json:"records"`
	} `json:"result"`
}

// Fetch baixa todos os registros do dataset no intervalo, janela por janela.
func (r *SIMEMRepositoryImpl) Fetch(ctx context.Context, datasetID string, period entity.DateRange) ([]entity.MarketRecord, error) {
	records := []entity.MarketRecord{}
	for _, window := range SplitWindows(period, MaxWindowDays) {
		batch, err := r.fetchWindow(ctx, datasetID, window)
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}
	return records, nil
}

func (r *SIMEMRepositoryImpl) fetchWindow(ctx context.Context, datasetID string, window entity.DateRange) ([]entity.MarketRecord, error) {
	query := url.Values{}
	query.Set("startDate", window.Start.Format("2006-01-02"))
	query.Set("endDate", window.End.Format("2006-01-02"))
	query.Set("datasetId", datasetID)
	endpoint := r.baseURL + "/GetData?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request for dataset %s: %w", datasetID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: dataset %s (%s): %w", types.ErrServiceUnavailable, datasetID, window, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: dataset %s (%s): status %d: %s",
			types.ErrServiceUnavailable, datasetID, window, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload getDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding response for dataset %s (%s): %w", datasetID, window, err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("%w: dataset %s (%s): %s", types.ErrServiceUnavailable, datasetID, window, payload.Message)
	}

	return payload.Result.Records, nil
}

// SplitWindows divide o intervalo em janelas consecutivas de no máximo days dias.
func SplitWindows(period entity.DateRange, days int) []entity.DateRange {
	if days < 1 {
		days = 1
	}
	windows := []entity.DateRange{}
	for start := period.Start; !start.After(period.End); start = start.AddDate(0, 0, days) {
		end := start.AddDate(0, 0, days-1)
		if end.After(period.End) {
			end = period.End
		}
		windows = append(windows, entity.DateRange{Start: start, End: end})
	}
	return windows
}
