package ginserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casita/internal/app/cascade"
	catalogapp "casita/internal/app/catalog"
	syncapp "casita/internal/app/sync"
	"casita/internal/domain/catalog"
	"casita/internal/domain/pricing"
	"casita/internal/infra/config"
	ginserver "casita/internal/infra/http/gin"
	"casita/internal/infra/obs"
	"casita/internal/infra/storage/memory"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (http.Handler, *memory.Factory, catalog.PropertyID, catalog.UnitID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewFactory()
	clock := func() time.Time { return testNow }

	property, err := catalog.NewProperty(catalog.CreatePropertyParams{
		Name:      "South Beach Suites",
		BasePrice: 250,
		MinPrice:  150,
		MaxPrice:  500,
		Now:       testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Properties.Save(ctx, property))

	unit, err := catalog.NewUnit(catalog.CreateUnitParams{
		PropertyID:           property.ID,
		Name:                 "Ocean View Suite",
		InheritParentPricing: true,
		PriceModifier:        20,
		PriceModifierType:    catalog.ModifierPercent,
		Now:                  testNow,
	})
	require.NoError(t, err)
	require.NoError(t, store.Units.Save(ctx, unit))

	engine := &pricing.Engine{
		Properties: store.Properties,
		Units:      store.Units,
		Rules:      store.Rules,
		Clock:      clock,
	}
	cascadeSvc := &cascade.Service{UoW: store, Clock: clock}
	store.SmartPricing.Clock = clock

	server := ginserver.NewServer(
		config.Config{Env: "test", HTTPAddr: ":0"},
		obs.Middleware{},
		obs.HealthHandlers{},
		ginserver.Handlers{
			Pricing: ginserver.PricingHandler{Engine: engine},
			Property: ginserver.PropertyHandler{
				Catalog:    &catalogapp.Service{UoW: store, Clock: clock},
				CascadeSvc: cascadeSvc,
				Sync:       &syncapp.Service{Cascade: cascadeSvc, History: store.SmartPricing, Clock: clock},
			},
		},
	)
	return server.Handler, store, property.ID, unit.ID
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestQuoteEndpoint(t *testing.T) {
	handler, _, _, unitID := newTestServer(t)

	path := fmt.Sprintf("/api/v1/units/%d/quote?date=2026-09-03", unitID)
	rec := doRequest(t, handler, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Date       string  `json:"date"`
		FinalPrice float64 `json:"final_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-09-03", body.Date)
	assert.Equal(t, 300.0, body.FinalPrice, "250 base with a 20 percent unit modifier")
}

func TestQuoteEndpointUnknownUnit(t *testing.T) {
	handler, _, _, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/units/999/quote?date=2026-09-03", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePricingEndpointCascades(t *testing.T) {
	handler, store, propertyID, unitID := newTestServer(t)

	path := fmt.Sprintf("/api/v1/properties/%d/pricing", propertyID)
	rec := doRequest(t, handler, http.MethodPut, path,
		`{"base_price": 300, "min_price": 150, "max_price": 600}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		CascadedUnits []int64 `json:"cascaded_units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{int64(unitID)}, body.CascadedUnits)

	property, err := store.Properties.ByID(context.Background(), propertyID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, property.BasePrice)
}

func TestCascadeEndpoint(t *testing.T) {
	handler, _, propertyID, unitID := newTestServer(t)

	path := fmt.Sprintf("/api/v1/properties/%d/cascade", propertyID)
	rec := doRequest(t, handler, http.MethodPost, path, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		CascadedUnits []int64 `json:"cascaded_units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{int64(unitID)}, body.CascadedUnits)
}

func TestUpdatePricingEndpointRejectsBadBounds(t *testing.T) {
	handler, _, propertyID, _ := newTestServer(t)

	path := fmt.Sprintf("/api/v1/properties/%d/pricing", propertyID)
	rec := doRequest(t, handler, http.MethodPut, path,
		`{"base_price": 300, "min_price": 700, "max_price": 600}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
