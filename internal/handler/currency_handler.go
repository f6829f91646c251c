package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-review-service/internal/currency"
)

// CurrencyConverter is the part of the currency client used by the review form
type CurrencyConverter interface {
	GetLatestRates(ctx context.Context, baseCurrency string) (*currency.ExchangeRates, error)
	Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (*currency.Conversion, error)
	GetSupportedCurrencies(ctx context.Context) ([]string, error)
}

// CurrencyHandler handles currency-related endpoints
type CurrencyHandler struct {
	currencyClient CurrencyConverter
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(client CurrencyConverter) *CurrencyHandler {
	return &CurrencyHandler{
		currencyClient: client,
	}
}

// GetExchangeRates returns exchange rates for a base currency
// @Summary Get exchange rates
// @Description Get latest exchange rates for a base currency
// @Tags currency
// @Produce json
// @Param base query string false "Base currency (default: USD)"
// @Success 200 {object} model.APIResponse{data=currency.ExchangeRates} "Exchange rates"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /currency/rates [get]
func (h *CurrencyHandler) GetExchangeRates(c *gin.Context) {
	baseCurrency := c.DefaultQuery("base", "USD")

	rates, err := h.currencyClient.GetLatestRates(c.Request.Context(), baseCurrency)
	if err != nil {
		logError(c, "get_exchange_rates", err, map[string]interface{}{"base": baseCurrency})
		respondInternalServerError(c, ErrFetchRates)
		return
	}

	respondOK(c, rates, "")
}

// ConvertCurrency converts an amount from one currency to another
// @Summary Convert currency
// @Description Convert an amount from one currency to another
// @Tags currency
// @Produce json
// @Param amount query number true "Amount to convert"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} model.APIResponse{data=currency.Conversion} "Conversion result"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /currency/convert [get]
func (h *CurrencyHandler) ConvertCurrency(c *gin.Context) {
	amountStr := c.Query("amount")
	fromCurrency := c.Query("from")
	toCurrency := c.Query("to")

	if amountStr == "" || fromCurrency == "" || toCurrency == "" {
		respondBadRequest(c, ErrMissingConversion)
		return
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		respondBadRequest(c, ErrInvalidAmount)
		return
	}

	conversion, err := h.currencyClient.Convert(c.Request.Context(), amount, fromCurrency, toCurrency)
	if err != nil {
		logError(c, "convert_currency", err, map[string]interface{}{"from": fromCurrency, "to": toCurrency})
		respondInternalServerError(c, ErrConvertCurrency)
		return
	}

	respondOK(c, conversion, "")
}

// GetSupportedCurrencies returns a list of supported currencies
// @Summary Get supported currencies
// @Description Get list of all supported currencies
// @Tags currency
// @Produce json
// @Success 200 {object} model.APIResponse{data=[]string} "List of currencies"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /currency/supported [get]
func (h *CurrencyHandler) GetSupportedCurrencies(c *gin.Context) {
	currencies, err := h.currencyClient.GetSupportedCurrencies(c.Request.Context())
	if err != nil {
		logError(c, "get_supported_currencies", err, nil)
		respondInternalServerError(c, ErrFetchCurrencies)
		return
	}

	respondOK(c, currencies, "")
}

// RegisterCurrencyRoutes registers currency routes
func (h *CurrencyHandler) RegisterCurrencyRoutes(router *gin.RouterGroup) {
	currencyGroup := router.Group("/currency")
	{
		currencyGroup.GET("/rates", h.GetExchangeRates)
		currencyGroup.GET("/convert", h.ConvertCurrency)
		currencyGroup.GET("/supported", h.GetSupportedCurrencies)
	}
}
