package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"casita/internal/app/cascade"
	catalogapp "casita/internal/app/catalog"
	syncapp "casita/internal/app/sync"
	"casita/internal/domain/catalog"
	"casita/internal/domain/rules"
)

// PropertyHandler manages the roster, rule inventory, pricing updates and
// smart pricing syncs.
type PropertyHandler struct {
	Catalog    *catalogapp.Service
	CascadeSvc *cascade.Service
	Sync       *syncapp.Service
}

type createPropertyRequest struct {
	Name      string  `json:"name" binding:"required"`
	Nickname  string  `json:"nickname"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	BasePrice float64 `json:"base_price"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
}

func (h PropertyHandler) Create(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property, err := h.Catalog.CreateProperty(c.Request.Context(), catalog.CreatePropertyParams{
		Name:      req.Name,
		Nickname:  req.Nickname,
		City:      req.City,
		State:     req.State,
		BasePrice: req.BasePrice,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

func (h PropertyHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	properties, err := h.Catalog.ListProperties(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func (h PropertyHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	property, units, err := h.Catalog.Property(c.Request.Context(), catalog.PropertyID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property, "units": units})
}

type createUnitRequest struct {
	Name                 string  `json:"name" binding:"required"`
	UnitType             string  `json:"unit_type"`
	InheritParentPricing bool    `json:"inherit_parent_pricing"`
	PriceModifier        float64 `json:"price_modifier"`
	PriceModifierType    string  `json:"price_modifier_type"`
	CustomBasePrice      float64 `json:"custom_base_price"`
}

func (h PropertyHandler) CreateUnit(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	unit, err := h.Catalog.CreateUnit(c.Request.Context(), catalog.CreateUnitParams{
		PropertyID:           catalog.PropertyID(id),
		Name:                 req.Name,
		UnitType:             req.UnitType,
		InheritParentPricing: req.InheritParentPricing,
		PriceModifier:        req.PriceModifier,
		PriceModifierType:    catalog.ModifierType(req.PriceModifierType),
		CustomBasePrice:      req.CustomBasePrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

type updatePricingRequest struct {
	BasePrice float64 `json:"base_price"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
}

func (h PropertyHandler) UpdatePricing(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req updatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	affected, err := h.CascadeSvc.UpdatePricing(c.Request.Context(), catalog.PropertyID(id), req.BasePrice, req.MinPrice, req.MaxPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": id, "cascaded_units": affected})
}

func (h PropertyHandler) Cascade(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	affected, err := h.CascadeSvc.Run(c.Request.Context(), catalog.PropertyID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": id, "cascaded_units": affected})
}

type smartPricingRequest struct {
	SmartPrice  float64 `json:"smart_price"`
	DemandScore int     `json:"demand_score"`
}

func (h PropertyHandler) SmartPricingSync(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req smartPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	affected, err := h.Sync.Apply(c.Request.Context(), catalog.PropertyID(id), req.SmartPrice, req.DemandScore)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": id, "smart_price": req.SmartPrice, "cascaded_units": affected})
}

func (h PropertyHandler) SmartPricingHistory(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	days := parseIntQuery(c.Query("days"), 30)
	history, err := h.Sync.RecentHistory(c.Request.Context(), catalog.PropertyID(id), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": id, "history": history})
}

type seasonalRuleRequest struct {
	SeasonName      string  `json:"season_name"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date" binding:"required"`
	AdjustmentType  string  `json:"adjustment_type" binding:"required"`
	AdjustmentValue float64 `json:"adjustment_value"`
	MinNights       int     `json:"min_nights"`
}

func (h PropertyHandler) AddSeasonalRule(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req seasonalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, ok := parseDateQuery(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, ok := parseDateQuery(req.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	rule := rules.SeasonalRule{
		PropertyID:      catalog.PropertyID(id),
		SeasonName:      req.SeasonName,
		StartDate:       start,
		EndDate:         end,
		AdjustmentType:  rules.AdjustmentType(req.AdjustmentType),
		AdjustmentValue: req.AdjustmentValue,
		MinNights:       req.MinNights,
	}
	if err := h.Catalog.AddSeasonalRule(c.Request.Context(), &rule); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

type dayOfWeekRuleRequest struct {
	DayOfWeek       int     `json:"day_of_week"`
	AdjustmentType  string  `json:"adjustment_type" binding:"required"`
	AdjustmentValue float64 `json:"adjustment_value"`
	MinNights       int     `json:"min_nights"`
}

func (h PropertyHandler) SetDayOfWeekRule(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req dayOfWeekRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule := rules.DayOfWeekRule{
		PropertyID:      catalog.PropertyID(id),
		DayOfWeek:       req.DayOfWeek,
		AdjustmentType:  rules.AdjustmentType(req.AdjustmentType),
		AdjustmentValue: req.AdjustmentValue,
		MinNights:       req.MinNights,
	}
	if err := h.Catalog.SetDayOfWeekRule(c.Request.Context(), &rule); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

type lastMinuteRuleRequest struct {
	DaysBeforeCheckIn int     `json:"days_before_checkin"`
	DiscountPercent   float64 `json:"discount_percent"`
}

func (h PropertyHandler) AddLastMinuteRule(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req lastMinuteRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule := rules.NewLastMinuteRule(catalog.PropertyID(id), req.DaysBeforeCheckIn, req.DiscountPercent)
	if err := h.Catalog.AddLastMinuteRule(c.Request.Context(), &rule); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

type orphanGapRuleRequest struct {
	GapNights       int     `json:"gap_nights"`
	DiscountPercent float64 `json:"discount_percent"`
	ReduceMinStay   bool    `json:"reduce_min_stay"`
}

func (h PropertyHandler) AddOrphanGapRule(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive integer"})
		return
	}
	var req orphanGapRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule := rules.NewOrphanGapRule(catalog.PropertyID(id), req.GapNights, req.DiscountPercent, req.ReduceMinStay)
	if err := h.Catalog.AddOrphanGapRule(c.Request.Context(), &rule); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

var _ PropertyHTTP = PropertyHandler{}
