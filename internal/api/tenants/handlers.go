// Package tenants implements the HTTP handlers of the tenant provisioning API.
// Handlers translate HTTP to use-case requests and back; every business rule
// lives in internal/provisioning. Responses always carry the use-case Result
// envelope so callers get a uniform {success, data, error, message} shape.
package tenants

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/tenants-admin/internal/audit"
	"github.com/wms-platform/tenants-admin/internal/auth"
	"github.com/wms-platform/tenants-admin/internal/db/models"
	"github.com/wms-platform/tenants-admin/internal/db/repositories"
	"github.com/wms-platform/tenants-admin/internal/provisioning"
)

// Handlers holds the provisioning use cases behind the tenant routes
type Handlers struct {
	jwtSecret string
	auditSvc  *audit.Service

	create           *provisioning.CreateTenantUseCase
	createDirect     *provisioning.CreateTenantDirectUseCase
	get              *provisioning.GetTenantUseCase
	list             *provisioning.ListTenantsUseCase
	update           *provisioning.UpdateTenantUseCase
	remove           *provisioning.DeleteTenantUseCase
	onboarding       *provisioning.OnboardingProgressUseCase
	setupWarehouse   *provisioning.SetupDefaultWarehouseUseCase
	setupCustomer    *provisioning.SetupDefaultCustomerUseCase
	setupSuperAdmin  *provisioning.SetupDefaultSuperAdminUseCase
	setupEntityTypes *provisioning.SetupDefaultEntityTypesUseCase
}

// NewHandlers wires the tenant handlers over one dependency bundle.
func NewHandlers(deps provisioning.Deps, jwtSecret string) *Handlers {
	return &Handlers{
		jwtSecret:        jwtSecret,
		auditSvc:         deps.Audit,
		create:           provisioning.NewCreateTenantUseCase(deps),
		createDirect:     provisioning.NewCreateTenantDirectUseCase(deps),
		get:              provisioning.NewGetTenantUseCase(deps),
		list:             provisioning.NewListTenantsUseCase(deps),
		update:           provisioning.NewUpdateTenantUseCase(deps),
		remove:           provisioning.NewDeleteTenantUseCase(deps),
		onboarding:       provisioning.NewOnboardingProgressUseCase(deps),
		setupWarehouse:   provisioning.NewSetupDefaultWarehouseUseCase(deps),
		setupCustomer:    provisioning.NewSetupDefaultCustomerUseCase(deps),
		setupSuperAdmin:  provisioning.NewSetupDefaultSuperAdminUseCase(deps),
		setupEntityTypes: provisioning.NewSetupDefaultEntityTypesUseCase(deps),
	}
}

// RegisterRoutes mounts the tenant routes on an already prefixed group
// (typically /api/v1).
func (h *Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tenants", h.CreateTenantHandler())
	rg.POST("/tenants/direct", h.CreateTenantDirectHandler())
	rg.GET("/tenants", h.ListTenantsHandler())
	rg.GET("/tenants/:id", h.GetTenantHandler())
	rg.PUT("/tenants/:id", h.UpdateTenantHandler())
	rg.DELETE("/tenants/:id", h.DeleteTenantHandler())
	rg.GET("/tenants/:id/onboarding-progress", h.OnboardingProgressHandler())
	rg.GET("/tenants/:id/audit-history", h.AuditHistoryHandler())
	rg.POST("/tenants/:id/setup/warehouse", h.SetupWarehouseHandler())
	rg.POST("/tenants/:id/setup/customer", h.SetupCustomerHandler())
	rg.POST("/tenants/:id/setup/super-admin", h.SetupSuperAdminHandler())
	rg.POST("/tenants/:id/setup/entity-types", h.SetupEntityTypesHandler())
}

// statusFor maps a use-case error string to an HTTP status. Only the two
// caller-addressable errors get specific codes; everything else is opaque.
func statusFor(errMsg string) int {
	switch errMsg {
	case provisioning.ErrInvalidTenantID:
		return http.StatusBadRequest
	case provisioning.ErrTenantNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// actor resolves the audit actor of a request from its bearer token or the
// advisory identity headers.
func (h *Handlers) actor(c *gin.Context) *models.AuditActor {
	a := auth.ActorFromRequest(c.Request, h.jwtSecret)
	if a.UserID == "" && a.Username == "" && a.Email == "" {
		return nil
	}
	return &a
}

func respond[T any](c *gin.Context, okStatus int, res provisioning.Result[T]) {
	if !res.Success {
		c.JSON(statusFor(res.Error), res)
		return
	}
	c.JSON(okStatus, res)
}

// CreateTenantHandler provisions a tenant with its optional initial siblings.
// POST /api/v1/tenants
func (h *Handlers) CreateTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req provisioning.CreateTenantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}
		if req.Tenant.Name == "" || req.Tenant.Subdomain == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tenant name and subdomain are required"})
			return
		}
		if req.PerformedBy == nil {
			req.PerformedBy = h.actor(c)
		}

		respond(c, http.StatusCreated, h.create.Execute(c.Request.Context(), req))
	}
}

// CreateTenantDirectHandler registers a bare tenant row.
// POST /api/v1/tenants/direct
func (h *Handlers) CreateTenantDirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req provisioning.CreateTenantDirectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}
		if req.Tenant.Name == "" || req.Tenant.Subdomain == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Tenant name and subdomain are required"})
			return
		}
		if req.PerformedBy == nil {
			req.PerformedBy = h.actor(c)
		}

		respond(c, http.StatusCreated, h.createDirect.Execute(c.Request.Context(), req))
	}
}

// ListTenantsHandler returns a paginated tenant listing.
// GET /api/v1/tenants?page=&limit=&search=&active=
func (h *Handlers) ListTenantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := provisioning.ListTenantsRequest{
			Search: c.Query("search"),
		}
		req.Page, _ = strconv.Atoi(c.Query("page"))
		req.Limit, _ = strconv.Atoi(c.Query("limit"))
		if raw := c.Query("active"); raw != "" {
			active, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid active filter"})
				return
			}
			req.Active = &active
		}

		respond(c, http.StatusOK, h.list.Execute(c.Request.Context(), req))
	}
}

// GetTenantHandler returns one tenant with its default siblings.
// GET /api/v1/tenants/:id
func (h *Handlers) GetTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, h.get.Execute(c.Request.Context(), c.Param("id")))
	}
}

// UpdateTenantHandler applies a partial update to one tenant.
// PUT /api/v1/tenants/:id
func (h *Handlers) UpdateTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			provisioning.TenantPayload
			PerformedBy *models.AuditActor `json:"performedBy,omitempty"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		req := provisioning.UpdateTenantRequest{
			ID:          c.Param("id"),
			Update:      body.TenantPayload,
			PerformedBy: body.PerformedBy,
		}
		if req.PerformedBy == nil {
			req.PerformedBy = h.actor(c)
		}

		respond(c, http.StatusOK, h.update.Execute(c.Request.Context(), req))
	}
}

// DeleteTenantHandler tears a tenant down completely.
// DELETE /api/v1/tenants/:id
func (h *Handlers) DeleteTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, h.remove.Execute(c.Request.Context(), c.Param("id")))
	}
}

// OnboardingProgressHandler reports which default siblings a tenant has.
// GET /api/v1/tenants/:id/onboarding-progress
func (h *Handlers) OnboardingProgressHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, h.onboarding.Execute(c.Request.Context(), c.Param("id")))
	}
}

// AuditHistoryHandler returns one page of a tenant's audit trail.
// GET /api/v1/tenants/:id/audit-history?page=&limit=&entityType=&entityId=&action=&performedBy=&startDate=&endDate=
func (h *Handlers) AuditHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.Param("id")
		if !provisioning.ValidTenantID(tenantID) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": provisioning.ErrInvalidTenantID})
			return
		}

		filters := repositories.AuditFilters{}
		if v := c.Query("entityType"); v != "" {
			filters.EntityType = &v
		}
		if v := c.Query("entityId"); v != "" {
			filters.EntityID = &v
		}
		if v := c.Query("action"); v != "" {
			filters.Action = &v
		}
		if v := c.Query("performedBy"); v != "" {
			filters.PerformedBy = &v
		}
		if raw := c.Query("startDate"); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid startDate, want RFC3339"})
				return
			}
			filters.StartDate = &ts
		}
		if raw := c.Query("endDate"); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid endDate, want RFC3339"})
				return
			}
			filters.EndDate = &ts
		}

		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		history, err := h.auditSvc.GetHistory(c.Request.Context(), tenantID, filters, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to get audit history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
	}
}

// setupRequest builds the shared setup payload from path, query and identity.
func (h *Handlers) setupRequest(c *gin.Context) provisioning.SetupRequest {
	return provisioning.SetupRequest{
		TenantID:    c.Param("id"),
		Region:      c.Query("region"),
		PerformedBy: h.actor(c),
	}
}

// SetupWarehouseHandler seeds the default warehouse.
// POST /api/v1/tenants/:id/setup/warehouse?region=
func (h *Handlers) SetupWarehouseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusCreated, h.setupWarehouse.Execute(c.Request.Context(), h.setupRequest(c)))
	}
}

// SetupCustomerHandler seeds the default customer.
// POST /api/v1/tenants/:id/setup/customer?region=
func (h *Handlers) SetupCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusCreated, h.setupCustomer.Execute(c.Request.Context(), h.setupRequest(c)))
	}
}

// SetupSuperAdminHandler seeds the default super admin.
// POST /api/v1/tenants/:id/setup/super-admin?region=
func (h *Handlers) SetupSuperAdminHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusCreated, h.setupSuperAdmin.Execute(c.Request.Context(), h.setupRequest(c)))
	}
}

// SetupEntityTypesHandler seeds the ADMIN and ASSOCIATE roles.
// POST /api/v1/tenants/:id/setup/entity-types?region=
func (h *Handlers) SetupEntityTypesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusCreated, h.setupEntityTypes.Execute(c.Request.Context(), h.setupRequest(c)))
	}
}
