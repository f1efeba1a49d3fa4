package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// journalHandler serves draft entries and the posting engine.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	postingService portssvc.PostingService
}

func newJournalHandler(js portssvc.JournalSvcFacade, ps portssvc.PostingService) *journalHandler {
	return &journalHandler{
		journalService: js,
		postingService: ps,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, postingService portssvc.PostingService) {
	h := newJournalHandler(journalService, postingService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PATCH("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.POST("/:entry_id/lines", h.addLines)
		entries.DELETE("/:entry_id/lines/:line_id", h.removeLine)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates an unposted entry, optionally with lines. Drafts may be unbalanced.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry body dto.CreateEntryRequest true "Entry header and lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 409 {object} dto.ErrorResponse "Entry date falls in a closed period"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}

	entry, err := h.journalService.CreateDraftEntry(c.Request.Context(), scope.tenantID, req, scope.actor)
	if err != nil {
		respondError(c, scope.logger, err, "create journal entry")
		return
	}

	scope.logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID), slog.Int("line_count", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first using token pagination
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "posted or draft"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), scope.tenantID, params)
	if err != nil {
		respondError(c, scope.logger, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntry(c.Request.Context(), scope.tenantID, entryID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("entry_id", entryID)), err, "retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft header
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Header fields"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} dto.ErrorResponse "Entry is posted"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id} [patch]
func (h *journalHandler) updateEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}

	entry, err := h.journalService.UpdateDraft(c.Request.Context(), scope.tenantID, entryID, req, scope.actor)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("entry_id", entryID)), err, "update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Soft deletes an unposted entry. Only its creator may delete it.
// @Tags entries
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the entry owner"
// @Failure 409 {object} dto.ErrorResponse "Entry is posted"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	logger := scope.logger.With(slog.String("entry_id", entryID))

	if err := h.journalService.DeleteDraft(c.Request.Context(), scope.tenantID, entryID, scope.actor); err != nil {
		respondError(c, logger, err, "delete journal entry")
		return
	}

	logger.Info("Draft entry deleted")
	c.Status(http.StatusNoContent)
}

// addLines godoc
// @Summary Add lines to a draft
// @Description Appends the lines atomically. Either all are added or none.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   lines body dto.AddLinesRequest true "Lines to add"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} dto.ErrorResponse "Entry is posted"
// @Failure 422 {object} dto.ErrorResponse "Invalid line"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/lines [post]
func (h *journalHandler) addLines(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	var req dto.AddLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}

	entry, err := h.journalService.AddLines(c.Request.Context(), scope.tenantID, entryID, req.Lines, scope.actor)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("entry_id", entryID)), err, "add journal lines")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// removeLine godoc
// @Summary Remove a line from a draft
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   line_id path string true "Line ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} dto.ErrorResponse "Line not found"
// @Failure 409 {object} dto.ErrorResponse "Entry is posted"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/lines/{line_id} [delete]
func (h *journalHandler) removeLine(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID, lineID := c.Param("entry_id"), c.Param("line_id")

	entry, err := h.journalService.RemoveLine(c.Request.Context(), scope.tenantID, entryID, lineID, scope.actor)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("entry_id", entryID), slog.String("line_id", lineID)), err, "remove journal line")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Validates balance and period, assigns the entry number and updates account balances atomically
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Already posted, period locked or concurrent modification"
// @Failure 422 {object} dto.ErrorResponse "Unbalanced or empty entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	logger := scope.logger.With(slog.String("entry_id", entryID))

	entry, err := h.postingService.Post(c.Request.Context(), scope.tenantID, entryID, scope.actor)
	if err != nil {
		respondError(c, logger, err, "post journal entry")
		return
	}

	logger.Info("Entry posted", slog.String("entry_number", *entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts a new entry with debits and credits swapped and marks the original reversed
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal date and reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} dto.ErrorResponse "Not posted, already reversed or period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}
	logger := scope.logger.With(slog.String("entry_id", entryID))

	reversal, err := h.postingService.Reverse(c.Request.Context(), scope.tenantID, entryID, req, scope.actor)
	if err != nil {
		respondError(c, logger, err, "reverse journal entry")
		return
	}

	logger.Info("Entry reversed", slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
