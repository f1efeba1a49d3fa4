package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleEntry(posted bool) *domain.JournalEntry {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{
		EntryID:     "je-1",
		TenantID:    tenantID,
		EntryDate:   day,
		PostingDate: day,
		Description: "Office rent",
		Lines: []domain.JournalLine{
			{LineID: "l-1", EntryID: "je-1", LineNumber: 1, AccountID: "rent", Debit: decimal.NewFromInt(100), Credit: decimal.Zero, BaseAmount: decimal.NewFromInt(100)},
			{LineID: "l-2", EntryID: "je-1", LineNumber: 2, AccountID: "cash", Debit: decimal.Zero, Credit: decimal.NewFromInt(100), BaseAmount: decimal.NewFromInt(100)},
		},
	}
	if posted {
		number, by := "JE-2026-000001", userID
		entry.EntryNumber, entry.IsPosted, entry.PostedBy = &number, true, &by
	}
	return entry
}

func (suite *HandlerTestSuite) TestCreateEntry() {
	suite.journals.On("CreateDraftEntry", mock.Anything, tenantID, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.EntryDate == "2026-03-01" && len(req.Lines) == 2 && req.Lines[0].Debit.Equal(decimal.NewFromInt(100))
	}), suite.admin).Return(sampleEntry(false), nil).Once()

	w := suite.request(http.MethodPost, "/entries", `{
		"entryDate": "2026-03-01",
		"description": "Office rent",
		"lines": [
			{"accountID": "rent", "debit": "100", "credit": "0"},
			{"accountID": "cash", "debit": "0", "credit": "100"}
		]
	}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.decode(w, &resp)
	suite.Equal("DRAFT", resp.Status)
	suite.Nil(resp.EntryNumber)
	suite.Len(resp.Lines, 2)
	suite.True(resp.TotalDebit.Equal(resp.TotalCredit))
}

func (suite *HandlerTestSuite) TestCreateEntry_BindingErrors() {
	cases := map[string]string{
		"missing date":    `{"description":"x"}`,
		"bad date":        `{"entryDate":"01/03/2026"}`,
		"line no account": `{"entryDate":"2026-03-01","lines":[{"debit":"1"}]}`,
	}
	for name, body := range cases {
		w := suite.request(http.MethodPost, "/entries", body)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.journals.AssertNotCalled(suite.T(), "CreateDraftEntry")
}

func (suite *HandlerTestSuite) TestCreateEntry_ClosedPeriod() {
	suite.journals.On("CreateDraftEntry", mock.Anything, tenantID, mock.Anything, suite.admin).
		Return(nil, apperrors.NewPeriodLockedError(tenantID, "2026-01-15")).Once()

	w := suite.request(http.MethodPost, "/entries", `{"entryDate":"2026-01-15"}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListEntries() {
	token := "abc"
	suite.journals.On("ListEntries", mock.Anything, tenantID, dto.ListEntriesParams{Limit: 5, NextToken: &token, Status: "posted"}).
		Return(&dto.ListEntriesResponse{Entries: dto.ToEntryResponses([]domain.JournalEntry{*sampleEntry(true)})}, nil).Once()

	w := suite.request(http.MethodGet, "/entries?limit=5&status=posted&nextToken=abc", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)

	w = suite.request(http.MethodGet, "/entries?status=void", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	w = suite.request(http.MethodGet, "/entries?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetUpdateDeleteEntry() {
	desc := "Rent for March"
	suite.journals.On("GetEntry", mock.Anything, tenantID, "je-1").Return(sampleEntry(true), nil).Once()
	suite.journals.On("UpdateDraft", mock.Anything, tenantID, "je-1", dto.UpdateEntryRequest{Description: &desc}, suite.admin).
		Return(nil, apperrors.NewImmutableEntryError("je-1")).Once()
	suite.journals.On("DeleteDraft", mock.Anything, tenantID, "je-2", suite.admin).Return(nil).Once()
	suite.journals.On("DeleteDraft", mock.Anything, tenantID, "je-3", suite.admin).
		Return(fmt.Errorf("%w: only the creator may delete draft je-3", apperrors.ErrForbidden)).Once()

	w := suite.request(http.MethodGet, "/entries/je-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.decode(w, &resp)
	suite.Equal("POSTED", resp.Status)
	suite.Equal("JE-2026-000001", *resp.EntryNumber)

	w = suite.request(http.MethodPatch, "/entries/je-1", dto.UpdateEntryRequest{Description: &desc})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodDelete, "/entries/je-2", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodDelete, "/entries/je-3", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestAddAndRemoveLines() {
	suite.journals.On("AddLines", mock.Anything, tenantID, "je-1", mock.MatchedBy(func(lines []dto.LineInput) bool {
		return len(lines) == 1 && lines[0].AccountID == "rent"
	}), suite.admin).Return(sampleEntry(false), nil).Once()
	suite.journals.On("RemoveLine", mock.Anything, tenantID, "je-1", "l-9", suite.admin).
		Return(nil, apperrors.NewNotFoundError("line l-9")).Once()

	w := suite.request(http.MethodPost, "/entries/je-1/lines", `{"lines":[{"accountID":"rent","debit":"5","credit":"0"}]}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/entries/je-1/lines", `{"lines":[]}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodDelete, "/entries/je-1/lines/l-9", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestPostEntry() {
	suite.posting.On("Post", mock.Anything, tenantID, "je-1", suite.admin).Return(sampleEntry(true), nil).Once()

	w := suite.request(http.MethodPost, "/entries/je-1/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.decode(w, &resp)
	suite.True(resp.IsPosted)
	suite.Equal("JE-2026-000001", *resp.EntryNumber)
}

func (suite *HandlerTestSuite) TestPostEntry_Rejections() {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: debits 100 credits 90", apperrors.ErrUnbalancedEntry), http.StatusUnprocessableEntity},
		{apperrors.ErrEmptyEntry, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: je-1", apperrors.ErrAlreadyPosted), http.StatusConflict},
		{apperrors.NewPeriodLockedError(tenantID, "2026-01-15"), http.StatusConflict},
		{apperrors.ErrConcurrencyConflict, http.StatusConflict},
		{apperrors.NewNotFoundError("entry je-1"), http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.posting.On("Post", mock.Anything, tenantID, "je-1", suite.admin).Return(nil, tc.err).Once()
		w := suite.request(http.MethodPost, "/entries/je-1/post", nil)
		suite.Equal(tc.status, w.Code, tc.err.Error())
	}
}

func (suite *HandlerTestSuite) TestReverseEntry() {
	req := dto.ReverseEntryRequest{ReversalDate: "2026-03-05", Reason: "duplicate"}
	reversal := sampleEntry(true)
	reversal.EntryID = "je-2"
	reversalOf := "je-1"
	reversal.ReversalOf = &reversalOf
	suite.posting.On("Reverse", mock.Anything, tenantID, "je-1", req, suite.admin).Return(reversal, nil).Once()
	suite.posting.On("Reverse", mock.Anything, tenantID, "je-3", mock.Anything, suite.admin).
		Return(nil, fmt.Errorf("%w: je-3", apperrors.ErrAlreadyReversed)).Once()

	w := suite.request(http.MethodPost, "/entries/je-1/reverse", req)
	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.decode(w, &resp)
	suite.Equal("je-1", *resp.ReversalOf)

	w = suite.request(http.MethodPost, "/entries/je-3/reverse", req)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, "/entries/je-1/reverse", `{"reason":"no date"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}
