package api

import (
	"context"
	"net/http"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

func (c *Client) FinancialReports(ctx context.Context, sess *session.Session) ([]model.FinancialReport, error) {
	reports := []model.FinancialReport{}
	if err := c.getJSON(ctx, sess, "/api/financial", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) RecordReport(ctx context.Context, sess *session.Session, report model.FinancialReport) error {
	if err := c.check(report); err != nil {
		return err
	}
	return c.sendJSON(ctx, sess, http.MethodPost, "/api/financial", report, nil)
}

func (c *Client) FinancialEntries(ctx context.Context, sess *session.Session, from, to model.Date) ([]model.FinancialEntry, error) {
	entries := []model.FinancialEntry{}
	if err := c.getJSON(ctx, sess, "/api/financial/entries", rangeQuery(from, to), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) AddEntry(ctx context.Context, sess *session.Session, entry model.FinancialEntry) (model.FinancialEntry, error) {
	if err := c.check(entry); err != nil {
		return model.FinancialEntry{}, err
	}
	var created model.FinancialEntry
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/financial/entries", entry, &created); err != nil {
		return model.FinancialEntry{}, err
	}
	return created, nil
}
