package cli

import (
	"context"

	"github.com/alexanderramin/estimator/internal/service"
)

// editQuote loads the project's tree, lets fn change it in memory, and saves
// the result in one transaction. Nothing is written when fn fails.
func editQuote(ctx context.Context, app *App, projectRef string, fn func(q *service.Quote) error) (*service.Quote, error) {
	q, err := loadQuote(ctx, app, projectRef)
	if err != nil {
		return nil, err
	}
	if err := fn(q); err != nil {
		return nil, err
	}
	if err := app.Quotes.Save(ctx, q.Project, q.Roots); err != nil {
		return nil, err
	}
	return q, nil
}
