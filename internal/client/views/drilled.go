package views

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
)

// Drilled is a list view whose selection opens a nested fetch.
type Drilled[T, N models.Validator] struct {
	*Controller[T]
	Detail *Driller[N]

	nestedPath   func(id int64) string
	nestedTarget api.Target
}

func NewDrilled[T, N models.Validator](res Resource[T], nestedPath func(id int64) string, f api.Fetcher, log logging.Logger) *Drilled[T, N] {
	return &Drilled[T, N]{
		Controller:   NewController(res, f, log),
		Detail:       NewDriller[N](f, log.With("kind", res.Kind, "detail", true)),
		nestedPath:   nestedPath,
		nestedTarget: res.Target,
	}
}

// Select opens the record and fetches its nested records. It blocks until
// the nested fetch settles; nested failures leave an empty list.
func (d *Drilled[T, N]) Select(ctx context.Context, id int64) (T, error) {
	rec, err := d.Controller.Select(id)
	if err != nil {
		return rec, err
	}
	d.Detail.Load(ctx, strconv.FormatInt(id, 10), d.nestedPath(id), d.nestedTarget)
	return rec, nil
}

// Deselect closes the record and discards its nested records.
func (d *Drilled[T, N]) Deselect() {
	d.Controller.Deselect()
	d.Detail.Reset()
}
