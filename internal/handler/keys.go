package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
)

// eventKeyFromHeaders reads the titulo, fechaInicio and fechaFin headers.
// A blank title is reported first, then dates that are missing or not
// integers as an invalid range.
func eventKeyFromHeaders(r *http.Request) (model.EventKey, error) {
	title := r.Header.Get(model.HeaderEventTitle)
	if strings.TrimSpace(title) == "" {
		return model.EventKey{}, service.ErrInvalidTitle
	}

	start, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(model.HeaderEventStart)), 10, 64)
	if err != nil {
		return model.EventKey{}, service.ErrInvalidDateRange
	}
	end, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(model.HeaderEventEnd)), 10, 64)
	if err != nil {
		return model.EventKey{}, service.ErrInvalidDateRange
	}

	return model.EventKey{
		Title: title,
		Start: start,
		End:   end,
	}, nil
}
